// Package rest provides typed JSON helpers over httpclient.
//
//	client, err := rest.New(httpclient.Config{BaseURL: "https://api.example.com"},
//	    httpclient.WithRequestInterceptors(httpclient.BearerAuth(token)),
//	)
//
//	user, err := rest.Get[User](ctx, client, "/users/123")
//	created, err := rest.Post[User](ctx, client, "/users", CreateUser{Name: "Alice"})
//
// Fields can also be read without a target type:
//
//	resp, err := rest.Get[json.RawMessage](ctx, client, "/orders")
//	firstID := resp.Get("items.0.id").String()
package rest
