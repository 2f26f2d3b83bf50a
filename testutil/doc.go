// Package testutil provides an in-memory httpclient.Transport for tests.
//
//	client, tr := testutil.NewClient(t, httpclient.Config{BaseURL: "/api"})
//	tr.Respond(http.StatusOK, `{"id":1}`)
//
//	resp, err := client.Do(ctx, httpclient.Request{URL: "/users/1"})
//	req, _ := tr.LastRequest() // req.URL == "/api/users/1"
package testutil
