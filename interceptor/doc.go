// Package interceptor provides Registry, the ordered handler collection
// behind the request and response interceptor chains of httpclient.
//
// Handlers run in registration order. Two removal styles are offered:
//
//	h := reg.Use(fn)  // stable handle
//	reg.Eject(h)      // removes exactly fn, whatever else was removed
//
//	i := reg.Register(fn) // position
//	reg.RemoveAt(i)       // shifts later entries down; i may be stale
package interceptor
