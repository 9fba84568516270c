package router

import "net/http"

type Middleware = func(next http.Handler) http.Handler

// Router is the subset of routing the application registers its endpoints through.
type Router interface {
	http.Handler

	Use(mw Middleware)
	Get(pattern string, handler http.HandlerFunc, mws ...Middleware)
	Post(pattern string, handler http.HandlerFunc, mws ...Middleware)
	Group(prefix string, fn func(r Router), mws ...Middleware)
}
