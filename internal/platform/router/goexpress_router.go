package router

import (
	"net/http"

	"github.com/ferdiebergado/goexpress"
)

type goexpressRouter struct {
	mux *goexpress.Router
}

var _ Router = (*goexpressRouter)(nil)

func NewGoexpressRouter() Router {
	return &goexpressRouter{mux: goexpress.New()}
}

func (r *goexpressRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

func (r *goexpressRouter) Use(mw Middleware) {
	r.mux.Use(mw)
}

func (r *goexpressRouter) Get(pattern string, handler http.HandlerFunc, mws ...Middleware) {
	r.mux.Get(pattern, handler, mws...)
}

func (r *goexpressRouter) Post(pattern string, handler http.HandlerFunc, mws ...Middleware) {
	r.mux.Post(pattern, handler, mws...)
}

// Group registers the routes added by fn under prefix on the same mux, wrapped
// by the parent's middlewares followed by mws.
func (r *goexpressRouter) Group(prefix string, fn func(r Router), mws ...Middleware) {
	sub := goexpress.New()
	sub.SetPrefix(prefix)
	sub.SetMux(r.mux.Mux())

	parent := r.mux.Middlewares()
	chain := make([]Middleware, 0, len(parent)+len(mws))
	chain = append(chain, parent...)
	chain = append(chain, mws...)
	sub.SetMiddlewares(chain)

	fn(&goexpressRouter{mux: sub})
}
