package middlewares

import "net/http"

// Middleware decora un http.Handler con comportamiento transversal.
type Middleware func(http.Handler) http.Handler

// Chain envuelve h con los middlewares dados. El primero de la lista es
// el más externo: intercepta el request antes que el resto y ve la
// respuesta al final. Chain(h, A, B) ejecuta A -> B -> h.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
