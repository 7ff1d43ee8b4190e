package httpx

import (
	"net/http"
	"slices"
	"strings"
)

type Middleware func(http.Handler) http.Handler

// Chain wraps h so that the first middleware runs outermost.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// CORS opens the endpoint to every origin. OPTIONS requests are answered
// directly with 200 and never reach next.
func CORS(methods ...string) Middleware {
	allow := strings.Join(append(slices.Clip(methods), http.MethodOptions), ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", "*")
			h.Set("Access-Control-Allow-Methods", allow)
			h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Methods dispatches on the request method and answers 405 with the JSON
// envelope for anything it does not know.
type Methods map[string]http.Handler

func (m Methods) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h, ok := m[r.Method]; ok {
		h.ServeHTTP(w, r)
		return
	}

	w.Header().Set("Allow", strings.Join(m.allowed(), ", "))
	WriteFailure(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// allowed lists the registered methods in a stable order.
func (m Methods) allowed() []string {
	order := []string{
		http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions,
	}
	out := make([]string, 0, len(m))
	for _, method := range order {
		if _, ok := m[method]; ok {
			out = append(out, method)
		}
	}
	return out
}

// Names returns the registered methods, suitable for CORS.
func (m Methods) Names() []string {
	return m.allowed()
}
