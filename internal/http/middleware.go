package http

import (
	"net/http"
	"strings"

	"github.com/redmonkez12/go-social-api/internal/httputil"
)

// Response headers set on every request
var baseHeaders = [][2]string{
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "DENY"},
	{"Referrer-Policy", "no-referrer"},
	{"Cross-Origin-Opener-Policy", "same-origin"},
}

const (
	apiCSP     = "default-src 'none'; frame-ancestors 'none'"
	swaggerCSP = "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data:"
	hstsValue  = "max-age=63072000; includeSubDomains"
)

// secureHeaders locks down browser handling of API responses. The docs UI
// gets a looser CSP so it can load its bundle. HSTS is left off in
// development, where the server runs over plain HTTP.
func secureHeaders(hsts bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			for _, kv := range baseHeaders {
				h.Set(kv[0], kv[1])
			}

			csp := apiCSP
			if strings.HasPrefix(r.URL.Path, "/swagger/") {
				csp = swaggerCSP
			}
			h.Set("Content-Security-Policy", csp)

			if hsts {
				h.Set("Strict-Transport-Security", hstsValue)
			}

			next.ServeHTTP(w, r)
		})
	}
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	httputil.RespondFailure(w, http.StatusNotFound, "Not Found", httputil.Detail{Detail: "Not found."})
}

func handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	httputil.RespondFailure(w, http.StatusMethodNotAllowed, "Method Not Allowed",
		httputil.Detail{Detail: `Method "` + r.Method + `" not allowed.`})
}
