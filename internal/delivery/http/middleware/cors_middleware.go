package middleware

import "net/http"

// CORSMiddleware answers preflight requests and stamps the CORS headers the
// clinic frontends need on every response.
type CORSMiddleware struct {
	allowedMethods string
	allowedHeaders string
}

func NewCORSMiddleware() *CORSMiddleware {
	return &CORSMiddleware{
		allowedMethods: "GET, POST, PUT, DELETE, OPTIONS",
		allowedHeaders: "Content-Type, Authorization",
	}
}

// Handle short-circuits OPTIONS preflights with a bare 200; all other
// requests pass through with the headers already set.
func (m *CORSMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", m.allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", m.allowedHeaders)

		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, req)
	})
}
