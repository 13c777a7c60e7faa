package router

import (
	"log"
	"net/http"
	"strings"
	"time"
)

// --- ANSI color codes ---
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
)

type HandlerFunc func(http.ResponseWriter, *http.Request)

// Router is a small method-aware mux with wildcard path segments and a
// colored access log.
type Router struct {
	routes    map[string]HandlerFunc // key = METHOD:PATH
	paths     map[string]bool
	wildcards []string // wildcard route paths in registration order
}

func New() *Router {
	return &Router{
		routes: make(map[string]HandlerFunc),
		paths:  make(map[string]bool),
	}
}

func (r *Router) handle(method, path string, h HandlerFunc) {
	r.routes[method+":"+path] = h
	if strings.Contains(path, "*") && !r.paths[path] {
		r.wildcards = append(r.wildcards, path)
	}
	r.paths[path] = true
}

func (r *Router) GET(path string, h HandlerFunc)  { r.handle(http.MethodGet, path, h) }
func (r *Router) POST(path string, h HandlerFunc) { r.handle(http.MethodPost, path, h) }

// ServeHTTP dispatches exact routes first, then wildcard routes.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	start := time.Now()
	lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

	if h, ok := r.routes[req.Method+":"+req.URL.Path]; ok {
		h(lrw, req)
	} else if h, ok := r.matchWildcard(req.Method, req.URL.Path); ok {
		h(lrw, req)
	} else if r.paths[req.URL.Path] {
		http.Error(lrw, "Method Not Allowed", http.StatusMethodNotAllowed)
	} else {
		http.Error(lrw, "Not Found", http.StatusNotFound)
	}

	log.Printf("%s[%s]%s %s%s%s %s %s%d%s %s(%v)%s",
		colorCyan, start.Format("2006-01-02 15:04:05"), colorReset,
		methodColor(req.Method), req.Method, colorReset,
		req.URL.Path,
		statusColor(lrw.statusCode), lrw.statusCode, colorReset,
		colorBlue, time.Since(start), colorReset)
}

// matchWildcard tries wildcard routes in registration order, so callers
// register specific routes before generic ones.
func (r *Router) matchWildcard(method, path string) (HandlerFunc, bool) {
	for _, routePath := range r.wildcards {
		if matchWildcardRoute(path, routePath) {
			if h, ok := r.routes[method+":"+routePath]; ok {
				return h, true
			}
		}
	}
	return nil, false
}

// matchWildcardRoute matches a request path against a route where "*"
// stands for exactly one path segment. A trailing "/*" also matches any
// remainder.
func matchWildcardRoute(path, route string) bool {
	if strings.HasSuffix(route, "/*") {
		prefix := strings.TrimSuffix(route, "*")
		if strings.HasPrefix(path, prefix) && len(path) > len(prefix) {
			return true
		}
	}
	pathParts := strings.Split(path, "/")
	routeParts := strings.Split(route, "/")
	if len(pathParts) != len(routeParts) {
		return false
	}
	for i, rp := range routeParts {
		if rp != "*" && rp != pathParts[i] {
			return false
		}
	}
	return true
}

// Start runs the HTTP server on addr.
func (r *Router) Start(addr string) error {
	log.Printf("%s🚀 Server listening on %s%s", colorGreen, addr, colorReset)
	return http.ListenAndServe(addr, r)
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func statusColor(code int) string {
	switch {
	case code >= 500:
		return colorRed
	case code >= 400:
		return colorYellow
	default:
		return colorGreen
	}
}

func methodColor(method string) string {
	switch method {
	case http.MethodPost:
		return colorYellow
	case http.MethodGet:
		return colorGreen
	default:
		return colorBlue
	}
}
