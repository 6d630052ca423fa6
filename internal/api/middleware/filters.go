package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/emicklei/go-restful/v3"
	"github.com/povarna/generative-ai-agents/conversation-analyzer/internal/metrics"
	"github.com/rs/zerolog/log"
)

const unmatchedRoute = "unmatched"

// Install registers the request filters on container. Metrics runs outside
// RecoverPanic so recovered panics are still counted as 500s.
func Install(container *restful.Container) {
	container.Filter(Logger)
	container.Filter(Metrics)
	container.Filter(RecoverPanic)
}

// Logger logs every request with its status and latency.
func Logger(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	start := time.Now()
	chain.ProcessFilter(req, resp)

	log.Info().
		Str("method", req.Request.Method).
		Str("path", req.Request.URL.Path).
		Int("status", resp.StatusCode()).
		Dur("latency", time.Since(start)).
		Msg("request")
}

// RecoverPanic turns a panicking handler into a 500 response.
func RecoverPanic(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("panic", fmt.Sprint(r)).
				Str("stack", string(debug.Stack())).
				Str("path", req.Request.URL.Path).
				Msg("recovered from panic")
			HandleError(resp, fmt.Errorf("internal server error"), http.StatusInternalServerError)
		}
	}()

	chain.ProcessFilter(req, resp)
}

// Metrics records request counts and durations per route template.
func Metrics(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	start := time.Now()
	chain.ProcessFilter(req, resp)

	route := req.SelectedRoutePath()
	if route == "" {
		route = unmatchedRoute
	}
	metrics.RecordHTTPRequest(req.Request.Method, route, resp.StatusCode(), time.Since(start))
}
