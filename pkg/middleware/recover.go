package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/shashiranjanraj/storerating/config"
	"github.com/shashiranjanraj/storerating/pkg/logger"
	"github.com/shashiranjanraj/storerating/pkg/response"
)

// Recovery catches any panic in downstream handlers, logs the stack trace,
// and returns a 500 envelope. The stack is echoed to the client only
// outside production.
//
//	r.Use(metrics.Middleware())
//	r.Use(reqid.Middleware())
//	r.Use(middleware.Logger)
//	r.Use(middleware.Recovery)
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			stack := string(debug.Stack())
			logger.WithCtx(r.Context()).Error("panic recovered",
				"error", fmt.Sprintf("%v", rec),
				"stack", stack,
				"method", r.Method,
				"path", r.URL.Path,
			)

			body := response.Map{"success": false, "message": "Internal server error"}
			if !config.IsProduction() {
				body["error"] = fmt.Sprintf("%v", rec)
				body["stack"] = stack
			}
			response.JSON(w, http.StatusInternalServerError, body)
		}()
		next.ServeHTTP(w, r)
	})
}
