package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/templui/goalmaster/internal/handler"
	"github.com/templui/goalmaster/internal/logger"
)

// Recover turns a handler panic into a 500 response.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			logger.FromContext(r.Context()).Error("panic recovered",
				"panic", rec,
				"path", r.URL.Path,
				"stack", string(debug.Stack()),
			)
			handler.WriteError(w, r, fmt.Errorf("panic: %v", rec))
		}()

		next.ServeHTTP(w, r)
	})
}
