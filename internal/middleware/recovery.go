package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/sableashish494/ashish-primaspot-main/pkg/apierror"
	"github.com/sableashish494/ashish-primaspot-main/pkg/logger"
)

// Recovery is a middleware that recovers from panics so a bad request never
// crashes the serving process.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger.GetLogger().ErrorWithFields("panic recovered", map[string]interface{}{
					"panic":      err,
					"path":       r.URL.Path,
					"request_id": GetRequestID(r.Context()),
					"stack":      string(debug.Stack()),
				})

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write(apierror.InternalError("internal server error").ToJSON())
			}
		}()

		next.ServeHTTP(w, r)
	})
}
