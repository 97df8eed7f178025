package http

import (
	"concert-ticket-pipeline/common/constant"
	"concert-ticket-pipeline/common/errs"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const timeoutBody = `{"error":"request timeout"}`

func TimeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, timeoutBody)
	}
}

func CorsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RecoverMiddleware answers a panicking request with the generic 500 body.
func RecoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				err := fmt.Errorf("panic: %v", rec)
				slog.ErrorContext(r.Context(), "http handler panicked", slog.String("path", r.URL.Path), slog.Any(constant.LogFieldErr, err))
				writeErrorResponse(w, &errs.HttpError{Code: http.StatusInternalServerError, Message: constant.InternalErrorMessage})
			}
		}()

		next.ServeHTTP(w, r)
	})
}
