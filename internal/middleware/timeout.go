package middleware

import (
	"net/http"
	"time"
)

const timeoutBody = `{"error": "Request timeout"}`

// Timeout ограничивает время обработки; 0 отключает ограничение
func Timeout(timeout time.Duration) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if timeout <= 0 {
			return next
		}
		return http.TimeoutHandler(next, timeout, timeoutBody)
	}
}
