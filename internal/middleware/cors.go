package middleware

import (
	"net/http"

	"github.com/RubachokBoss/progress-log/client/internal/config"
	"github.com/go-chi/cors"
)

// заголовки, без которых htmx-запросы с другого origin не работают
var (
	htmxRequestHeaders  = []string{"HX-Request", "HX-Target", "HX-Trigger", "HX-Current-URL"}
	htmxResponseHeaders = []string{"HX-Reswap", "HX-Trigger"}
)

// CORS строится из секции cors конфига; htmx-заголовки добавляются всегда
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   union(cfg.AllowedHeaders, htmxRequestHeaders),
		ExposedHeaders:   union(cfg.ExposedHeaders, htmxResponseHeaders),
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})
}

func union(base, extra []string) []string {
	out := make([]string, 0, len(base)+len(extra))
	seen := make(map[string]bool, len(base)+len(extra))
	for _, h := range append(append([]string{}, base...), extra...) {
		key := http.CanonicalHeaderKey(h)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, h)
	}
	return out
}
