package render

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/rs/zerolog"
)

func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// RenderWithLayout: htmx получает только фрагмент, обычный запрос - всю страницу
func RenderWithLayout(
	w http.ResponseWriter,
	r *http.Request,
	content templ.Component,
	wrappers ...func(templ.Component) templ.Component,
) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	wrapped := content
	if !IsHTMX(r) {
		for _, wrap := range wrappers {
			wrapped = wrap(wrapped)
		}
	}

	if err := wrapped.Render(r.Context(), w); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("Failed to render page")
	}
}
