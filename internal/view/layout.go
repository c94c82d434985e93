package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const alertScript = `
function scheduleAlerts(root) {
  root.querySelectorAll('[data-expires-in]').forEach(function (el) {
    if (el.dataset.scheduled) { return; }
    el.dataset.scheduled = '1';
    setTimeout(function () {
      el.classList.remove('show');
      setTimeout(function () { el.remove(); }, 150);
    }, parseInt(el.dataset.expiresIn, 10));
  });
}
document.addEventListener('DOMContentLoaded', function () { scheduleAlerts(document); });
document.addEventListener('htmx:load', function (e) { scheduleAlerts(e.detail.elt); });
document.addEventListener('htmx:confirm', function (e) {
  var key = e.detail.elt.querySelector && e.detail.elt.querySelector('[name="secret_key"]');
  if (key && key.value.trim() === '') {
    e.preventDefault();
    e.detail.issueRequest(true);
  }
});
`

// Layout оборачивает фрагмент в полноценную страницу
func Layout(title string) func(templ.Component) templ.Component {
	return func(content templ.Component) templ.Component {
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			p := newPrinter(w)
			p.print(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
			p.print(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
			p.printf(`<title>%s</title>`, esc(title))
			p.print(`<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css">`)
			p.print(`<script src="https://unpkg.com/htmx.org@1.9.12"></script>`)
			p.printf(`<script>%s</script>`, alertScript)
			p.print(`</head><body class="bg-light"><div class="container py-4">`)
			p.printf(`<h1 class="h3 mb-4">%s</h1>`, esc(title))
			if p.err != nil {
				return p.err
			}
			if err := content.Render(ctx, w); err != nil {
				return err
			}
			p.print(`</div></body></html>`)
			return p.err
		})
	}
}
