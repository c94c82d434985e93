package view

import (
	"context"
	"io"
	"time"

	"github.com/RubachokBoss/progress-log/client/internal/notify"
	"github.com/a-h/templ"
)

func Overlay(items []notify.Notification, now time.Time) templ.Component {
	return overlay(items, now, false)
}

// OverlaySwap - тот же оверлей для hx-swap-oob: остальная страница не трогается
func OverlaySwap(items []notify.Notification, now time.Time) templ.Component {
	return overlay(items, now, true)
}

func overlay(items []notify.Notification, now time.Time, oob bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := newPrinter(w)
		attrs := ""
		if oob {
			attrs = ` hx-swap-oob="true"`
		}
		p.printf(`<div id="notification-overlay"%s class="position-fixed top-0 end-0 p-3" style="z-index: 1080; max-width: 420px;">`, attrs)
		if p.err != nil {
			return p.err
		}
		for _, n := range items {
			if err := Alert(n, now).Render(ctx, w); err != nil {
				return err
			}
		}
		p.print(`</div>`)
		return p.err
	})
}

func Alert(n notify.Notification, now time.Time) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := newPrinter(w)
		p.printf(`<div class="alert alert-%s alert-dismissible fade show shadow-sm" role="alert" id="alert-%s" data-expires-in="%d">%s`+
			`<button type="button" class="btn-close" aria-label="Close" hx-delete="/ui/notifications/%s" hx-target="closest .alert" hx-swap="outerHTML"></button></div>`,
			esc(string(n.Severity)), esc(n.ID), n.ExpiresIn(now).Milliseconds(), esc(n.Message), esc(n.ID))
		return p.err
	})
}
