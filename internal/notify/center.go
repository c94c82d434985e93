package notify

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Center - единственный на процесс сервис уведомлений. Создается в app.New и
// передается в обработчики; на каждую сессию браузера не больше одного Overlay.
type Center struct {
	mu       sync.Mutex
	overlays map[string]*Overlay
	ttl      time.Duration
	now      func() time.Time
	logger   zerolog.Logger
}

func NewCenter(ttl time.Duration, logger zerolog.Logger) *Center {
	return &Center{
		overlays: make(map[string]*Overlay),
		ttl:      ttl,
		now:      time.Now,
		logger:   logger.With().Str("component", "notify-center").Logger(),
	}
}

func (c *Center) TTL() time.Duration {
	return c.ttl
}

// Overlay создается лениво при первом обращении
func (c *Center) Overlay(sessionID string) *Overlay {
	c.mu.Lock()
	defer c.mu.Unlock()

	// отметка под c.mu: Sweep не удалит оверлей, который только что выдали
	if o, ok := c.overlays[sessionID]; ok {
		o.touch()
		return o
	}

	o := newOverlay(c.ttl, c.now)
	c.overlays[sessionID] = o
	return o
}

func (c *Center) Dismiss(sessionID, id string) bool {
	c.mu.Lock()
	o, ok := c.overlays[sessionID]
	c.mu.Unlock()

	if !ok {
		return false
	}
	return o.Dismiss(id)
}

func (c *Center) Sessions() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.overlays)
}

// Sweep чистит истекшие алерты и забытые пустые оверлеи
func (c *Center) Sweep() (expired, dropped int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, o := range c.overlays {
		expired += o.Prune()
		if o.idle() {
			delete(c.overlays, id)
			dropped++
		}
	}
	return expired, dropped
}

// Run крутит Sweep до отмены ctx
func (c *Center) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	c.logger.Info().Dur("interval", interval).Dur("ttl", c.ttl).Msg("Notification janitor started")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info().Msg("Notification janitor stopped")
			return
		case <-ticker.C:
			expired, dropped := c.Sweep()
			if expired > 0 || dropped > 0 {
				c.logger.Debug().
					Int("expired", expired).
					Int("dropped_overlays", dropped).
					Msg("Notifications swept")
			}
		}
	}
}
