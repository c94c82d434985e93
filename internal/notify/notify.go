package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityInfo, SeveritySuccess, SeverityWarning, SeverityDanger:
		return true
	}
	return false
}

type Notification struct {
	ID        string
	Message   string
	Severity  Severity
	CreatedAt time.Time
	ExpiresAt time.Time
}

// ExpiresIn - сколько еще показывать алерт относительно now
func (n Notification) ExpiresIn(now time.Time) time.Duration {
	if d := n.ExpiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}

type Notifier interface {
	Notify(message string, severity Severity)
}

// Overlay - один контейнер алертов. Без очереди, лимита и дедупликации:
// одновременно может висеть сколько угодно уведомлений.
type Overlay struct {
	mu       sync.Mutex
	items    []Notification
	ttl      time.Duration
	now      func() time.Time
	lastUsed time.Time
}

func NewOverlay(ttl time.Duration) *Overlay {
	return newOverlay(ttl, time.Now)
}

func newOverlay(ttl time.Duration, now func() time.Time) *Overlay {
	return &Overlay{
		ttl:      ttl,
		now:      now,
		lastUsed: now(),
	}
}

func (o *Overlay) Notify(message string, severity Severity) {
	if !severity.Valid() {
		severity = SeverityInfo
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	now := o.now()
	o.items = append(o.items, Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Severity:  severity,
		CreatedAt: now,
		ExpiresAt: now.Add(o.ttl),
	})
	o.lastUsed = now
}

// Active возвращает неистекшие алерты, старые первыми
func (o *Overlay) Active() []Notification {
	o.mu.Lock()
	defer o.mu.Unlock()

	now := o.now()
	o.lastUsed = now

	active := make([]Notification, 0, len(o.items))
	for _, n := range o.items {
		if now.Before(n.ExpiresAt) {
			active = append(active, n)
		}
	}
	return active
}

func (o *Overlay) Dismiss(id string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	for i, n := range o.items {
		if n.ID == id {
			o.items = append(o.items[:i], o.items[i+1:]...)
			return true
		}
	}
	return false
}

// Prune удаляет истекшие алерты и возвращает их количество
func (o *Overlay) Prune() int {
	o.mu.Lock()
	defer o.mu.Unlock()

	now := o.now()
	kept := o.items[:0]
	for _, n := range o.items {
		if now.Before(n.ExpiresAt) {
			kept = append(kept, n)
		}
	}
	removed := len(o.items) - len(kept)
	o.items = kept
	return removed
}

func (o *Overlay) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.items)
}

func (o *Overlay) touch() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lastUsed = o.now()
}

// idle: пустой и не трогали дольше ttl
func (o *Overlay) idle() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.items) == 0 && o.now().Sub(o.lastUsed) > o.ttl
}
