package audit

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"blockstream/internal/platform/ids"
)

// Level mirrors the severities shown in the system log view.
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

const DefaultCapacity = 500

type Entry struct {
	ID           string         `json:"id"`
	Level        Level          `json:"level"`
	Message      string         `json:"message"`
	Action       string         `json:"action,omitempty"`
	ResourceType string         `json:"resourceType,omitempty"`
	ResourceID   string         `json:"resourceId,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	RequestID    string         `json:"requestId,omitempty"`
	IPAddress    string         `json:"ipAddress,omitempty"`
	UserAgent    string         `json:"userAgent,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// Source identifies the caller that triggered an entry.
type Source struct {
	RequestID string
	IPAddress string
	UserAgent string
}

type sourceKey struct{}

// WithSource attaches request details picked up by Log.
func WithSource(ctx context.Context, src Source) context.Context {
	return context.WithValue(ctx, sourceKey{}, src)
}

func sourceFrom(ctx context.Context) Source {
	src, _ := ctx.Value(sourceKey{}).(Source)
	return src
}

// Logger keeps the most recent entries in memory and mirrors each one to
// zerolog.
type Logger struct {
	mu       sync.RWMutex
	entries  []Entry
	next     int
	full     bool
	ids      ids.Generator
	now      func() time.Time
	onRecord func()
}

type Option func(*Logger)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Logger) { l.now = now }
}

// WithHook registers a callback run after each recorded entry.
func WithHook(fn func()) Option {
	return func(l *Logger) { l.onRecord = fn }
}

func NewLogger(capacity int, gen ids.Generator, opts ...Option) *Logger {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	l := &Logger{
		entries: make([]Entry, capacity),
		ids:     gen,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Log records a mutation of a resource.
func (l *Logger) Log(ctx context.Context, action, resourceType, resourceID, message string, metadata map[string]any) {
	src := sourceFrom(ctx)
	l.record(Entry{
		Level:        LevelInfo,
		Message:      message,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Metadata:     metadata,
		RequestID:    src.RequestID,
		IPAddress:    src.IPAddress,
		UserAgent:    src.UserAgent,
	})
}

// Event records a system message not tied to a resource.
func (l *Logger) Event(level Level, message string) {
	l.record(Entry{Level: level, Message: message})
}

func (l *Logger) record(e Entry) {
	e.ID = l.ids.NewID(ids.PrefixLog)
	e.CreatedAt = l.now().UTC()

	l.mu.Lock()
	l.entries[l.next] = e
	l.next = (l.next + 1) % len(l.entries)
	if l.next == 0 {
		l.full = true
	}
	l.mu.Unlock()

	evt := log.WithLevel(zerologLevel(e.Level)).Str("audit_id", e.ID)
	if e.Action != "" {
		evt = evt.Str("action", e.Action).Str("resource_type", e.ResourceType).Str("resource_id", e.ResourceID)
	}
	if e.RequestID != "" {
		evt = evt.Str("request_id", e.RequestID)
	}
	evt.Msg(e.Message)

	if l.onRecord != nil {
		l.onRecord()
	}
}

// Recent returns up to limit entries, newest first. limit <= 0 returns all
// retained entries.
func (l *Logger) Recent(limit int) []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	n := l.next
	if l.full {
		n = len(l.entries)
	}
	if limit <= 0 || limit > n {
		limit = n
	}

	out := make([]Entry, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (l.next - i + len(l.entries)) % len(l.entries)
		out = append(out, l.entries[idx])
	}
	return out
}

func zerologLevel(level Level) zerolog.Level {
	switch level {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
