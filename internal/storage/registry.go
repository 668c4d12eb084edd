package storage

import (
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Visitor groups the stores that belong to one visitor.
type Visitor struct {
	ID           string
	Appointments *AppointmentStore
	Profile      *ProfileStore
}

// Registry hands out per-visitor stores over a shared backend. Recently
// used visitors are kept so their store mutex keeps serializing writes;
// evicting one only drops the in-process lock, never data.
type Registry struct {
	kv     KV
	logger *slog.Logger
	opts   []Option
	cache  *lru.Cache[string, *Visitor]
}

func NewRegistry(backend KV, size int, logger *slog.Logger, opts ...Option) (*Registry, error) {
	cache, err := lru.New[string, *Visitor](size)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		kv:     backend,
		logger: logger,
		opts:   opts,
		cache:  cache,
	}, nil
}

func (r *Registry) For(visitorID string) *Visitor {
	if v, ok := r.cache.Get(visitorID); ok {
		return v
	}

	logger := r.logger.With("visitor_id", visitorID)
	opts := append([]Option{WithKey(AppointmentsKey + ":" + visitorID)}, r.opts...)
	v := &Visitor{
		ID:           visitorID,
		Appointments: NewAppointmentStore(r.kv, logger, opts...),
		Profile:      NewProfileStore(r.kv, ProfileKey+":"+visitorID, logger),
	}

	// Another request may have raced us; keep whichever landed first.
	if prev, ok, _ := r.cache.PeekOrAdd(visitorID, v); ok {
		return prev
	}
	return v
}
