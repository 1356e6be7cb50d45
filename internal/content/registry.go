package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"gorm.io/gorm"
)

// LookupFunc loads a single entity by primary key. It must return
// gorm.ErrRecordNotFound (possibly wrapped) when the row is gone.
type LookupFunc func(ctx context.Context, db *gorm.DB, id uint) (Resolvable, error)

// Kind describes one table that polymorphic references may point at.
type Kind struct {
	Name   string
	Label  string
	Lookup LookupFunc
	Media  FieldFilter
}

// Description is what admin listings show for a reference.
type Description struct {
	Ref    Ref    `json:"ref"`
	Label  string `json:"label"`
	Link   string `json:"link,omitempty"`
	Exists bool   `json:"exists"`
}

type Registry struct {
	mu    sync.RWMutex
	kinds map[string]*Kind
}

func NewRegistry() *Registry {
	return &Registry{
		kinds: make(map[string]*Kind),
	}
}

func (r *Registry) Register(k *Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds[k.Name] = k
}

func (r *Registry) Get(name string) *Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.kinds[name]
}

func (r *Registry) Exists(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.kinds[name]
	return ok
}

// Names returns the registered kind names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.kinds))
	for name := range r.kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MediaFilter returns the indexing filter configured for a kind.
// Unknown kinds are unrestricted.
func (r *Registry) MediaFilter(kind string) FieldFilter {
	if k := r.Get(kind); k != nil {
		return k.Media
	}
	return FieldFilter{}
}

// Resolve performs a fresh lookup of ref. An unknown kind or a missing row
// yields ok == false with a nil error; only storage failures are returned.
func (r *Registry) Resolve(ctx context.Context, db *gorm.DB, ref Ref) (Resolvable, bool, error) {
	k := r.Get(ref.Kind)
	if k == nil || k.Lookup == nil {
		return nil, false, nil
	}
	entity, err := k.Lookup(ctx, db, ref.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("resolve %s: %w", ref, err)
	}
	return entity, true, nil
}

// Describe renders ref for display, falling back to MissingLabel.
func (r *Registry) Describe(ctx context.Context, db *gorm.DB, ref Ref) Description {
	desc := Description{Ref: ref, Label: MissingLabel}
	entity, ok, err := r.Resolve(ctx, db, ref)
	if err != nil {
		slog.Warn("content lookup failed", "kind", ref.Kind, "id", ref.ID, "error", err)
		return desc
	}
	if !ok {
		return desc
	}
	desc.Exists = true
	desc.Label = entity.String()
	desc.Link = AdminPath(ref)
	return desc
}

// AdminPath is the admin API location of a referenced entity.
func AdminPath(ref Ref) string {
	return fmt.Sprintf("/api/admin/content/%s/%d", ref.Kind, ref.ID)
}

// ModelLookup builds a LookupFunc for a GORM model type.
func ModelLookup[T any, PT interface {
	*T
	Resolvable
}](preloads ...string) LookupFunc {
	return func(ctx context.Context, db *gorm.DB, id uint) (Resolvable, error) {
		var row T
		q := db.WithContext(ctx)
		for _, p := range preloads {
			q = q.Preload(p)
		}
		if err := q.First(&row, id).Error; err != nil {
			return nil, err
		}
		return PT(&row), nil
	}
}
