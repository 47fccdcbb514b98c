// Package store implements the generic client-side entity store: an
// in-memory collection that mirrors the server-side collection for one
// entity kind, with CRUD mutations applied only after the server has
// acknowledged them, and derived views recomputed from the base collection
// on every read.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/scanfact/scanfact/internal/common"
)

// Entity is anything the store can hold. IDs are assigned by the server,
// unique within a collection and stable across mutations.
type Entity interface {
	EntityID() string
}

// Gateway is the adapter surface the store drives. Implementations perform
// exactly one HTTP request per call and never touch shared state, so tests
// can substitute a fake.
type Gateway[T Entity] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, payload T) (T, error)
	Update(ctx context.Context, id string, payload T) (T, error)
	Remove(ctx context.Context, id string) error

	// Do invokes an entity-specific action (favorite, archive, assign,
	// activation, validate, ...) and returns the server's updated record.
	Do(ctx context.Context, id string, action Action, body any) (T, error)
}

// Action names an entity-specific server-side verb.
type Action string

// Phase is the store lifecycle state visible to the view layer.
type Phase int

const (
	// Uninitialized: no List has been attempted yet.
	Uninitialized Phase = iota
	// Loading: a List is in flight.
	Loading
	// Ready: the collection reflects the last successfully applied server
	// response. Err may still be set after a failed mutation.
	Ready
	// Mutating: a create/update/remove/action is in flight.
	Mutating
	// Failed: the initial List errored and the collection was never loaded.
	Failed
)

func (p Phase) String() string {
	switch p {
	case Uninitialized:
		return "uninitialized"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Mutating:
		return "mutating"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Store owns the canonical local copy of one entity collection for the
// current session's scope. All mutating methods call the gateway first and
// change the collection only after the call succeeds; a failed mutation
// leaves the collection untouched and records the error.
//
// Collection order follows the server's list order; entities created after
// the last List are appended.
type Store[T Entity] struct {
	mu     sync.Mutex
	gw     Gateway[T]
	items  map[string]T
	order  []string
	phase  Phase
	err    error
	loaded bool
}

func New[T Entity](gw Gateway[T]) *Store[T] {
	return &Store[T]{
		gw:    gw,
		items: make(map[string]T),
	}
}

// Phase returns the current lifecycle phase.
func (s *Store[T]) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Err returns the error recorded by the most recent failed operation, or
// nil. A successful operation clears it.
func (s *Store[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Len reports the size of the base collection.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Get returns the entity at id, if present.
func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.items[id]
	return e, ok
}

// All returns the base collection in server order. The returned slice is a
// copy; mutating it does not affect the store.
func (s *Store[T]) All() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Where returns the entities matching pred, preserving collection order.
// Pure recomputation over the base collection; never triggers a request.
func (s *Store[T]) Where(pred func(T) bool) []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		if e := s.items[id]; pred(e) {
			out = append(out, e)
		}
	}
	return out
}

// List fetches the scoped collection and replaces the local one wholesale.
// Overlapping calls are permitted; whichever response resolves last is the
// one the collection ends up reflecting.
func (s *Store[T]) List(ctx context.Context) error {
	s.mu.Lock()
	if s.phase != Mutating {
		s.phase = Loading
	}
	s.mu.Unlock()

	items, err := s.gw.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.err = err
		if s.loaded {
			s.phase = Ready
		} else {
			s.phase = Failed
		}
		return err
	}

	s.items = make(map[string]T, len(items))
	s.order = make([]string, 0, len(items))
	for _, e := range items {
		id := e.EntityID()
		if _, dup := s.items[id]; dup {
			continue
		}
		s.items[id] = e
		s.order = append(s.order, id)
	}
	s.loaded = true
	s.phase = Ready
	s.err = nil
	return nil
}

// Create sends payload to the server and inserts the returned record (with
// its server-assigned id) into the collection. On failure the collection is
// unchanged.
func (s *Store[T]) Create(ctx context.Context, payload T) (T, error) {
	s.beginMutation()

	created, err := s.gw.Create(ctx, payload)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.endMutationLocked(err)
		var zero T
		return zero, err
	}

	s.upsertLocked(created)
	s.endMutationLocked(nil)
	return created, nil
}

// Update sends payload for id and replaces the local entity with the
// server's returned representation; the server stays authoritative for
// computed fields. If id is not present locally the result is still
// inserted.
func (s *Store[T]) Update(ctx context.Context, id string, payload T) (T, error) {
	s.beginMutation()

	updated, err := s.gw.Update(ctx, id, payload)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.selfHealLocked(id, err)
		s.endMutationLocked(err)
		var zero T
		return zero, err
	}

	s.upsertLocked(updated)
	s.endMutationLocked(nil)
	return updated, nil
}

// Remove deletes id on the server, then locally. A failed call keeps the
// entity; there is no optimistic removal.
func (s *Store[T]) Remove(ctx context.Context, id string) error {
	s.beginMutation()

	err := s.gw.Remove(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.selfHealLocked(id, err)
		s.endMutationLocked(err)
		return err
	}

	s.deleteLocked(id)
	s.endMutationLocked(nil)
	return nil
}

// Do runs an entity-specific action and stores the record the server
// returns. Flags flip to the server's acknowledged state, never by local
// inversion ahead of confirmation.
func (s *Store[T]) Do(ctx context.Context, id string, action Action, body any) (T, error) {
	s.beginMutation()

	updated, err := s.gw.Do(ctx, id, action, body)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.selfHealLocked(id, err)
		s.endMutationLocked(err)
		var zero T
		return zero, err
	}

	s.upsertLocked(updated)
	s.endMutationLocked(nil)
	return updated, nil
}

func (s *Store[T]) beginMutation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = Mutating
	s.err = nil
}

func (s *Store[T]) endMutationLocked(err error) {
	s.err = err
	if s.loaded || err == nil {
		s.phase = Ready
	} else if s.phase == Mutating {
		s.phase = Uninitialized
	}
}

// selfHealLocked drops id from the collection when the server reports it no
// longer exists, closing the local/server gap without an explicit Remove.
func (s *Store[T]) selfHealLocked(id string, err error) {
	if errors.Is(err, common.ErrorNotFound) {
		s.deleteLocked(id)
	}
}

func (s *Store[T]) upsertLocked(e T) {
	id := e.EntityID()
	if _, ok := s.items[id]; !ok {
		s.order = append(s.order, id)
	}
	s.items[id] = e
}

func (s *Store[T]) deleteLocked(id string) {
	if _, ok := s.items[id]; !ok {
		return
	}
	delete(s.items, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *Store[T]) snapshot() []T {
	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out
}
