// Package assets provides a typed asset store that plugs into the bevi
// scheduler: loads are started asynchronously, integrated into the
// store by a system at the AssetLoad stage, and announced through the
// scheduler's event channel so consumers at AssetEvents and later see
// Added and Removed edges within the same tick.
package assets

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/oriumgames/bevi"
)

// HandleID identifies one asset within a store.
type HandleID = uint32

// Handle is a reference to an asset in a Store. The store counts
// living handles explicitly: Clone when sharing a handle, Release when
// done with it. An asset whose last handle was released is dropped by
// the next AssetLoad pass and announced with a Removed event.
type Handle[T any] struct {
	id    HandleID
	store *Store[T]
}

// ID returns the handle's asset ID.
func (h Handle[T]) ID() HandleID { return h.id }

// Clone registers one more living reference to the asset.
func (h Handle[T]) Clone() Handle[T] {
	h.store.mu.Lock()
	h.store.refs[h.id]++
	h.store.mu.Unlock()
	return h
}

// Release drops one living reference to the asset.
func (h Handle[T]) Release() {
	h.store.mu.Lock()
	if h.store.refs[h.id] > 0 {
		h.store.refs[h.id]--
	}
	h.store.mu.Unlock()
}

// Op is the kind of an asset event.
type Op uint8

const (
	// Added announces an asset that became available this tick.
	Added Op = iota
	// Removed announces an asset dropped after its last handle was
	// released.
	Removed
)

// Event is emitted on the scheduler's event channel for every asset
// added to or removed from a Store[T].
type Event[T any] struct {
	Op     Op
	Handle Handle[T]
}

// Processor turns raw file bytes into an asset value.
type Processor[T any] func([]byte) (*T, error)

// Store holds all assets of one type. It is registered as a bevi
// resource; systems reach it with bevi.Resource[assets.Store[T]].
//
// The store itself is used single-threaded like every other resource;
// the mutex only covers the pending-load list and the reference
// counts, which loader callbacks touch from their own goroutines.
type Store[T any] struct {
	mu     sync.Mutex
	values map[HandleID]*T
	refs   map[HandleID]int
	lastID HandleID

	added   []Handle[T]
	pending []*pendingLoad

	loader    FileLoader
	processor Processor[T]
}

// pendingLoad tracks one in-flight file load. Completion is matched by
// token, so the loader callback never holds an asset handle itself.
type pendingLoad struct {
	token  uuid.UUID
	handle HandleID
	path   string
	data   []byte
	done   bool
	err    error
}

// NewStore creates a store that reads files through the given loader.
func NewStore[T any](loader FileLoader) *Store[T] {
	return &Store[T]{
		values: make(map[HandleID]*T),
		refs:   make(map[HandleID]int),
		loader: loader,
	}
}

// SetProcessor installs the bytes-to-asset processor used for loaded
// files.
func (s *Store[T]) SetProcessor(p Processor[T]) { s.processor = p }

// Add inserts an already-constructed asset and returns its handle.
func (s *Store[T]) Add(v T) Handle[T] {
	s.mu.Lock()
	h := s.newHandle()
	s.values[h.id] = &v
	s.added = append(s.added, h)
	s.mu.Unlock()
	return h
}

// Get returns the asset for the handle, if it is available.
func (s *Store[T]) Get(h Handle[T]) (*T, bool) {
	s.mu.Lock()
	v, ok := s.values[h.id]
	s.mu.Unlock()
	return v, ok
}

// Load starts an asynchronous load of path and returns the handle the
// asset will be available under once the load completes and the
// AssetLoad stage integrates it.
func (s *Store[T]) Load(path string) Handle[T] {
	s.mu.Lock()
	h := s.newHandle()
	p := &pendingLoad{token: uuid.New(), handle: h.id, path: path}
	s.pending = append(s.pending, p)
	s.mu.Unlock()

	s.loader.Load(path, func(data []byte, err error) {
		s.complete(p.token, data, err)
	})
	return h
}

// EverythingLoaded reports whether no loads are in flight. Preload
// states poll this to decide when to transition.
func (s *Store[T]) EverythingLoaded() bool {
	s.mu.Lock()
	n := len(s.pending)
	s.mu.Unlock()
	return n == 0
}

// newHandle allocates an ID with one living reference. mu held.
func (s *Store[T]) newHandle() Handle[T] {
	s.lastID++
	s.refs[s.lastID] = 1
	return Handle[T]{id: s.lastID, store: s}
}

// complete records the outcome of an in-flight load by token.
func (s *Store[T]) complete(token uuid.UUID, data []byte, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.pending {
		if p.token == token {
			p.data = data
			p.err = err
			p.done = true
			return
		}
	}
}

// update is the per-tick AssetLoad system body: it integrates finished
// loads, announces additions, and drops assets without living handles.
func (s *Store[T]) update(c *bevi.Context) {
	s.mu.Lock()

	// Fold completed loads into the store.
	kept := s.pending[:0]
	for _, p := range s.pending {
		if !p.done {
			kept = append(kept, p)
			continue
		}
		if p.err != nil {
			c.Logger().Error("asset load failed", zap.String("path", p.path), zap.Error(p.err))
			delete(s.refs, p.handle)
			continue
		}
		if s.processor == nil {
			c.Logger().Error("no processor installed for asset type", zap.String("path", p.path))
			delete(s.refs, p.handle)
			continue
		}
		v, err := s.processor(p.data)
		if err != nil {
			c.Logger().Error("asset processing failed", zap.String("path", p.path), zap.Error(err))
			delete(s.refs, p.handle)
			continue
		}
		s.values[p.handle] = v
		s.added = append(s.added, Handle[T]{id: p.handle, store: s})
	}
	s.pending = kept

	added := s.added
	s.added = nil

	// Drop assets whose last handle was released.
	var removed []Handle[T]
	for id, refs := range s.refs {
		if refs == 0 {
			if _, loaded := s.values[id]; loaded {
				removed = append(removed, Handle[T]{id: id, store: s})
			}
			delete(s.values, id)
			delete(s.refs, id)
		}
	}
	s.mu.Unlock()

	for _, h := range added {
		bevi.EmitEvent(c, Event[T]{Op: Added, Handle: h})
	}
	for _, h := range removed {
		bevi.EmitEvent(c, Event[T]{Op: Removed, Handle: h})
	}
}

// AddType registers the asset type T on the builder: the Store[T]
// resource, its Event[T] channel, and the integration system at the
// AssetLoad stage.
func AddType[T any](b *bevi.Builder, loader FileLoader, p Processor[T]) *bevi.Builder {
	store := NewStore[T](loader)
	store.SetProcessor(p)
	b.InsertResource(store)
	bevi.AddEvent[Event[T]](b)
	b.AddSystemToStage(bevi.AssetLoad, bevi.SystemFunc(store.update))
	return b
}
