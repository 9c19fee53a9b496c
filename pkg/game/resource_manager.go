package game

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"sync"

	"github.com/decker502/highway/pkg/config"
	"golang.org/x/sync/errgroup"
)

// ModelLoader requests model descriptors without blocking the game loop.
// The spawner and mode controller only depend on this interface, so tests
// can substitute loaders that resolve or fail on demand.
type ModelLoader interface {
	LoadModel(name string) *LoadHandle
}

// LoadHandle is a pollable future for a single model load.
//
// The game loop never waits on a handle: it calls Done() once per tick and
// reads Result() only after Done() reports true. A failed load is reported
// through the error and is never retried by the handle itself.
type LoadHandle struct {
	name string
	once sync.Once
	done chan struct{}
	desc *config.ModelDescriptor
	err  error
}

func newLoadHandle(name string) *LoadHandle {
	return &LoadHandle{name: name, done: make(chan struct{})}
}

// resolve completes the handle; only the first call has any effect.
func (h *LoadHandle) resolve(desc *config.ModelDescriptor, err error) {
	h.once.Do(func() {
		h.desc = desc
		h.err = err
		close(h.done)
	})
}

// PendingHandle returns an unresolved handle together with the function that
// completes it. Loaders that are not backed by a filesystem use it to hand out
// handles they finish later.
func PendingHandle(name string) (*LoadHandle, func(*config.ModelDescriptor, error)) {
	h := newLoadHandle(name)
	return h, h.resolve
}

// ResolvedHandle returns a handle that is already complete with the given descriptor.
func ResolvedHandle(desc *config.ModelDescriptor) *LoadHandle {
	h := newLoadHandle(desc.Name)
	h.resolve(desc, nil)
	return h
}

// FailedHandle returns a handle that is already complete with the given error.
func FailedHandle(name string, err error) *LoadHandle {
	h := newLoadHandle(name)
	h.resolve(nil, err)
	return h
}

// Name returns the requested model name.
func (h *LoadHandle) Name() string {
	return h.name
}

// Done reports whether the load has finished, successfully or not.
func (h *LoadHandle) Done() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Result returns the loaded descriptor or the load error.
// It must only be called after Done() returns true.
func (h *LoadHandle) Result() (*config.ModelDescriptor, error) {
	if !h.Done() {
		return nil, fmt.Errorf("model %s: load still pending", h.name)
	}
	return h.desc, h.err
}

// Wait blocks until the load finishes or ctx is cancelled.
// Only tools and the loading scene use it; the game loop polls instead.
func (h *LoadHandle) Wait(ctx context.Context) (*config.ModelDescriptor, error) {
	select {
	case <-h.done:
		return h.desc, h.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// ResourceManager loads and caches model descriptors from a data filesystem.
//
// Descriptors live under data/models/<name>.yaml. LoadModel starts the read on
// a background goroutine and returns immediately; completed descriptors are
// cached so later requests resolve without touching the filesystem.
//
// Thread Safety Note:
// The cache and in-flight table are guarded by a mutex because loads complete
// on worker goroutines. Handles themselves are safe to poll from the game loop.
//
// Usage:
//
//	rm := NewResourceManager(embedded.FS())
//	h := rm.LoadModel("car")
//	// ... later, once per tick:
//	if h.Done() {
//	    desc, err := h.Result()
//	}
type ResourceManager struct {
	fsys fs.FS

	mu       sync.Mutex
	cache    map[string]*config.ModelDescriptor // Loaded descriptors: name -> descriptor
	inFlight map[string]*LoadHandle             // Pending loads: name -> shared handle
}

// NewResourceManager creates a ResourceManager reading from fsys.
//
// Parameters:
//   - fsys: A filesystem whose root contains the data/ directory
//     (the embedded FS, os.DirFS of the repository root, or an fstest.MapFS in tests).
func NewResourceManager(fsys fs.FS) *ResourceManager {
	return &ResourceManager{
		fsys:     fsys,
		cache:    make(map[string]*config.ModelDescriptor),
		inFlight: make(map[string]*LoadHandle),
	}
}

// LoadModel starts loading the named model and returns its handle.
//
// Cached models resolve immediately. Concurrent requests for the same model
// share one in-flight handle. Failed loads are not cached, so a later request
// tries again.
func (rm *ResourceManager) LoadModel(name string) *LoadHandle {
	rm.mu.Lock()
	if desc, ok := rm.cache[name]; ok {
		rm.mu.Unlock()
		return ResolvedHandle(desc)
	}
	if h, ok := rm.inFlight[name]; ok {
		rm.mu.Unlock()
		return h
	}
	h := newLoadHandle(name)
	rm.inFlight[name] = h
	rm.mu.Unlock()

	go func() {
		desc, err := rm.readModel(name)

		rm.mu.Lock()
		delete(rm.inFlight, name)
		if err == nil {
			rm.cache[name] = desc
		}
		rm.mu.Unlock()

		if err != nil {
			log.Printf("[ResourceManager] Failed to load model %s: %v", name, err)
		}
		h.resolve(desc, err)
	}()
	return h
}

// GetModel returns a previously loaded descriptor from the cache.
func (rm *ResourceManager) GetModel(name string) (*config.ModelDescriptor, bool) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	desc, ok := rm.cache[name]
	return desc, ok
}

// Preload loads all named models in parallel and waits for them.
//
// The first failure cancels the remaining waits and is returned. progress, if
// not nil, is called after each successful load with the number of finished
// models; it may be called from worker goroutines.
func (rm *ResourceManager) Preload(ctx context.Context, names []string, progress func(done, total int)) error {
	g, ctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	finished := 0
	for _, name := range names {
		g.Go(func() error {
			if _, err := rm.LoadModel(name).Wait(ctx); err != nil {
				return fmt.Errorf("preload %s: %w", name, err)
			}
			mu.Lock()
			finished++
			n := finished
			mu.Unlock()
			if progress != nil {
				progress(n, len(names))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	log.Printf("[ResourceManager] Preloaded %d models", len(names))
	return nil
}

func (rm *ResourceManager) readModel(name string) (*config.ModelDescriptor, error) {
	data, err := fs.ReadFile(rm.fsys, config.ModelPath(name))
	if err != nil {
		return nil, fmt.Errorf("failed to read model %s: %w", name, err)
	}
	desc, err := config.ParseModelDescriptor(data)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", name, err)
	}
	return desc, nil
}
