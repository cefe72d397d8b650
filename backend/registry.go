package backend

import (
	"context"
	"fmt"
	"sort"

	"github.com/gogpu/frameloop"
	"github.com/gogpu/gpucontext"
)

// registry holds registered backends.
// Priority order for selection: webgpu before software.
var registry = gpucontext.NewRegistry[Opener](
	gpucontext.WithPriority(NameWebGPU, NameSoftware),
)

// Register registers a backend opener with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it is replaced.
func Register(name string, o Opener) {
	registry.Register(name, func() Opener { return o })
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registry.Unregister(name)
}

// Available returns the registered backend names in sorted order.
func Available() []string {
	names := registry.Available()
	sort.Strings(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	return registry.Has(name)
}

// Best returns the name of the highest-priority registered backend,
// or "" when none is registered.
func Best() string {
	return registry.BestName()
}

// Open opens the named backend for target.
func Open(ctx context.Context, name string, target Target) (frameloop.Backend, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	o := registry.Get(name)
	if o == nil {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	frameloop.Logger().Debug("backend: opening", "name", name, "headless", target.Headless())
	return o.Open(ctx, target)
}

// OpenDefault opens the highest-priority registered backend.
// Headless targets skip backends that need a native window.
func OpenDefault(ctx context.Context, target Target) (frameloop.Backend, error) {
	name := registry.BestName()
	if target.Headless() && name == NameWebGPU {
		name = NameSoftware
	}
	if name == "" || !registry.Has(name) {
		return nil, ErrBackendNotAvailable
	}
	return Open(ctx, name, target)
}
