// Package backend selects and opens frameloop presentation backends.
//
// Backend implementations register themselves from init() functions, so
// importing a backend package is enough to make it available:
//
//	import (
//	    "github.com/gogpu/frameloop/backend"
//	    _ "github.com/gogpu/frameloop/backend/software"
//	    _ "github.com/gogpu/frameloop/backend/webgpu"
//	)
//
// # Backend Selection
//
// Use OpenDefault to open the best registered backend, or Open to request
// one by name:
//
//	// Best available (webgpu before software)
//	b, err := backend.OpenDefault(ctx, target)
//
//	// Or a specific backend
//	b, err := backend.Open(ctx, backend.NameSoftware, target)
//
// Opening a GPU backend negotiates an adapter and a device with the
// driver and may take a while. It runs once at startup.
//
// # Available Backends
//
//   - webgpu: Pure Go WebGPU through gogpu/wgpu (Vulkan, Metal, DX12, GLES)
//   - software: in-memory RGBA framebuffer, used for headless runs and tests
package backend
