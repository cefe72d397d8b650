// Package frameloop drives a windowed GPU presentation loop.
//
// # Overview
//
// frameloop owns the per-frame cycle of a graphics application: it acquires
// a drawable texture from the presentation surface, hands it to a drawing
// collaborator, submits the recorded commands, and presents the frame. When
// the surface changes size or is invalidated by the platform the loop
// rebuilds its configuration without tearing down the rest of the
// application.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/frameloop"
//	    "github.com/gogpu/frameloop/backend"
//	    _ "github.com/gogpu/frameloop/backend/webgpu"
//	)
//
//	b, err := backend.OpenDefault(ctx, target)
//	if err != nil {
//	    return err
//	}
//	defer b.Close()
//
//	loop, err := frameloop.New(b, compositor, frameloop.WithHost(window))
//	if err != nil {
//	    return err
//	}
//	err = loop.Run(ctx)
//
// # Failure Handling
//
// Every failure that reaches the loop is classified by [Classify]:
//
//   - A lost surface is rebuilt with the last known size and the frame is
//     skipped ([VerdictReconfigure]).
//   - Transient conditions such as a timed-out or outdated acquire drop the
//     frame and the loop continues ([VerdictRetry]).
//   - Out of memory, draw failures and submission failures stop the loop
//     ([VerdictFatal]) and [Loop.ExitCode] reports a non-zero status.
//
// # Backends
//
// The loop is backend-agnostic. Implementations of [Backend] live in
// sub-packages and register themselves with package backend on import:
//
//   - backend/webgpu: Pure Go WebGPU (Vulkan, Metal, DX12, GLES)
//   - backend/software: CPU rasterization into an in-memory framebuffer
//
// # Logging
//
// frameloop is silent by default. Use [SetLogger] to enable structured
// logging of lifecycle events, dropped frames and reconfigurations.
package frameloop
