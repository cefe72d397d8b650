// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import "github.com/gogpu/frameloop"

// faultQueue is a FIFO of injected errors. Each call consumes one entry.
type faultQueue []error

func (q *faultQueue) push(errs ...error) {
	*q = append(*q, errs...)
}

func (q *faultQueue) pop() error {
	if len(*q) == 0 {
		return nil
	}
	err := (*q)[0]
	*q = (*q)[1:]
	return err
}

type faults struct {
	configure faultQueue
	acquire   faultQueue
	submit    faultQueue
	present   faultQueue
}

// InjectConfigureError makes the next ConfigureSurface calls fail with errs,
// one per call. A nil entry lets that call succeed.
func (b *Backend) InjectConfigureError(errs ...error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.faults.configure.push(errs...)
}

// InjectAcquireError makes the next frame acquisitions fail with errs.
func (b *Backend) InjectAcquireError(errs ...error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.faults.acquire.push(errs...)
}

// InjectSubmitError makes the next submissions fail with errs before the
// commands run. The frame is discarded and the loop stops.
func (b *Backend) InjectSubmitError(errs ...error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.faults.submit.push(errs...)
}

// InjectPresentError makes the next presents fail with errs after the
// commands ran. The errors are reported as present failures, keeping the
// kind of each entry, so the loop recovers from lost and transient ones.
func (b *Backend) InjectPresentError(errs ...error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.faults.present.push(errs...)
}

// Convenience errors for fault injection, classified like their GPU
// counterparts.
var (
	// ErrInjectedLost simulates a lost swap chain.
	ErrInjectedLost = frameloop.NewError(frameloop.KindLost, "acquire", frameloop.ErrSurfaceLost)

	// ErrInjectedTimeout simulates an acquire timeout.
	ErrInjectedTimeout = frameloop.NewError(frameloop.KindTransient, "acquire", frameloop.ErrTransient)

	// ErrInjectedOutOfMemory simulates device memory exhaustion.
	ErrInjectedOutOfMemory = frameloop.NewError(frameloop.KindOutOfMemory, "acquire", frameloop.ErrOutOfMemory)
)
