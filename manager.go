package frameloop

import (
	"github.com/gogpu/gputypes"
)

// SurfaceManager owns the active surface configuration and rebuilds it on
// resize and surface loss.
//
// The manager remembers the last size it was given even when that size is
// zero. A zero-sized surface cannot be configured; the manager reports it
// as suspended and skips the backend call until a non-zero size arrives.
type SurfaceManager struct {
	backend Backend

	width, height uint32

	config  SurfaceConfig
	surface PresentableSurface
}

// NewSurfaceManager returns a manager that configures surfaces on b.
// No configuration is applied until [SurfaceManager.Configure] is called.
func NewSurfaceManager(b Backend) *SurfaceManager {
	return &SurfaceManager{backend: b}
}

// Configure applies a surface configuration for the given physical size.
// The backend's preferred format and FIFO presentation are used.
//
// Calling Configure twice with the same size yields an equivalent
// configuration. A zero dimension records the size and suspends
// presentation without contacting the backend.
func (m *SurfaceManager) Configure(width, height uint32) error {
	m.width, m.height = width, height
	if width == 0 || height == 0 {
		Logger().Debug("frameloop: surface suspended", "width", width, "height", height)
		return nil
	}

	cfg := SurfaceConfig{
		Width:       width,
		Height:      height,
		Format:      m.backend.PreferredFormat(),
		PresentMode: gputypes.PresentModeFifo,
	}
	if err := cfg.Validate(); err != nil {
		return NewError(KindConfiguration, "configure", err)
	}

	surface, err := m.backend.ConfigureSurface(cfg)
	if err != nil {
		if KindOf(err) == KindOutOfMemory {
			return err
		}
		return NewError(KindConfiguration, "configure", err)
	}

	m.config = cfg
	m.surface = surface
	Logger().Debug("frameloop: surface configured", "config", cfg.String())
	return nil
}

// Reconfigure rebuilds the surface from the last recorded size.
func (m *SurfaceManager) Reconfigure() error {
	return m.Configure(m.width, m.height)
}

// AcquireFrame returns the next drawable frame from the active surface.
// Backend failures without a classification are reported as
// [KindTransient].
func (m *SurfaceManager) AcquireFrame() (Frame, error) {
	if m.surface == nil || m.Suspended() {
		return nil, NewError(KindTransient, "acquire", ErrNotConfigured)
	}
	frame, err := m.surface.Acquire()
	if err != nil {
		return nil, withKind(KindTransient, "acquire", err)
	}
	return frame, nil
}

// Config returns the last applied configuration. It is the zero value
// until the first successful configure.
func (m *SurfaceManager) Config() SurfaceConfig {
	return m.config
}

// Size returns the last recorded size, which may be zero.
func (m *SurfaceManager) Size() (width, height uint32) {
	return m.width, m.height
}

// Suspended reports whether the last recorded size has a zero dimension.
func (m *SurfaceManager) Suspended() bool {
	return m.width == 0 || m.height == 0
}
