package frameloop

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
)

// SurfaceConfig is the full set of parameters applied to the presentation
// surface. Frames are always presented with [gputypes.PresentModeFifo].
type SurfaceConfig struct {
	Width       uint32
	Height      uint32
	Format      gputypes.TextureFormat
	PresentMode gputypes.PresentMode
}

// Validate reports whether the configuration can be applied to a surface.
func (c SurfaceConfig) Validate() error {
	if c.Width == 0 || c.Height == 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, c.Width, c.Height)
	}
	if c.Format == gputypes.TextureFormatUndefined {
		return errors.New("frameloop: surface format is undefined")
	}
	if c.PresentMode == gputypes.PresentModeUndefined {
		return errors.New("frameloop: present mode is undefined")
	}
	return nil
}

// Size returns the configured dimensions in physical pixels.
func (c SurfaceConfig) Size() (width, height uint32) {
	return c.Width, c.Height
}

func (c SurfaceConfig) String() string {
	return fmt.Sprintf("%dx%d %s %s", c.Width, c.Height, c.Format, c.PresentMode)
}
