package frameloop

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/assert"
)

// TestSurfaceConfigValidate checks configuration validation.
func TestSurfaceConfigValidate(t *testing.T) {
	valid := SurfaceConfig{
		Width:       800,
		Height:      600,
		Format:      gputypes.TextureFormatBGRA8UnormSrgb,
		PresentMode: gputypes.PresentModeFifo,
	}
	assert.NoError(t, valid.Validate())

	zero := valid
	zero.Width = 0
	assert.ErrorIs(t, zero.Validate(), ErrInvalidSize)

	noFormat := valid
	noFormat.Format = gputypes.TextureFormatUndefined
	assert.Error(t, noFormat.Validate())

	noMode := valid
	noMode.PresentMode = gputypes.PresentModeUndefined
	assert.Error(t, noMode.Validate())

	w, h := valid.Size()
	assert.Equal(t, uint32(800), w)
	assert.Equal(t, uint32(600), h)
	assert.Contains(t, valid.String(), "800x600")
}
