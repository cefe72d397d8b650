package hud

import (
	"fmt"

	"github.com/gogpu/naga"
)

// triangleShader draws a triangle from the vertex index alone, so the
// pipeline needs no vertex buffers.
const triangleShader = `
@vertex
fn vs_main(@builtin(vertex_index) idx: u32) -> @builtin(position) vec4<f32> {
    var positions = array<vec2<f32>, 3>(
        vec2<f32>(0.0, 0.5),
        vec2<f32>(-0.5, -0.5),
        vec2<f32>(0.5, -0.5)
    );
    return vec4<f32>(positions[idx], 0.0, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0, 0.0, 0.0, 1.0);
}
`

// validateShader parses, lowers and validates WGSL source.
func validateShader(src string) error {
	ast, err := naga.Parse(src)
	if err != nil {
		return fmt.Errorf("hud: parse shader: %w", err)
	}
	module, err := naga.LowerWithSource(ast, src)
	if err != nil {
		return fmt.Errorf("hud: lower shader: %w", err)
	}
	verrs, err := naga.Validate(module)
	if err != nil {
		return fmt.Errorf("hud: validate shader: %w", err)
	}
	if len(verrs) > 0 {
		return fmt.Errorf("hud: shader validation: %w", &verrs[0])
	}
	return nil
}
