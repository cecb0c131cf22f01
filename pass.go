package reforge

import "github.com/hajimehoshi/ebiten/v2"

// Pass is one GPU render configuration: a compiled Kage shader plus the
// uniforms and source images bound to it. Programs hold one Pass per effect
// and recreate them in RebuildPasses; a Pass that fails to rebuild leaves
// the previous one in place.
type Pass struct {
	// Name is the shader module the pass was built from.
	Name string
	// Shader is the compiled Kage shader.
	Shader *ebiten.Shader
	// Uniforms are passed to the shader on every Draw. Keys must match the
	// shader's uniform variable names.
	Uniforms map[string]any
	// Images are the shader's source textures (imageSrc0..3). May be nil.
	Images [4]*ebiten.Image

	op ebiten.DrawRectShaderOptions
}

// BuildPass flattens the named module with [ShaderLibrary.Build] and
// compiles it. Compilation happens on the CPU inside Ebitengine, so a broken
// shader is caught here and reported as a [ShaderParseError] instead of
// faulting at draw time.
func BuildPass(lib *ShaderLibrary, name string) (*Pass, error) {
	src, err := lib.Build(name)
	if err != nil {
		return nil, err
	}
	shader, err := ebiten.NewShader([]byte(src))
	if err != nil {
		return nil, &ShaderParseError{Name: name, Message: err.Error()}
	}
	return &Pass{
		Name:     name,
		Shader:   shader,
		Uniforms: make(map[string]any),
	}, nil
}

// Draw runs the pass over the full destination image.
func (p *Pass) Draw(dst *ebiten.Image) {
	bounds := dst.Bounds()
	p.op.Images = p.Images
	p.op.Uniforms = p.Uniforms
	dst.DrawRectShader(bounds.Dx(), bounds.Dy(), p.Shader, &p.op)
}

// Deallocate releases the compiled shader's internal state. The Pass must
// not be drawn afterwards. Calling Deallocate on an already-deallocated or
// zero Pass is a no-op.
func (p *Pass) Deallocate() {
	if p.Shader != nil {
		p.Shader.Deallocate()
		p.Shader = nil
	}
}
