package shader

import (
	"errors"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// LUT errors.
var (
	// ErrNoTextureCreator is reported when a lookup table is requested but
	// neither LUTParams nor the shader's device can create textures.
	ErrNoTextureCreator = errors.New("shader: no texture creator available for LUT")
)

// textureDestroyer is the interface for destroying created textures.
// This matches the gogpu Texture.Destroy signature.
type textureDestroyer interface {
	Destroy()
}

// LUTParams configures a cached lookup texture for a composed operation.
type LUTParams struct {
	// Object is the caller-owned cache slot the texture persists in
	// across shader rebuilds. Must be non-nil; the slot itself starts
	// out nil.
	Object **Object

	// Width and Height are the table dimensions, in texels.
	Width, Height int

	// Fill populates the table contents: it receives a Width*Height*4
	// byte RGBA buffer to write. Only called when the texture is
	// (re)created, not on cache hits.
	Fill func(data []byte)

	// Creator uploads the table to the GPU. When nil, the shader's
	// device handle is used if it can create textures; otherwise the
	// operation cannot proceed and the shader fails.
	Creator gpucontext.TextureCreator
}

// lutState is the private state cached inside an ObjectLUT Object.
type lutState struct {
	width, height int
	tex           any
}

// release destroys the underlying texture, if it supports destruction.
func (l *lutState) release() {
	if d, ok := l.tex.(textureDestroyer); ok {
		d.Destroy()
	}
	l.tex = nil
}

// LUT returns the namespaced descriptor identifier of a cached lookup
// texture, creating or refreshing the texture as needed. The texture
// persists in the caller's Object slot across many shader builds and is
// only re-uploaded when the requested dimensions change.
//
// The returned identifier names a sampled-texture descriptor appended to
// this shader; fragments sample the table through it. Returns "" if the
// shader failed.
func (sh *Shader) LUT(p LUTParams) string {
	if !sh.mutable() {
		return ""
	}
	if p.Object == nil || p.Width <= 0 || p.Height <= 0 || p.Fill == nil {
		sh.fail("shader: invalid LUT parameters",
			"w", p.Width, "h", p.Height)
		return ""
	}

	creator := p.Creator
	if creator == nil {
		if c, ok := sh.Device().(gpucontext.TextureCreator); ok {
			creator = c
		}
	}
	if creator == nil {
		sh.fail("shader: LUT requested without GPU access",
			"err", ErrNoTextureCreator)
		return ""
	}

	// Drop a stale cache whose dimensions no longer match; the slot is
	// then repopulated below.
	if obj := *p.Object; obj != nil && obj.kind == ObjectLUT {
		if lut, ok := obj.priv.(*lutState); ok &&
			(lut.width != p.Width || lut.height != p.Height) {
			Logger().Debug("shader: LUT dimensions changed, recreating",
				"old_w", lut.width, "old_h", lut.height,
				"new_w", p.Width, "new_h", p.Height)
			DestroyObject(p.Object)
		}
	}

	priv := sh.Object(p.Object, ObjectLUT, func() (any, func(any), error) {
		data := make([]byte, p.Width*p.Height*4)
		p.Fill(data)
		tex, err := creator.NewTextureFromRGBA(p.Width, p.Height, data)
		if err != nil {
			return nil, nil, err
		}
		lut := &lutState{width: p.Width, height: p.Height, tex: tex}
		return lut, func(priv any) {
			if l, ok := priv.(*lutState); ok {
				l.release()
			}
		}, nil
	})
	if priv == nil {
		return ""
	}
	lut := priv.(*lutState)

	return sh.Desc(Descriptor{
		Name:    "lut",
		Type:    DescSampledTexture,
		Binding: lut.tex,
		Stages:  gputypes.ShaderStageFragment | gputypes.ShaderStageCompute,
	})
}
