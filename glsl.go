package shader

// GLSLVersion describes the effective GLSL dialect and the feature set the
// generated program may rely on. It plays the same role for shader
// composition that DeviceCapabilities plays for rendering backends: the
// engine consults it before granting feature requests (compute execution,
// shared memory, work group sizes) and degrades or fails operations that
// exceed it.
type GLSLVersion struct {
	// Version is the GLSL version number, e.g. 450 for "#version 450".
	// A zero Version means "unspecified" and selects defaults elsewhere.
	Version int

	// GLES indicates an OpenGL ES dialect (e.g. 300 es).
	GLES bool

	// Vulkan indicates Vulkan-flavored GLSL (explicit binding decorations).
	Vulkan bool

	// Compute indicates that compute-shader execution is available.
	// Operations can only request compute semantics when this is set.
	Compute bool

	// MaxGroupThreads is the maximum total number of threads in a work group.
	MaxGroupThreads int

	// MaxGroupSize is the maximum work group size per dimension.
	MaxGroupSize [3]int

	// MaxShmemSize is the maximum per-group shared memory, in bytes.
	MaxShmemSize int

	// SubgroupSize is the subgroup (wave/warp) size, or 0 if unknown.
	SubgroupSize int

	// MinGatherOffset and MaxGatherOffset bound the offsets usable with
	// textureGatherOffset, or 0 when gather is unsupported.
	MinGatherOffset int
	MaxGatherOffset int
}

// DefaultGLSLVersion returns a conservative desktop GL profile that every
// composed operation can rely on when neither explicit capabilities nor a
// capability-providing device were supplied.
func DefaultGLSLVersion() GLSLVersion {
	return GLSLVersion{Version: 130}
}

// resolveGLSL applies the capability resolution rule: an explicitly supplied
// descriptor wins outright; otherwise a capability-providing device is
// consulted; otherwise the conservative default applies.
func resolveGLSL(params *Params) GLSLVersion {
	if params.GLSL != nil {
		return *params.GLSL
	}
	if cp, ok := params.Device.(CapabilityProvider); ok {
		return cp.GLSLCapabilities()
	}
	return DefaultGLSLVersion()
}
