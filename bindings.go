package shader

import (
	"strings"

	"github.com/gogpu/gputypes"
)

// This file defines the four resource kinds a composed shader can declare:
// vertex attributes, variables, descriptors and compile-time constants.
// The Shader keeps one ordered collection per kind and enforces that no two
// entries of the same kind share a name, since the entries become the
// symbol table of the generated program.

// ---------------------------------------------------------------------------
// Vertex attributes
// ---------------------------------------------------------------------------

// VertexAttrib is a vertex attribute input. The four data values are bound
// to the four corner vertices respectively, in row-wise order starting from
// the top left:
//
//	Data[0] Data[1]
//	Data[2] Data[3]
type VertexAttrib struct {
	// Name is the attribute identifier. Namespaced by the engine on append.
	Name string

	// Format describes the per-vertex data format.
	Format gputypes.VertexFormat

	// Data holds the raw per-corner values, borrowed from the caller. The
	// engine never copies them; they must stay alive for as long as the
	// finalized result is in use.
	Data [4][]byte
}

// ---------------------------------------------------------------------------
// Variables
// ---------------------------------------------------------------------------

// Variable is a bound shader variable: a type/shape description plus a
// borrowed view of its raw host data, laid out per HostLayout.
type Variable struct {
	Var Var

	// Data is the raw host data. Borrowed, never copied: the caller must
	// keep it alive through the use of the finalized result, not merely
	// the append call.
	Data []byte

	// Dynamic marks values expected to change frequently. This is a hint
	// to the downstream compiler (favoring push constants or plain
	// uniforms over baked specialization), not a correctness requirement.
	Dynamic bool
}

// BufferVar is a variable contained inside a uniform or storage buffer,
// together with its resolved buffer layout (Std140Layout / Std430Layout).
type BufferVar struct {
	Var    Var
	Layout Layout
}

// ---------------------------------------------------------------------------
// Descriptors
// ---------------------------------------------------------------------------

// DescriptorType is the kind of GPU-visible binding a Descriptor declares.
type DescriptorType uint8

const (
	// DescInvalid is the zero value; it never names a real descriptor.
	DescInvalid DescriptorType = iota

	// DescSampledTexture is a combined texture/sampler binding.
	DescSampledTexture

	// DescStorageImage is a writable storage image binding.
	DescStorageImage

	// DescUniformBuffer is a uniform buffer block (std140 member layout).
	DescUniformBuffer

	// DescStorageBuffer is a storage buffer block (std430 member layout).
	DescStorageBuffer
)

// String returns a human-readable name for the descriptor type.
func (t DescriptorType) String() string {
	switch t {
	case DescSampledTexture:
		return "sampled texture"
	case DescStorageImage:
		return "storage image"
	case DescUniformBuffer:
		return "uniform buffer"
	case DescStorageBuffer:
		return "storage buffer"
	default:
		return "invalid"
	}
}

// hasBufferVars reports whether the descriptor type carries a member layout.
func (t DescriptorType) hasBufferVars() bool {
	return t == DescUniformBuffer || t == DescStorageBuffer
}

// MemoryQualifiers is a bitmask of memory qualifiers attached to storage
// descriptors, controlling cross-invocation synchronization semantics in
// the generated program.
//
// All descriptors are additionally assumed to carry the 'restrict'
// qualifier; there is no way to override this.
type MemoryQualifiers uint16

const (
	// MemoryCoherent supports synchronization across shader invocations.
	MemoryCoherent MemoryQualifiers = 1 << 0

	// MemoryVolatile makes all writes synchronize automatically.
	MemoryVolatile MemoryQualifiers = 1 << 1
)

// String returns the GLSL qualifier list, e.g. "coherent volatile".
func (m MemoryQualifiers) String() string {
	var quals []string
	if m&MemoryCoherent != 0 {
		quals = append(quals, "coherent")
	}
	if m&MemoryVolatile != 0 {
		quals = append(quals, "volatile")
	}
	return strings.Join(quals, " ")
}

// Descriptor is a GPU-visible binding needed by the shader: a texture,
// image or buffer, with an opaque binding slot payload supplied by the
// composed operation that declared it.
type Descriptor struct {
	// Name is the binding identifier. Namespaced by the engine on append.
	Name string

	// Type is the kind of binding.
	Type DescriptorType

	// Binding is the contents of the descriptor binding: whatever object
	// the downstream dispatcher should bind at this slot. Opaque to the
	// engine; referenced, never owned.
	Binding any

	// Stages is the shader stage visibility of the binding.
	Stages gputypes.ShaderStage

	// BufferVars is the ordered member layout for uniform/storage buffer
	// descriptors. Ignored for the other descriptor types.
	BufferVars []BufferVar

	// Memory holds additional memory qualifiers for storage images and
	// buffers. Ignored for other descriptor types.
	Memory MemoryQualifiers
}

// ---------------------------------------------------------------------------
// Constants
// ---------------------------------------------------------------------------

// Constant is a compile-time constant. Depending on the shader's
// DynamicConstants default and the CompileTime override, it is lowered to a
// literal / specialization constant or demoted to a dynamic variable.
type Constant struct {
	// Name is the constant identifier. Namespaced by the engine on append.
	Name string

	// Type is the scalar type of the constant.
	Type VarType

	// Data is the raw scalar value, borrowed from the caller.
	Data []byte

	// CompileTime forces literal/specialization treatment regardless of
	// the shader's DynamicConstants default. Required whenever the
	// constant feeds a construct that needs a compile-time value, such as
	// an array bound.
	CompileTime bool
}
