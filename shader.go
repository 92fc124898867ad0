package shader

import (
	"fmt"
)

// Params configures a Shader at creation or reset time.
type Params struct {
	// ID is an abstract identifier for the shader, used to namespace its
	// generated symbols. It exists to avoid collisions between shaders
	// whose finalized outputs are textually combined into one larger
	// program: all shaders merged that way should carry a unique ID.
	// The engine documents but does not enforce this cross-shader
	// contract; it only guarantees collision freedom within one shader.
	ID uint8

	// Index is an abstract frame index which operations may use to seed
	// temporal dithering or PRNGs. Leave as 0 for deterministic output,
	// otherwise increment by 1 on successive frames.
	Index uint8

	// GLSL, when non-nil, fully determines the effective GLSL dialect and
	// capabilities, overriding anything the Device reports.
	GLSL *GLSLVersion

	// Device optionally grants composed operations access to a GPU for
	// resource creation and capability queries. Fully optional: without
	// it, operations that need a device degrade gracefully or fail their
	// shader, and everything else works unchanged.
	Device DeviceHandle

	// DynamicConstants demotes all constants appended without the
	// CompileTime override to runtime-mutable variables. Useful for
	// shaders whose parameter values change constantly, trading
	// compile-time optimization for cheaper recompilation.
	DynamicConstants bool
}

// state is the lifecycle state of a Shader.
type state uint8

const (
	stateMutable state = iota
	stateFailed
	stateFinalized
)

func (s state) String() string {
	switch s {
	case stateMutable:
		return "mutable"
	case stateFailed:
		return "failed"
	case stateFinalized:
		return "finalized"
	default:
		return "invalid"
	}
}

// resource kinds, used to index the per-kind name tables.
const (
	kindAttr = iota
	kindVar
	kindDesc
	kindConst
	numKinds
)

var kindNames = [numKinds]string{"vertex attribute", "variable", "descriptor", "constant"}

// Shader is a mutable accumulator for one composed shader program.
//
// Composed operations append program text, resource declarations and step
// labels to it, then Finalize freezes it into an immutable Result. A
// Shader is not safe for concurrent use; use one per goroutine.
type Shader struct {
	params Params
	glsl   GLSLVersion
	state  state

	// entry is the namespaced entry-point name, fixed at reset time so
	// that repeated finalization yields identical results.
	entry string

	steps []string
	body  []byte

	input   Signature
	output  Signature
	chained bool // input signature fixed by the first operation

	outW, outH int

	compute   bool
	groupSize [2]int
	shmem     int

	attrs  []VertexAttrib
	vars   []Variable
	descs  []Descriptor
	consts []Constant
	names  [numKinds]map[string]struct{}

	fresh int
}

// New creates a new, blank, mutable Shader.
//
// A nil params is equivalent to a zero Params. Rather than allocating and
// freeing many shaders, callers regenerating shaders frequently should
// reuse them via Reset (or a Pool), which skips the reallocation overhead.
func New(params *Params) *Shader {
	sh := &Shader{}
	for i := range sh.names {
		sh.names[i] = make(map[string]struct{})
	}
	sh.Reset(params)
	return sh
}

// Reset returns the shader to a blank mutable slate without releasing
// internal storage, so that high-frequency per-frame rebuilding does not
// reallocate. A previously failed or finalized state does not persist.
func (sh *Shader) Reset(params *Params) {
	if params == nil {
		params = &Params{}
	}
	sh.params = *params
	sh.glsl = resolveGLSL(params)
	sh.state = stateMutable

	sh.steps = sh.steps[:0]
	sh.body = sh.body[:0]

	sh.input = SigNone
	sh.output = SigNone
	sh.chained = false
	sh.outW, sh.outH = 0, 0

	sh.compute = false
	sh.groupSize = [2]int{}
	sh.shmem = 0

	sh.attrs = sh.attrs[:0]
	sh.vars = sh.vars[:0]
	sh.descs = sh.descs[:0]
	sh.consts = sh.consts[:0]
	for i := range sh.names {
		clear(sh.names[i])
	}

	sh.fresh = 0
	sh.entry = sh.ident("main")
}

// Free releases a shader and all internally-owned storage, clearing the
// caller's handle so it cannot be used again by accident. A nil handle or
// an already-cleared slot is a safe no-op.
func Free(sh **Shader) {
	if sh == nil || *sh == nil {
		return
	}
	*sh = nil
}

// ---------------------------------------------------------------------------
// Queries (legal in any state, including on failed or finalized shaders)
// ---------------------------------------------------------------------------

// IsFailed reports whether the shader is in a failed state. Mutating a
// shader in illegal ways (signature mismatch, duplicate resource names,
// unsatisfiable requirements) marks it failed; since mutators have no
// return value to check, this is how callers detect it. Finalize also
// returns nil for a failed shader.
func (sh *Shader) IsFailed() bool {
	return sh.state == stateFailed
}

// IsCompute reports whether the shader must run as a compute shader. This
// can only ever become true when the capability descriptor the shader was
// created with advertises compute support.
func (sh *Shader) IsCompute() bool {
	return sh.compute
}

// OutputSize reports whether the shader has a fixed output size
// requirement. Some operations, in particular those that sample other
// textures at a hard-coded ratio, constrain the output size; the consumer
// must respect it. When the first result is false, the shader is
// compatible with every output size and w, h are zero.
func (sh *Shader) OutputSize() (constrained bool, w, h int) {
	if sh.outW == 0 && sh.outH == 0 {
		return false, 0, 0
	}
	return true, sh.outW, sh.outH
}

// Capabilities returns the effective GLSL capability descriptor the shader
// was created with.
func (sh *Shader) Capabilities() GLSLVersion {
	return sh.glsl
}

// Index returns the frame index supplied at creation, for operations that
// seed temporal effects.
func (sh *Shader) Index() uint8 {
	return sh.params.Index
}

// Device returns the optional device handle supplied at creation, or nil.
func (sh *Shader) Device() DeviceHandle {
	return sh.params.Device
}

// ---------------------------------------------------------------------------
// State machine plumbing
// ---------------------------------------------------------------------------

// fail transitions the shader into the terminal failed state. Subsequent
// failures on an already-failed shader are not recorded again.
func (sh *Shader) fail(msg string, args ...any) {
	if sh.state == stateFailed {
		return
	}
	sh.state = stateFailed
	args = append(args, "id", sh.params.ID)
	Logger().Warn(msg, args...)
}

// mutable gates every mutating entry point: mutations are only legal in
// the mutable state, and are silently dropped otherwise.
func (sh *Shader) mutable() bool {
	if sh.state == stateMutable {
		return true
	}
	Logger().Debug("shader: mutation dropped on sealed shader",
		"state", sh.state, "id", sh.params.ID)
	return false
}

// ident returns a fresh identifier namespaced by the shader's ID, so that
// several shaders' outputs can be combined textually without symbol
// collisions (provided their IDs are unique, which is a caller contract).
func (sh *Shader) ident(name string) string {
	id := fmt.Sprintf("%s_%d_%d", name, sh.params.ID, sh.fresh)
	sh.fresh++
	return id
}

// reserve records a raw name in the given resource kind's symbol table,
// failing the shader on a duplicate. Returns the namespaced identifier the
// entry will be declared under, or "" if the shader failed.
func (sh *Shader) reserve(kind int, name string) string {
	if _, dup := sh.names[kind][name]; dup {
		sh.fail("shader: duplicate resource name",
			"kind", kindNames[kind], "name", name)
		return ""
	}
	sh.names[kind][name] = struct{}{}
	return sh.ident(name)
}

// ---------------------------------------------------------------------------
// Operation calling convention
// ---------------------------------------------------------------------------

// Require declares the input signature the calling operation needs and
// reports whether the operation may proceed. The very first operation on a
// blank shader defines the overall input signature; afterwards, the
// required input must match the current output signature exactly, or the
// shader transitions to the failed state.
//
// Operations must call Require (and check its result) before appending any
// text or resources, so that a rejected operation leaves no partial state.
func (sh *Shader) Require(input Signature) bool {
	if !sh.mutable() {
		return false
	}
	if input == sh.output {
		sh.chained = true
		return true
	}
	if !sh.chained && sh.output == SigNone {
		// Nothing has produced a value yet; adopt the required input as
		// the signature of the composed function itself.
		sh.input = input
		sh.output = input
		sh.chained = true
		return true
	}
	sh.fail("shader: signature mismatch",
		"required", input.String(), "current", sh.output.String())
	return false
}

// SetOutput records the output signature produced by the calling
// operation. SigSampler is never a valid output; requesting it fails the
// shader.
func (sh *Shader) SetOutput(sig Signature) {
	if !sh.mutable() {
		return
	}
	if sig == SigSampler {
		sh.fail("shader: sampler is not a valid output signature")
		return
	}
	sh.output = sig
}

// RequireOutputSize constrains the shader to one fixed output size and
// reports whether the operation may proceed. Conflicting constraints from
// different operations fail the shader.
func (sh *Shader) RequireOutputSize(w, h int) bool {
	if !sh.mutable() {
		return false
	}
	if w <= 0 || h <= 0 {
		sh.fail("shader: invalid output size requirement", "w", w, "h", h)
		return false
	}
	if (sh.outW != 0 || sh.outH != 0) && (sh.outW != w || sh.outH != h) {
		sh.fail("shader: conflicting output size requirements",
			"have_w", sh.outW, "have_h", sh.outH, "want_w", w, "want_h", h)
		return false
	}
	sh.outW, sh.outH = w, h
	return true
}

// RequireCompute requests compute-shader execution with the given work
// group size (tiled across the output image) and additional shared memory,
// in bytes. It reports whether the request was granted.
//
// When the capability descriptor does not advertise compute support, or
// the request exceeds the device limits, the request is denied without
// failing the shader: the operation is expected to fall back to a
// non-compute implementation. A work group size conflicting with one
// already established by an earlier operation is a precondition violation
// and fails the shader.
func (sh *Shader) RequireCompute(bw, bh, shmem int) bool {
	if !sh.mutable() {
		return false
	}
	if bw <= 0 || bh <= 0 || shmem < 0 {
		sh.fail("shader: invalid compute requirements",
			"bw", bw, "bh", bh, "shmem", shmem)
		return false
	}
	if !sh.glsl.Compute {
		Logger().Debug("shader: compute requested without compute support",
			"id", sh.params.ID)
		return false
	}
	if exceedsComputeLimits(sh.glsl, bw, bh, sh.shmem+shmem) {
		Logger().Debug("shader: compute request exceeds device limits",
			"bw", bw, "bh", bh, "shmem", sh.shmem+shmem, "id", sh.params.ID)
		return false
	}
	if sh.compute && (sh.groupSize[0] != bw || sh.groupSize[1] != bh) {
		sh.fail("shader: conflicting compute work group sizes",
			"have_w", sh.groupSize[0], "have_h", sh.groupSize[1],
			"want_w", bw, "want_h", bh)
		return false
	}
	sh.compute = true
	sh.groupSize = [2]int{bw, bh}
	sh.shmem += shmem
	return true
}

// exceedsComputeLimits checks a work group request against the capability
// descriptor. Zero limits mean "unknown" and are not enforced.
func exceedsComputeLimits(glsl GLSLVersion, bw, bh, shmem int) bool {
	if glsl.MaxGroupThreads > 0 && bw*bh > glsl.MaxGroupThreads {
		return true
	}
	if glsl.MaxGroupSize[0] > 0 && bw > glsl.MaxGroupSize[0] {
		return true
	}
	if glsl.MaxGroupSize[1] > 0 && bh > glsl.MaxGroupSize[1] {
		return true
	}
	if glsl.MaxShmemSize > 0 && shmem > glsl.MaxShmemSize {
		return true
	}
	return false
}

// Describe appends a human-readable label for the semantic operation being
// performed, e.g. "color decoding" or "debanding". Labels appear in the
// finalized result's step list and pretty-printed description.
func (sh *Shader) Describe(label string) {
	if !sh.mutable() {
		return
	}
	sh.steps = append(sh.steps, label)
}

// Append appends literal program text to the shader body.
func (sh *Shader) Append(text string) {
	if !sh.mutable() {
		return
	}
	sh.body = append(sh.body, text...)
}

// Appendf appends formatted program text to the shader body.
func (sh *Shader) Appendf(format string, args ...any) {
	if !sh.mutable() {
		return
	}
	sh.body = fmt.Appendf(sh.body, format, args...)
}

// Fresh returns a unique identifier based on name, for scratch variables
// and helper functions inside appended program text. Returns "" on a
// sealed shader.
func (sh *Shader) Fresh(name string) string {
	if !sh.mutable() {
		return ""
	}
	return sh.ident(name)
}

// ---------------------------------------------------------------------------
// Resource appends
// ---------------------------------------------------------------------------

// Attr appends a vertex attribute and returns the namespaced identifier it
// will be declared under, or "" if the shader failed. Attribute names must
// be unique within the shader.
func (sh *Shader) Attr(va VertexAttrib) string {
	if !sh.mutable() {
		return ""
	}
	name := sh.reserve(kindAttr, va.Name)
	if name == "" {
		return ""
	}
	va.Name = name
	sh.attrs = append(sh.attrs, va)
	return name
}

// Var appends a bound variable and returns the namespaced identifier it
// will be declared under, or "" if the shader failed. The data slice is
// borrowed, not copied. Variable names must be unique within the shader.
func (sh *Shader) Var(v Variable) string {
	if !sh.mutable() {
		return ""
	}
	name := sh.reserve(kindVar, v.Var.Name)
	if name == "" {
		return ""
	}
	v.Var.Name = name
	sh.vars = append(sh.vars, v)
	return name
}

// Desc appends a descriptor and returns the namespaced identifier it will
// be declared under, or "" if the shader failed. Descriptor names must be
// unique within the shader. Buffer member layouts are only meaningful for
// uniform and storage buffer descriptors; supplying them for any other
// type is a precondition violation.
func (sh *Shader) Desc(d Descriptor) string {
	if !sh.mutable() {
		return ""
	}
	if len(d.BufferVars) > 0 && !d.Type.hasBufferVars() {
		sh.fail("shader: buffer variables on non-buffer descriptor",
			"name", d.Name, "type", d.Type.String())
		return ""
	}
	name := sh.reserve(kindDesc, d.Name)
	if name == "" {
		return ""
	}
	d.Name = name
	sh.descs = append(sh.descs, d)
	return name
}

// Const appends a compile-time constant and returns the namespaced
// identifier it will be declared under, or "" if the shader failed.
//
// When the shader was created with DynamicConstants and the constant does
// not set CompileTime, it is demoted to a dynamic variable instead, which
// avoids recompilation when its value changes. Constants that feed
// compile-time constructs (array bounds, loop unrolling) must set
// CompileTime to opt out of this.
func (sh *Shader) Const(c Constant) string {
	if !sh.mutable() {
		return ""
	}
	if sh.params.DynamicConstants && !c.CompileTime {
		return sh.Var(Variable{
			Var:     Var{Name: c.Name, Type: c.Type, DimV: 1, DimM: 1, DimA: 1},
			Data:    c.Data,
			Dynamic: true,
		})
	}
	name := sh.reserve(kindConst, c.Name)
	if name == "" {
		return ""
	}
	c.Name = name
	sh.consts = append(sh.consts, c)
	return name
}
