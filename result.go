package shader

import (
	"fmt"
	"strings"
)

// Result is a finalized shader fragment: not a complete program, but one
// callable GLSL function definition together with a description of the
// attributes, variables, descriptors and constants it expects to be
// available.
//
// A Result is a read-only view bound to the lifetime of the Shader that
// produced it: it remains valid until that shader is reset, freed, or
// finalized again. Callers needing a longer-lived snapshot must copy the
// fields they care about.
type Result struct {
	// Params is a copy of the parameters used to create the shader.
	Params Params

	// Steps lists friendly names for the semantic operations composed
	// into this shader, in append order.
	Steps []string

	// Description is a pretty-printed version of Steps, with repeated
	// entries tallied and separated by commas, e.g.
	// "color decoding, debanding x2, output".
	Description string

	// GLSL is the shader text: a single function definition, such that
	// the function with the indicated Name and signature may be called by
	// the user.
	GLSL string

	// Name is the entry-point function name.
	Name string

	// Input is what the function expects; Output is what it returns.
	Input  Signature
	Output Signature

	// ComputeGroupSize is the requested work group size for compute
	// shaders, tiled across the output image. Both fields are zero for
	// non-compute shaders.
	ComputeGroupSize [2]int

	// ComputeShmem is the shared memory requirement for compute shaders,
	// in bytes. Zero for non-compute shaders.
	ComputeShmem int

	// The resource collections, in insertion order.
	VertexAttribs []VertexAttrib
	Variables     []Variable
	Descriptors   []Descriptor
	Constants     []Constant
}

// Finalize seals the shader and returns its result view. The shader is no
// longer mutable afterwards; further mutation attempts are dropped.
//
// Finalize is idempotent: it may be called repeatedly (e.g. once per
// frame) and produces an equivalent view each time, at no cost beyond
// re-deriving the description string. It returns nil if the shader is in
// the failed state.
func (sh *Shader) Finalize() *Result {
	switch sh.state {
	case stateFailed:
		return nil
	case stateMutable:
		if sh.output == SigSampler {
			// An operation adopted a sampler input but never produced
			// anything from it; there is no callable function to emit.
			sh.fail("shader: finalized with dangling sampler signature")
			return nil
		}
		sh.state = stateFinalized
	case stateFinalized:
		// Re-finalizing is legal and returns an equivalent view.
	}

	res := &Result{
		Params:      sh.params,
		Steps:       sh.steps,
		Description: describeSteps(sh.steps),
		GLSL:        sh.buildFunction(),
		Name:        sh.entry,
		Input:       sh.input,
		Output:      sh.output,

		VertexAttribs: sh.attrs,
		Variables:     sh.vars,
		Descriptors:   sh.descs,
		Constants:     sh.consts,
	}
	if sh.compute {
		res.ComputeGroupSize = sh.groupSize
		res.ComputeShmem = sh.shmem
	}
	return res
}

// describeSteps pretty-prints a step list, tallying repeated labels in
// first-occurrence order: ["a","b","b"] becomes "a, b x2".
func describeSteps(steps []string) string {
	if len(steps) == 0 {
		return "(nothing)"
	}

	var sb strings.Builder
	counted := make(map[string]bool, len(steps))
	for i, step := range steps {
		if counted[step] {
			continue
		}
		counted[step] = true

		count := 1
		for _, other := range steps[i+1:] {
			if other == step {
				count++
			}
		}

		if sb.Len() > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(step)
		if count > 1 {
			fmt.Fprintf(&sb, " x%d", count)
		}
	}
	return sb.String()
}

// buildFunction wraps the accumulated body in a function definition whose
// parameter list and return type follow the resolved signature pair.
//
// Calling convention for appended fragments: the working value is a vec4
// named "color". A color input arrives as the parameter of that name; a
// color output is returned from it. Sampler inputs arrive as the
// (src_tex, tex_coord) parameter pair.
func (sh *Shader) buildFunction() string {
	var sb strings.Builder
	sb.Grow(len(sh.body) + 128)

	ret := "void"
	if sh.output == SigColor {
		ret = "vec4"
	}

	var args string
	switch sh.input {
	case SigNone:
		// no parameters
	case SigColor:
		args = "vec4 color"
	case SigSampler:
		// The sampler shape is dialect dependent in principle; plain 2D
		// sampling with a normalized coordinate covers every operation
		// currently composed.
		args = "sampler2D src_tex, vec2 tex_coord"
	}

	fmt.Fprintf(&sb, "%s %s(%s) {\n", ret, sh.entry, args)
	if sh.output == SigColor && sh.input != SigColor {
		sb.WriteString("vec4 color = vec4(0.0, 0.0, 0.0, 1.0);\n")
	}
	sb.Write(sh.body)
	if sh.output == SigColor {
		sb.WriteString("return color;\n")
	}
	sb.WriteString("}\n")
	return sb.String()
}
