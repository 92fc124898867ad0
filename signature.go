package shader

// Signature indicates the kind of value a composed shader function takes
// and/or returns. Every finalized shader defines a callable function, and
// the (input, output) signature pair describes its calling convention.
//
// Which signature a shader ends up with depends on the operations appended
// to it: each operation declares the input it requires (Require) and the
// output it produces (SetOutput), and the engine checks that adjacent
// operations chain compatibly.
type Signature uint8

const (
	// SigNone means no input / void output.
	SigNone Signature = iota

	// SigColor is a vec4 color, normalized so that 1.0 is the reference white.
	SigColor

	// SigSampler is a (sampler, coordinate) pair whose exact shape depends on
	// how the shader was generated. It is only valid as an input signature;
	// an operation can never leave a shader in sampler-output state.
	SigSampler
)

// String returns a human-readable name for the signature.
func (s Signature) String() string {
	switch s {
	case SigNone:
		return "none"
	case SigColor:
		return "color"
	case SigSampler:
		return "sampler"
	default:
		return "invalid"
	}
}
