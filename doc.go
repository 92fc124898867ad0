// Package shader provides a runtime GLSL shader-fragment composition engine
// for the GoGPU ecosystem.
//
// # Overview
//
// Independent producers of small, semantically named GPU operations (color
// decoding, debanding, sampling, ...) append their fragments to a mutable
// Shader. The engine merges them into a single callable GLSL function
// together with the vertex attributes, variables, descriptors and
// compile-time constants that function needs, while guaranteeing that the
// generated symbol table is collision free and that adjacent fragments are
// signature compatible.
//
// # Quick Start
//
//	import "github.com/gogpu/shader"
//
//	sh := shader.New(&shader.Params{ID: 1})
//
//	// A composed operation: requires no input, produces a color.
//	if sh.Require(shader.SigNone) {
//	    sh.Describe("color decoding")
//	    sh.Appendf("color = vec4(1.0);\n")
//	    sh.SetOutput(shader.SigColor)
//	}
//
//	res := sh.Finalize()
//	if res == nil {
//	    // sh.IsFailed() == true; inspect logs for the reason
//	}
//	fmt.Println(res.GLSL)
//
// # Lifecycle
//
// A Shader is mutable until it is finalized or fails. Failure is sticky:
// once a fragment is rejected (signature mismatch, duplicate resource name,
// unsatisfiable capability requirement) every further mutation is a silent
// no-op and Finalize returns nil. Poll IsFailed to detect this. Reset
// returns a shader to a blank slate without releasing internal storage,
// which makes per-frame regeneration cheap; Pool builds on this for
// concurrent producers.
//
// # Collaborators
//
// The engine never talks to a GPU backend directly. An optional
// DeviceHandle (gpucontext.DeviceProvider) supplies capability information,
// and composed operations may use gpucontext.TextureCreator to populate
// long-lived Object caches such as lookup textures. Compiling and
// dispatching the finalized program is the job of a downstream dispatcher,
// not of this package.
//
// # Concurrency
//
// Individual Shader and Object values are not safe for concurrent use.
// Distinct instances are fully independent; use one Shader per goroutine,
// or a Pool.
package shader

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 2

	// VersionPatch is the patch version
	VersionPatch = 0
)
