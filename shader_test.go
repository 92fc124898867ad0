package shader

import (
	"encoding/binary"
	"math"
	"testing"
)

// f32bytes returns the host representation of a float32, for test data.
func f32bytes(f float32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, math.Float32bits(f))
	return buf
}

// TestNewInitialState verifies the blank state of a fresh shader.
func TestNewInitialState(t *testing.T) {
	sh := New(&Params{ID: 3, Index: 7})

	if sh.IsFailed() {
		t.Error("new shader reports IsFailed() = true")
	}
	if sh.IsCompute() {
		t.Error("new shader reports IsCompute() = true")
	}
	if ok, w, h := sh.OutputSize(); ok || w != 0 || h != 0 {
		t.Errorf("OutputSize() = (%v, %d, %d), want (false, 0, 0)", ok, w, h)
	}
	if sh.input != SigNone || sh.output != SigNone {
		t.Errorf("signature = (%v, %v), want (none, none)", sh.input, sh.output)
	}
	if len(sh.attrs)+len(sh.vars)+len(sh.descs)+len(sh.consts) != 0 {
		t.Error("new shader has non-empty resource collections")
	}
	if sh.Index() != 7 {
		t.Errorf("Index() = %d, want 7", sh.Index())
	}
}

// TestNewNilParams verifies that nil params behave like zero params.
func TestNewNilParams(t *testing.T) {
	sh := New(nil)
	if sh.IsFailed() {
		t.Error("New(nil) produced a failed shader")
	}
	if sh.Index() != 0 {
		t.Errorf("Index() = %d, want 0", sh.Index())
	}
}

// TestRequireChaining verifies the core signature chaining rules.
func TestRequireChaining(t *testing.T) {
	tests := []struct {
		name     string
		chain    []Signature // successive Require inputs
		outputs  []Signature // SetOutput after each successful Require
		wantFail bool
	}{
		{
			name:    "none to color to none",
			chain:   []Signature{SigNone, SigColor},
			outputs: []Signature{SigColor, SigNone},
		},
		{
			name:    "first op adopts sampler input",
			chain:   []Signature{SigSampler},
			outputs: []Signature{SigColor},
		},
		{
			name:     "color required on blank shader adopts",
			chain:    []Signature{SigColor, SigColor},
			outputs:  []Signature{SigColor, SigNone},
			wantFail: false,
		},
		{
			name:     "sampler after color fails",
			chain:    []Signature{SigNone, SigSampler},
			outputs:  []Signature{SigColor},
			wantFail: true,
		},
		{
			name:     "color after void output fails",
			chain:    []Signature{SigNone, SigNone, SigColor},
			outputs:  []Signature{SigNone, SigNone},
			wantFail: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sh := New(nil)
			for i, in := range tt.chain {
				if !sh.Require(in) {
					break
				}
				if i < len(tt.outputs) {
					sh.SetOutput(tt.outputs[i])
				}
			}
			if got := sh.IsFailed(); got != tt.wantFail {
				t.Errorf("IsFailed() = %v, want %v", got, tt.wantFail)
			}
		})
	}
}

// TestStickyFailure verifies that once failed, no later append changes
// program text, bindings, or signature.
func TestStickyFailure(t *testing.T) {
	sh := New(nil)

	if !sh.Require(SigNone) {
		t.Fatal("first Require failed")
	}
	sh.Describe("decode")
	sh.Append("color = vec4(1.0);\n")
	sh.SetOutput(SigColor)

	// Mismatch: current output is color, require sampler.
	if sh.Require(SigSampler) {
		t.Fatal("mismatched Require succeeded")
	}
	if !sh.IsFailed() {
		t.Fatal("shader not failed after signature mismatch")
	}

	bodyLen := len(sh.body)
	stepsLen := len(sh.steps)
	output := sh.output

	// All of these must be dropped.
	sh.Describe("late step")
	sh.Append("garbage();\n")
	sh.Appendf("more(%d);\n", 42)
	sh.SetOutput(SigNone)
	sh.Var(Variable{Var: VarFloat("x"), Data: f32bytes(1)})
	sh.Const(Constant{Name: "c", Type: TypeFloat, Data: f32bytes(1)})
	sh.Attr(VertexAttrib{Name: "pos"})
	sh.Desc(Descriptor{Name: "tex", Type: DescSampledTexture})
	sh.RequireOutputSize(64, 64)
	sh.RequireCompute(8, 8, 0)

	if len(sh.body) != bodyLen {
		t.Error("program text changed after failure")
	}
	if len(sh.steps) != stepsLen {
		t.Error("step list changed after failure")
	}
	if sh.output != output {
		t.Error("signature changed after failure")
	}
	if len(sh.vars)+len(sh.consts)+len(sh.attrs)+len(sh.descs) != 0 {
		t.Error("bindings changed after failure")
	}
	if !sh.IsFailed() {
		t.Error("failed state did not stick")
	}
}

// TestResetReuse verifies that Reset returns a shader (even a failed one)
// to the blank mutable state.
func TestResetReuse(t *testing.T) {
	sh := New(&Params{ID: 1})

	sh.Require(SigNone)
	sh.Describe("decode")
	sh.Append("color = vec4(1.0);\n")
	sh.SetOutput(SigColor)
	sh.Var(Variable{Var: VarFloat("gamma"), Data: f32bytes(2.2)})
	sh.Require(SigSampler) // force failure
	if !sh.IsFailed() {
		t.Fatal("setup: shader should be failed")
	}

	sh.Reset(&Params{ID: 2})

	if sh.IsFailed() {
		t.Error("failed status persisted across Reset")
	}
	if sh.input != SigNone || sh.output != SigNone {
		t.Errorf("signature after Reset = (%v, %v), want (none, none)", sh.input, sh.output)
	}
	if len(sh.steps) != 0 || len(sh.body) != 0 {
		t.Error("steps or body survived Reset")
	}
	if len(sh.vars) != 0 {
		t.Error("variables survived Reset")
	}

	// The shader must be fully usable again.
	if !sh.Require(SigNone) {
		t.Error("Require failed on reset shader")
	}
	if name := sh.Var(Variable{Var: VarFloat("gamma"), Data: f32bytes(2.2)}); name == "" {
		t.Error("Var failed on reset shader")
	}
}

// TestNameCollision verifies per-kind name uniqueness enforcement.
func TestNameCollision(t *testing.T) {
	t.Run("duplicate variable fails", func(t *testing.T) {
		sh := New(nil)
		if name := sh.Var(Variable{Var: VarFloat("gamma"), Data: f32bytes(1)}); name == "" {
			t.Fatal("first Var rejected")
		}
		if name := sh.Var(Variable{Var: VarFloat("gamma"), Data: f32bytes(2)}); name != "" {
			t.Error("duplicate Var accepted")
		}
		if !sh.IsFailed() {
			t.Error("shader not failed after duplicate variable name")
		}
	})

	t.Run("distinct names retained in order", func(t *testing.T) {
		sh := New(nil)
		sh.Var(Variable{Var: VarFloat("a"), Data: f32bytes(1)})
		sh.Var(Variable{Var: VarFloat("b"), Data: f32bytes(2)})
		sh.Var(Variable{Var: VarFloat("c"), Data: f32bytes(3)})
		if sh.IsFailed() {
			t.Fatal("distinct names failed the shader")
		}
		if len(sh.vars) != 3 {
			t.Fatalf("got %d variables, want 3", len(sh.vars))
		}
		for i, prefix := range []string{"a_", "b_", "c_"} {
			if got := sh.vars[i].Var.Name; len(got) < len(prefix) || got[:len(prefix)] != prefix {
				t.Errorf("vars[%d].Name = %q, want prefix %q", i, got, prefix)
			}
		}
	})

	t.Run("same name across kinds is legal", func(t *testing.T) {
		sh := New(nil)
		sh.Var(Variable{Var: VarFloat("lut"), Data: f32bytes(1)})
		sh.Desc(Descriptor{Name: "lut", Type: DescSampledTexture})
		sh.Const(Constant{Name: "lut", Type: TypeFloat, Data: f32bytes(1)})
		if sh.IsFailed() {
			t.Error("same name in different kinds failed the shader")
		}
	})
}

// TestIdentNamespacing verifies that generated identifiers embed the
// caller-chosen shader id.
func TestIdentNamespacing(t *testing.T) {
	a := New(&Params{ID: 1})
	b := New(&Params{ID: 2})

	na := a.Var(Variable{Var: VarFloat("gamma"), Data: f32bytes(1)})
	nb := b.Var(Variable{Var: VarFloat("gamma"), Data: f32bytes(1)})

	if na == nb {
		t.Errorf("identifiers collide across shaders with distinct ids: %q", na)
	}
}

// TestOutputSize verifies output size requirement merging.
func TestOutputSize(t *testing.T) {
	sh := New(nil)

	if !sh.RequireOutputSize(640, 480) {
		t.Fatal("first RequireOutputSize rejected")
	}
	if !sh.RequireOutputSize(640, 480) {
		t.Error("identical RequireOutputSize rejected")
	}
	if ok, w, h := sh.OutputSize(); !ok || w != 640 || h != 480 {
		t.Errorf("OutputSize() = (%v, %d, %d), want (true, 640, 480)", ok, w, h)
	}

	if sh.RequireOutputSize(1280, 720) {
		t.Error("conflicting RequireOutputSize accepted")
	}
	if !sh.IsFailed() {
		t.Error("shader not failed after conflicting output sizes")
	}
}

// TestRequireCompute verifies compute gating, limits and merging.
func TestRequireCompute(t *testing.T) {
	t.Run("denied without capability", func(t *testing.T) {
		sh := New(&Params{GLSL: &GLSLVersion{Version: 450}})
		if sh.RequireCompute(8, 8, 0) {
			t.Error("compute granted without capability")
		}
		if sh.IsFailed() {
			t.Error("denied compute request failed the shader")
		}
		if sh.IsCompute() {
			t.Error("IsCompute() = true after denied request")
		}
	})

	t.Run("granted with capability", func(t *testing.T) {
		sh := New(&Params{GLSL: &GLSLVersion{Version: 450, Compute: true}})
		if !sh.RequireCompute(8, 8, 1024) {
			t.Fatal("compute denied despite capability")
		}
		if !sh.IsCompute() {
			t.Error("IsCompute() = false after granted request")
		}
		if sh.groupSize != [2]int{8, 8} || sh.shmem != 1024 {
			t.Errorf("groupSize/shmem = %v/%d, want [8 8]/1024", sh.groupSize, sh.shmem)
		}
	})

	t.Run("shared memory accumulates", func(t *testing.T) {
		sh := New(&Params{GLSL: &GLSLVersion{Version: 450, Compute: true}})
		sh.RequireCompute(8, 8, 256)
		sh.RequireCompute(8, 8, 256)
		if sh.shmem != 512 {
			t.Errorf("shmem = %d, want 512", sh.shmem)
		}
	})

	t.Run("denied past limits", func(t *testing.T) {
		sh := New(&Params{GLSL: &GLSLVersion{
			Version:         450,
			Compute:         true,
			MaxGroupThreads: 64,
		}})
		if sh.RequireCompute(16, 16, 0) {
			t.Error("compute granted past MaxGroupThreads")
		}
		if sh.IsFailed() {
			t.Error("over-limit request failed the shader")
		}
	})

	t.Run("conflicting group size fails", func(t *testing.T) {
		sh := New(&Params{GLSL: &GLSLVersion{Version: 450, Compute: true}})
		sh.RequireCompute(8, 8, 0)
		if sh.RequireCompute(16, 16, 0) {
			t.Error("conflicting group size accepted")
		}
		if !sh.IsFailed() {
			t.Error("shader not failed after conflicting group sizes")
		}
	})
}

// TestSealedMutations verifies that mutations on a finalized shader are
// dropped without affecting the result.
func TestSealedMutations(t *testing.T) {
	sh := New(nil)
	sh.Require(SigNone)
	sh.Describe("decode")
	sh.Append("color = vec4(1.0);\n")
	sh.SetOutput(SigColor)

	res := sh.Finalize()
	if res == nil {
		t.Fatal("Finalize returned nil for healthy shader")
	}

	sh.Describe("late")
	sh.Append("late();\n")
	sh.Var(Variable{Var: VarFloat("late"), Data: f32bytes(1)})
	sh.SetOutput(SigNone)

	again := sh.Finalize()
	if again == nil {
		t.Fatal("re-Finalize returned nil")
	}
	if len(again.Steps) != len(res.Steps) {
		t.Error("sealed Describe altered the step list")
	}
	if again.GLSL != res.GLSL {
		t.Error("sealed Append altered the program text")
	}
	if len(again.Variables) != 0 {
		t.Error("sealed Var altered the bindings")
	}
	if again.Output != SigColor {
		t.Error("sealed SetOutput altered the signature")
	}
	if sh.IsFailed() {
		t.Error("sealed mutations failed the shader")
	}
}

// TestFree verifies the take-pointer-and-null free contract.
func TestFree(t *testing.T) {
	sh := New(nil)
	Free(&sh)
	if sh != nil {
		t.Error("Free did not clear the handle")
	}
	Free(&sh) // second free of cleared handle: no-op
	Free(nil) // nil handle: no-op
}

// TestFreshIdentifiers verifies that Fresh never returns the same name
// twice on a live shader and returns "" on sealed ones.
func TestFreshIdentifiers(t *testing.T) {
	sh := New(nil)
	seen := make(map[string]bool)
	for range 100 {
		id := sh.Fresh("tmp")
		if id == "" {
			t.Fatal("Fresh returned empty identifier on mutable shader")
		}
		if seen[id] {
			t.Fatalf("Fresh returned duplicate identifier %q", id)
		}
		seen[id] = true
	}

	sh.Finalize()
	if id := sh.Fresh("tmp"); id != "" {
		t.Errorf("Fresh on finalized shader = %q, want \"\"", id)
	}
}

// TestBufferVarsOnNonBufferDescriptor verifies the precondition check.
func TestBufferVarsOnNonBufferDescriptor(t *testing.T) {
	sh := New(nil)
	name := sh.Desc(Descriptor{
		Name: "tex",
		Type: DescSampledTexture,
		BufferVars: []BufferVar{
			{Var: VarVec4("data"), Layout: Std140Layout(0, VarVec4("data"))},
		},
	})
	if name != "" {
		t.Error("descriptor with stray buffer vars accepted")
	}
	if !sh.IsFailed() {
		t.Error("shader not failed after stray buffer vars")
	}
}

// TestDynamicConstantsDefault verifies the demotion of constants under the
// DynamicConstants default and the CompileTime override.
func TestDynamicConstantsDefault(t *testing.T) {
	sh := New(&Params{DynamicConstants: true})

	// Without the override, the constant becomes a dynamic variable.
	plain := sh.Const(Constant{Name: "radius", Type: TypeFloat, Data: f32bytes(3)})
	if plain == "" {
		t.Fatal("plain constant rejected")
	}
	if len(sh.consts) != 0 {
		t.Error("plain constant stored as constant despite DynamicConstants")
	}
	if len(sh.vars) != 1 || !sh.vars[0].Dynamic {
		t.Error("plain constant not demoted to a dynamic variable")
	}

	// With the override, it stays a compile-time constant.
	forced := sh.Const(Constant{Name: "taps", Type: TypeSint, Data: f32bytes(0), CompileTime: true})
	if forced == "" {
		t.Fatal("compile-time constant rejected")
	}
	if len(sh.consts) != 1 || !sh.consts[0].CompileTime {
		t.Error("CompileTime override not honored")
	}
}
