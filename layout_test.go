package shader

import "testing"

func TestHostLayout(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		v      Var
		want   Layout
	}{
		{"float", 0, VarFloat("x"), Layout{Offset: 0, Stride: 4, Size: 4}},
		{"vec3", 4, VarVec3("x"), Layout{Offset: 4, Stride: 12, Size: 12}},
		{"mat4", 0, VarMat4("x"), Layout{Offset: 0, Stride: 16, Size: 64}},
		{"vec2 array", 0, VarVec2("x").Array(3), Layout{Offset: 0, Stride: 8, Size: 24}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HostLayout(tt.offset, tt.v); got != tt.want {
				t.Errorf("HostLayout(%d, %s) = %+v, want %+v", tt.offset, tt.v.GLSLDecl(), got, tt.want)
			}
		})
	}
}

func TestStd140Layout(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		v      Var
		want   Layout
	}{
		// Scalars and vectors align to their own size class.
		{"float at 0", 0, VarFloat("x"), Layout{Offset: 0, Stride: 4, Size: 4}},
		{"vec2 after float", 4, VarVec2("x"), Layout{Offset: 8, Stride: 8, Size: 8}},
		{"vec3 after float", 4, VarVec3("x"), Layout{Offset: 16, Stride: 12, Size: 12}},
		{"vec4 after vec3", 28, VarVec4("x"), Layout{Offset: 32, Stride: 16, Size: 16}},
		// Matrices and arrays pad their stride out to vec4.
		{"mat3", 0, VarMat3("x"), Layout{Offset: 0, Stride: 16, Size: 44}},
		{"float array", 4, VarFloat("x").Array(4), Layout{Offset: 16, Stride: 16, Size: 52}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Std140Layout(tt.offset, tt.v); got != tt.want {
				t.Errorf("Std140Layout(%d, %s) = %+v, want %+v", tt.offset, tt.v.GLSLDecl(), got, tt.want)
			}
		})
	}
}

func TestStd430Layout(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		v      Var
		want   Layout
	}{
		{"float at 0", 0, VarFloat("x"), Layout{Offset: 0, Stride: 4, Size: 4}},
		{"vec2 after float", 4, VarVec2("x"), Layout{Offset: 8, Stride: 8, Size: 8}},
		// Unlike std140, array strides follow the element alignment.
		{"float array", 4, VarFloat("x").Array(4), Layout{Offset: 4, Stride: 4, Size: 16}},
		{"vec2 array", 0, VarVec2("x").Array(3), Layout{Offset: 0, Stride: 8, Size: 24}},
		// vec3 still rounds up to 16-byte alignment.
		{"vec3 array", 0, VarVec3("x").Array(2), Layout{Offset: 0, Stride: 16, Size: 28}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Std430Layout(tt.offset, tt.v); got != tt.want {
				t.Errorf("Std430Layout(%d, %s) = %+v, want %+v", tt.offset, tt.v.GLSLDecl(), got, tt.want)
			}
		})
	}
}
