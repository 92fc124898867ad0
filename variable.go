package shader

import (
	"fmt"
	"strconv"
)

// VarType is the scalar base type of a shader variable or constant.
// All base types are 32 bit wide on the host side.
type VarType uint8

const (
	// TypeInvalid is the zero value; it never names a real variable.
	TypeInvalid VarType = iota

	// TypeSint is a signed 32-bit integer (GLSL int).
	TypeSint

	// TypeUint is an unsigned 32-bit integer (GLSL uint).
	TypeUint

	// TypeFloat is a 32-bit float (GLSL float).
	TypeFloat
)

// String returns the GLSL scalar type name.
func (t VarType) String() string {
	switch t {
	case TypeSint:
		return "int"
	case TypeUint:
		return "uint"
	case TypeFloat:
		return "float"
	default:
		return "invalid"
	}
}

// Size returns the host size of one scalar of this type, in bytes.
func (t VarType) Size() int {
	switch t {
	case TypeSint, TypeUint, TypeFloat:
		return 4
	default:
		return 0
	}
}

// Var describes the type and shape of a shader variable: a scalar, vector,
// matrix, or array thereof. It is purely a description; the raw host data
// lives next to it in a Variable, BufferVar or Constant.
type Var struct {
	// Name is the identifier the variable is declared under. The engine
	// namespaces it on append, so producers use plain semantic names.
	Name string

	// Type is the scalar base type.
	Type VarType

	// DimV is the vector dimension (1 for scalars, 2..4 for vectors).
	DimV int

	// DimM is the number of matrix columns (1 for non-matrices).
	// Matrices are always DimV rows by DimM columns of floats.
	DimM int

	// DimA is the array length (1 for non-arrays).
	DimA int
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// VarFloat describes a scalar float.
func VarFloat(name string) Var { return Var{Name: name, Type: TypeFloat, DimV: 1, DimM: 1, DimA: 1} }

// VarVec2 describes a vec2.
func VarVec2(name string) Var { return Var{Name: name, Type: TypeFloat, DimV: 2, DimM: 1, DimA: 1} }

// VarVec3 describes a vec3.
func VarVec3(name string) Var { return Var{Name: name, Type: TypeFloat, DimV: 3, DimM: 1, DimA: 1} }

// VarVec4 describes a vec4.
func VarVec4(name string) Var { return Var{Name: name, Type: TypeFloat, DimV: 4, DimM: 1, DimA: 1} }

// VarMat2 describes a mat2.
func VarMat2(name string) Var { return Var{Name: name, Type: TypeFloat, DimV: 2, DimM: 2, DimA: 1} }

// VarMat3 describes a mat3.
func VarMat3(name string) Var { return Var{Name: name, Type: TypeFloat, DimV: 3, DimM: 3, DimA: 1} }

// VarMat4 describes a mat4.
func VarMat4(name string) Var { return Var{Name: name, Type: TypeFloat, DimV: 4, DimM: 4, DimA: 1} }

// VarInt describes a scalar int.
func VarInt(name string) Var { return Var{Name: name, Type: TypeSint, DimV: 1, DimM: 1, DimA: 1} }

// VarUint describes a scalar uint.
func VarUint(name string) Var { return Var{Name: name, Type: TypeUint, DimV: 1, DimM: 1, DimA: 1} }

// Array returns a copy of v with the given array length.
func (v Var) Array(n int) Var {
	v.DimA = n
	return v
}

// ---------------------------------------------------------------------------
// Introspection
// ---------------------------------------------------------------------------

// GLSLType returns the GLSL type name for this variable, excluding any
// array suffix (use GLSLDecl for a full declaration).
func (v Var) GLSLType() string {
	if v.DimM > 1 {
		if v.DimM == v.DimV {
			return "mat" + strconv.Itoa(v.DimM)
		}
		return fmt.Sprintf("mat%dx%d", v.DimM, v.DimV)
	}
	if v.DimV > 1 {
		switch v.Type {
		case TypeSint:
			return "ivec" + strconv.Itoa(v.DimV)
		case TypeUint:
			return "uvec" + strconv.Itoa(v.DimV)
		case TypeFloat:
			return "vec" + strconv.Itoa(v.DimV)
		}
	}
	return v.Type.String()
}

// GLSLDecl returns a full GLSL declaration for this variable, including the
// array suffix if any, but excluding the trailing semicolon.
func (v Var) GLSLDecl() string {
	decl := v.GLSLType() + " " + v.Name
	if v.DimA > 1 {
		decl += "[" + strconv.Itoa(v.DimA) + "]"
	}
	return decl
}

// NumComponents returns the total number of scalar components described,
// including matrix columns and array elements.
func (v Var) NumComponents() int {
	return v.DimV * max(v.DimM, 1) * max(v.DimA, 1)
}
