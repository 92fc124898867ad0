package shader

// Layout describes where a variable lives inside a block of host or buffer
// memory. Offsets and sizes are in bytes.
//
// For matrices and arrays, the data is laid out as DimA array elements of
// DimM columns each, one column every Stride bytes. Scalars and plain
// vectors have Stride == Size.
type Layout struct {
	// Offset is the starting offset of the variable within the block.
	Offset int

	// Stride is the distance between consecutive columns / array elements.
	Stride int

	// Size is the total size occupied, including internal padding but
	// excluding trailing padding after the last element.
	Size int
}

// alignTo rounds offset up to the next multiple of align.
func alignTo(offset, align int) int {
	return (offset + align - 1) / align * align
}

// vecAlign returns the base alignment of a DimV-component vector under the
// GL std140/std430 rules: scalars align to 4, vec2 to 8, vec3 and vec4
// to 16.
func vecAlign(dimV int) int {
	switch {
	case dimV >= 3:
		return 16
	case dimV == 2:
		return 8
	default:
		return 4
	}
}

// HostLayout returns the tightly packed host memory layout of v starting at
// the given offset. This is the layout producers use for the raw data they
// hand to Variable, Constant and vertex attribute appends: column-major,
// no padding between columns or array elements.
func HostLayout(offset int, v Var) Layout {
	col := v.Type.Size() * v.DimV
	return Layout{
		Offset: offset,
		Stride: col,
		Size:   col * max(v.DimM, 1) * max(v.DimA, 1),
	}
}

// Std140Layout returns the layout of v inside a std140 uniform buffer,
// assuming the variable is appended at the given offset. Under std140,
// matrix columns and array elements are padded out to vec4 stride.
func Std140Layout(offset int, v Var) Layout {
	align := vecAlign(v.DimV)
	stride := v.Type.Size() * v.DimV

	// Matrices and arrays round their element stride up to 16 bytes.
	if max(v.DimM, 1)*max(v.DimA, 1) > 1 {
		align = alignTo(align, 16)
		stride = alignTo(stride, 16)
	}

	return Layout{
		Offset: alignTo(offset, align),
		Stride: stride,
		Size:   stride * (max(v.DimM, 1)*max(v.DimA, 1) - 1) + v.Type.Size()*v.DimV,
	}
}

// Std430Layout returns the layout of v inside a std430 storage buffer,
// assuming the variable is appended at the given offset. std430 matches
// std140 except that element strides follow the element's own alignment
// instead of being rounded up to vec4.
func Std430Layout(offset int, v Var) Layout {
	align := vecAlign(v.DimV)
	stride := alignTo(v.Type.Size()*v.DimV, align)

	return Layout{
		Offset: alignTo(offset, align),
		Stride: stride,
		Size:   stride * (max(v.DimM, 1)*max(v.DimA, 1) - 1) + v.Type.Size()*v.DimV,
	}
}
