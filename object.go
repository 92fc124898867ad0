package shader

// ObjectKind tags the contents of an Object so that an operation can
// detect when a caller hands it a cache built by a different operation.
type ObjectKind uint8

const (
	// ObjectInvalid is the zero value; a populated Object never carries it.
	ObjectInvalid ObjectKind = iota

	// ObjectLUT is a cached lookup table (see Shader.LUT).
	ObjectLUT

	// ObjectBuffer is a cached scratch or state buffer.
	ObjectBuffer

	// ObjectCustom is the first kind value available to out-of-tree
	// operations; they should define their kinds as ObjectCustom + iota.
	ObjectCustom ObjectKind = 64
)

// Object is an opaque cache whose lifetime spans many shader builds.
// Composed operations use Objects to persist cross-invocation GPU-side
// resources such as lookup textures or scratch buffers.
//
// Objects are owned by whichever subsystem created their slot, never by
// any one Shader. The caller declares a nil *Object slot (nil means
// "empty/uncreated"), passes its address to operations that want to cache
// state, and eventually destroys it with DestroyObject. The body of an
// Object is fully opaque; the generic contract is only that destruction is
// safe, idempotent through the slot, and clears the slot.
//
// An individual Object is not safe for concurrent use; distinct Objects
// are independent.
type Object struct {
	kind ObjectKind
	priv any
	free func(priv any)
}

// Kind returns the kind tag the object was populated with.
func (o *Object) Kind() ObjectKind {
	return o.kind
}

// DestroyObject releases whatever resource the slot's object owns and
// clears the slot, so the same slot can be repopulated later and cannot be
// double-destroyed by accident. A nil handle or an empty slot is a safe
// no-op.
func DestroyObject(obj **Object) {
	if obj == nil || *obj == nil {
		return
	}
	o := *obj
	*obj = nil
	if o.free != nil {
		o.free(o.priv)
	}
	o.kind = ObjectInvalid
	o.priv = nil
	o.free = nil
}

// Object returns the private state cached in slot, creating it on first
// use. This is the reuse-or-create helper composed operations build their
// caches on:
//
//   - An empty slot calls create, which returns the private state and an
//     optional release function invoked on destruction.
//   - A populated slot of the right kind returns the cached state as is.
//   - A populated slot of the wrong kind is a caller error (the slot was
//     shared between incompatible operations) and fails the shader.
//   - A create error fails the shader and leaves the slot empty.
//
// The returned state is nil exactly when the shader failed.
func (sh *Shader) Object(slot **Object, kind ObjectKind, create func() (priv any, free func(any), err error)) any {
	if !sh.mutable() {
		return nil
	}
	if slot == nil || kind == ObjectInvalid {
		sh.fail("shader: invalid object slot", "kind", kind)
		return nil
	}
	if obj := *slot; obj != nil {
		if obj.kind != kind {
			sh.fail("shader: object kind mismatch",
				"have", obj.kind, "want", kind)
			return nil
		}
		Logger().Debug("shader: reusing cached object", "kind", kind)
		return obj.priv
	}

	priv, free, err := create()
	if err != nil {
		sh.fail("shader: object creation failed", "kind", kind, "err", err)
		return nil
	}
	*slot = &Object{kind: kind, priv: priv, free: free}
	return priv
}
