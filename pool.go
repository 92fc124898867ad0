package shader

import "sync"

// Pool manages a pool of reusable Shader objects. After warmup,
// allocations are minimized by reusing shaders: Get returns a blank
// shader whose internal storage capacity survives from its previous use.
//
// Usage:
//
//	pool := shader.NewPool()
//	sh := pool.Get(&shader.Params{ID: 1, Index: frame})
//	defer pool.Put(sh)
//	// compose and finalize sh...
//
// Note that a Result view is bound to its Shader: copy anything you need
// from it before returning the shader to the pool.
type Pool struct {
	pool sync.Pool
}

// NewPool creates a new shader pool.
func NewPool() *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any {
				return New(nil)
			},
		},
	}
}

// Get retrieves a shader from the pool, reset with the given params and
// ready for use.
func (p *Pool) Get(params *Params) *Shader {
	sh := p.pool.Get().(*Shader)
	sh.Reset(params)
	return sh
}

// Put returns a shader to the pool for reuse.
func (p *Pool) Put(sh *Shader) {
	if sh == nil {
		return
	}
	p.pool.Put(sh)
}

// Warmup pre-allocates shaders to avoid allocation during critical paths.
// Call this during initialization if allocation-free operation is required.
func (p *Pool) Warmup(count int) {
	shaders := make([]*Shader, count)
	for i := 0; i < count; i++ {
		shaders[i] = p.Get(nil)
	}
	for i := 0; i < count; i++ {
		p.Put(shaders[i])
	}
}

// DefaultPool is a global shader pool for convenience. For
// performance-critical code, consider creating dedicated pools.
var DefaultPool = NewPool()

// Get retrieves a shader from the default pool.
func Get(params *Params) *Shader {
	return DefaultPool.Get(params)
}

// Put returns a shader to the default pool.
func Put(sh *Shader) {
	DefaultPool.Put(sh)
}
