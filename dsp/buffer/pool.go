package buffer

import "sync"

// Pool provides sync.Pool-based Buffer reuse. It is safe for concurrent use.
type Pool struct {
	pool sync.Pool
}

// NewPool returns a Pool ready for use.
func NewPool() *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any {
				return &Buffer{}
			},
		},
	}
}

// Get returns a zeroed Buffer with the requested length. Callers return it
// via Put when done.
func (p *Pool) Get(length int) *Buffer {
	b, _ := p.pool.Get().(*Buffer)
	if b == nil {
		b = &Buffer{}
	}

	b.Resize(length)
	b.Zero()

	return b
}

// Put returns a Buffer to the pool. The caller must not use it afterwards.
func (p *Pool) Put(b *Buffer) {
	if b == nil {
		return
	}

	p.pool.Put(b)
}
