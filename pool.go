package canopy

import "sync"

// listPool recycles slice buffers used for short-lived snapshots during
// event delivery (handler lists, ancestor chains).
type listPool[T any] struct {
	pool sync.Pool
}

func newListPool[T any](capacity int) *listPool[T] {
	p := &listPool[T]{}
	p.pool.New = func() any {
		s := make([]T, 0, capacity)
		return &s
	}
	return p
}

// Get returns an empty buffer.
func (p *listPool[T]) Get() *[]T {
	s := p.pool.Get().(*[]T)
	*s = (*s)[:0]
	return s
}

// Release clears the buffer and returns it to the pool.
func (p *listPool[T]) Release(s *[]T) {
	var zero T
	for i := range *s {
		(*s)[i] = zero
	}
	*s = (*s)[:0]
	p.pool.Put(s)
}

var (
	handlerListPool = newListPool[any](8)
	nodeListPool    = newListPool[*Node](16)
)
