package pool

import "sync"

var float64SlicePool = sync.Pool{
	New: func() any { return &[]float64{} },
}

// GetFloat64Slice retrieves a float64 slice of exactly size elements from the pool.
//
// The contents are not zeroed. If the pooled slice is too small a new one is
// allocated. The caller must call the returned cleanup function, typically with
// defer, and must not retain the slice afterwards.
//
// Example:
//
//	predicted, release := pool.GetFloat64Slice(len(x))
//	defer release()
func GetFloat64Slice(size int) ([]float64, func()) {
	ptr, _ := float64SlicePool.Get().(*[]float64)
	slice := *ptr

	if cap(slice) < size {
		slice = make([]float64, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { float64SlicePool.Put(ptr) }
}
