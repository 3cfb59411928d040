package mailbox

// Observers is a registry of callbacks owned by a single mailbox goroutine.
// It is not safe for concurrent use; touch it only from posted closures.
type Observers[T any] struct {
	next int
	fns  map[int]func(T)
}

// Add registers fn and returns its handle for Remove.
func (o *Observers[T]) Add(fn func(T)) int {
	if o.fns == nil {
		o.fns = make(map[int]func(T))
	}
	o.next++
	o.fns[o.next] = fn
	return o.next
}

// Remove unregisters the callback with the given handle.
func (o *Observers[T]) Remove(id int) {
	delete(o.fns, id)
}

// Notify calls every registered callback with v.
func (o *Observers[T]) Notify(v T) {
	for _, fn := range o.fns {
		fn(v)
	}
}

// Clear drops every callback.
func (o *Observers[T]) Clear() {
	o.fns = nil
}

// Len reports the number of registered callbacks.
func (o *Observers[T]) Len() int {
	return len(o.fns)
}
