package component

// Emitter is an observer list owned by a single instance. Owners call Clear
// when the instance is released so no subscriber outlives it.
type Emitter[T any] struct {
	handlers []subscriber[T]
	nextID   uint64
}

type subscriber[T any] struct {
	id uint64
	fn func(T)
}

// Subscription detaches one handler from its emitter.
type Subscription struct {
	cancel func()
}

// Cancel removes the handler. Safe to call more than once.
func (s Subscription) Cancel() {
	if s.cancel != nil {
		s.cancel()
	}
}

// Subscribe registers fn and returns its subscription.
func (e *Emitter[T]) Subscribe(fn func(T)) Subscription {
	if e == nil || fn == nil {
		return Subscription{}
	}
	e.nextID++
	id := e.nextID
	e.handlers = append(e.handlers, subscriber[T]{id: id, fn: fn})
	return Subscription{cancel: func() { e.remove(id) }}
}

// Emit sends evt to all handlers in subscription order.
func (e *Emitter[T]) Emit(evt T) {
	if e == nil || len(e.handlers) == 0 {
		return
	}
	// handlers may unsubscribe while we iterate
	handlers := append([]subscriber[T](nil), e.handlers...)
	for _, h := range handlers {
		h.fn(evt)
	}
}

// Len returns the number of live handlers.
func (e *Emitter[T]) Len() int {
	if e == nil {
		return 0
	}
	return len(e.handlers)
}

// Clear drops every handler.
func (e *Emitter[T]) Clear() {
	if e == nil {
		return
	}
	e.handlers = nil
}

func (e *Emitter[T]) remove(id uint64) {
	for i, h := range e.handlers {
		if h.id == id {
			e.handlers = append(e.handlers[:i], e.handlers[i+1:]...)
			return
		}
	}
}
