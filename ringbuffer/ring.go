package ringbuffer

import "fmt"

// ring holds the bookkeeping shared by every buffer of the package.
// Valid items occupy [read, read+amount) modulo the capacity.
type ring[T any] struct {
	data []T

	// reading resumes from this position
	read int
	// amount of valid items
	amount int
}

func (r *ring[T]) capacity() int {
	return len(r.data)
}

func (r *ring[T]) writeIndex() int {
	return (r.read + r.amount) % r.capacity()
}

// isContiguous states whether the valid items do not wrap around.
func (r *ring[T]) isContiguous() bool {
	return r.read+r.amount <= r.capacity()
}

// writable returns the first free run, starting at the write index.
// When the items wrap, the run ends at the read index, otherwise at the end of the storage.
// The second free run, [0, read), is only reachable after the first one has been filled.
func (r *ring[T]) writable() []T {
	size := r.capacity()
	if r.read+r.amount < size {
		return r.data[r.read+r.amount : size]
	}
	return r.data[r.writeIndex():r.read]
}

// readable returns the first run of valid items, starting at the read index.
func (r *ring[T]) readable() []T {
	return r.data[r.read:min(r.read+r.amount, r.capacity())]
}

// runs returns both runs of valid items in order. The second one is empty
// when the items are contiguous.
func (r *ring[T]) runs() ([]T, []T) {
	if r.isContiguous() {
		return r.data[r.read : r.read+r.amount], nil
	}
	return r.data[r.read:], r.data[:r.writeIndex()]
}

func (r *ring[T]) isFull() bool {
	return r.amount == r.capacity()
}

func (r *ring[T]) isEmpty() bool {
	return r.amount == 0
}

func (r *ring[T]) push(item T) error {
	if r.isFull() {
		return ErrFull
	}

	r.data[r.writeIndex()] = item
	r.amount++

	return nil
}

func (r *ring[T]) pop() (T, error) {
	if r.isEmpty() {
		return *new(T), ErrEmpty
	}

	item := r.data[r.read]
	r.data[r.read] = *new(T)

	r.read = (r.read + 1) % r.capacity()
	r.amount--

	return item, nil
}

func (r *ring[T]) consumerSlots() ([]T, error) {
	if r.isFull() {
		return nil, ErrFull
	}
	return r.writable(), nil
}

func (r *ring[T]) producerSlots() ([]T, error) {
	if r.isEmpty() {
		return nil, ErrEmpty
	}
	return r.readable(), nil
}

func (r *ring[T]) didConsume(amount int) {
	free := 0
	if !r.isFull() {
		free = len(r.writable())
	}

	if amount < 1 || amount > free {
		panic(fmt.Sprintf("ringbuffer: did consume %d items into a window of %d slots", amount, free))
	}
	r.amount += amount
}

func (r *ring[T]) didProduce(amount int) {
	if available := len(r.readable()); amount < 1 || amount > available {
		panic(fmt.Sprintf("ringbuffer: did produce %d items from a window of %d items", amount, available))
	}

	// Clear the released slots so that they do not retain references
	clear(r.data[r.read : r.read+amount])

	r.read = (r.read + amount) % r.capacity()
	r.amount -= amount
}

// linearize copies the valid items, in order, to the front of dst
// and resets the read index accordingly.
func (r *ring[T]) linearize(dst []T) {
	fst, snd := r.runs()
	n := copy(dst, fst)
	copy(dst[n:], snd)

	r.data = dst
	r.read = 0
}
