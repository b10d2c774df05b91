package screen

// frameQueue is the driver's scheduler inside ebiten's loop: callbacks
// requested during one Update run on the next.
type frameQueue struct {
	pending []func()
	spare   []func()
}

func (q *frameQueue) RequestFrame(fn func()) {
	q.pending = append(q.pending, fn)
}

// run executes the callbacks queued before the call. Callbacks requested
// while running wait for the next run.
func (q *frameQueue) run() int {
	batch := q.pending
	q.pending = q.spare[:0]
	for _, fn := range batch {
		fn()
	}
	clear(batch)
	q.spare = batch[:0]
	return len(batch)
}

func (q *frameQueue) size() int { return len(q.pending) }
