// Package queue provides an unbounded, order-preserving channel pump.
package queue

// New returns a send side and a receive side connected by an unbounded
// FIFO buffer, so sends never block the producer. Closing the send side
// drains the buffer to the receive side and then closes it.
func New[T any]() (chan<- T, <-chan T) {
	in := make(chan T)
	out := make(chan T)

	go pump(in, out)

	return in, out
}

func pump[T any](in chan T, out chan T) {
	defer close(out)

	var buf []T
	for in != nil || len(buf) > 0 {
		var (
			sendCh chan T
			next   T
		)
		if len(buf) > 0 {
			sendCh = out
			next = buf[0]
		}

		select {
		case v, ok := <-in:
			if !ok {
				in = nil

				continue
			}
			buf = append(buf, v)
		case sendCh <- next:
			buf = buf[1:]
		}
	}
}
