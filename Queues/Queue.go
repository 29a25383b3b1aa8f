package Queues

// Queue is a FIFO queue.
type Queue[T any] interface {
	Push(item T)
	//Pop the oldest item. Returns *EmptyQueueError when there's nothing to pop.
	Pop() (T, error)
	Empty() bool
}

type ArrayQueue[T any] interface {
	Queue[T]
	//Clear the queue, keeping the buffer.
	Clear()
	Size() uint
	resize(newLen uint)
}

type EmptyQueueError struct {
}

func (e *EmptyQueueError) Error() string {
	return "Queue is Empty: cannot Pop."
}
