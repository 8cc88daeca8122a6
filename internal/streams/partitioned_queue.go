package streams

import (
	"encoding/binary"
	"hash/fnv"
)

type PartitionedQueue[T any] struct {
	partitions []chan T
}

const (
	defaultNumPartitions = 8
	defaultBuffer        = 1024
)

// NewPartitionedQueue creates a queue with the default partition count and
// per-partition buffer.
func NewPartitionedQueue[T any]() *PartitionedQueue[T] {
	return NewPartitionedQueueSized[T](defaultNumPartitions, defaultBuffer)
}

// NewPartitionedQueueSized creates a queue with explicit sizing; the server
// wires this from config.
func NewPartitionedQueueSized[T any](numPartitions, buffer int) *PartitionedQueue[T] {
	channels := make([]chan T, numPartitions)
	for i := range channels {
		channels[i] = make(chan T, buffer)
	}
	return &PartitionedQueue[T]{partitions: channels}
}

func (queue *PartitionedQueue[T]) PartitionCount() int { return len(queue.partitions) }

// Publish routes msg to the partition owned by partitionKey. Messages sharing
// a key are always delivered to the same single-consumer partition, in
// publish order.
func (queue *PartitionedQueue[T]) Publish(partitionKey string, msg T) {
	idx := partitionIndex(partitionKey, len(queue.partitions))
	queue.partitions[idx] <- msg
}

func (queue *PartitionedQueue[T]) Close() {
	for _, ch := range queue.partitions {
		close(ch)
	}
}

func partitionIndex(key string, n int) int {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(key))
	sum := hash.Sum(nil)
	v := binary.LittleEndian.Uint32(sum)
	return int(v % uint32(n))
}
