package minipl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferOrder(t *testing.T) {
	b := NewBuffer(1, 2)
	assert.True(t, b.Put(3))

	var got []int
	for {
		v, ok := b.Take()
		if !ok {
			break
		}

		got = append(got, v)
	}

	assert.Equal(t, []int{1, 2, 3}, got)

	_, ok := b.Take()
	assert.False(t, ok)
}

func TestBufferItems(t *testing.T) {
	b := NewBuffer[string]()
	b.Put("a")
	b.Put("b")

	assert.Equal(t, []string{"a", "b"}, b.Items())
}

func TestQueueOrder(t *testing.T) {
	q := NewQueue[int](4)

	go func() {
		defer q.Close()

		for i := 0; i < 100; i++ {
			if !q.Put(i) {
				return
			}
		}
	}()

	var got []int
	for {
		v, ok := q.Take()
		if !ok {
			break
		}

		got = append(got, v)
	}

	assert.Len(t, got, 100)
	for i, v := range got {
		assert.Equal(t, i, v)
	}

	_, ok := q.Take()
	assert.False(t, ok)
}

func TestQueueDrop(t *testing.T) {
	q := NewQueue[int](1)
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)

		for i := 0; ; i++ {
			if !q.Put(i) {
				return
			}
		}
	}()

	v, ok := q.Take()
	assert.True(t, ok)
	assert.Equal(t, 0, v)

	q.Drop()
	<-stopped

	assert.False(t, q.Put(42))
}

func TestSinkFunc(t *testing.T) {
	var got []int
	sink := SinkFunc[int](func(v int) bool {
		got = append(got, v)
		return v < 2
	})

	assert.True(t, sink.Put(1))
	assert.False(t, sink.Put(2))
	assert.Equal(t, []int{1, 2}, got)
}
