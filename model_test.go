package ringbuf_test

import (
	"math/rand/v2"
	"testing"

	"github.com/eapache/queue"
	"github.com/stretchr/testify/require"

	"github.com/jacoelho/ringbuf"
)

// TestAgainstReferenceQueue replays random operations on a ring buffer and on an
// unbounded queue, dropping from the model every push the ring rejects.
func TestAgainstReferenceQueue(t *testing.T) {
	for seed := range uint64(20) {
		capacity := int(seed % 9)
		rng := rand.New(rand.NewPCG(seed, seed*31+7))
		rb := ringbuf.New[int](capacity)
		model := queue.New()
		next := 0

		for step := range 2000 {
			switch rng.IntN(4) {
			case 0:
				err := rb.Push(next)
				if model.Length() == capacity {
					require.ErrorIs(t, err, ringbuf.ErrBufferFull, "seed %d step %d", seed, step)
				} else {
					require.NoError(t, err, "seed %d step %d", seed, step)
					model.Add(next)
				}
				next++

			case 1:
				v, err := rb.Pop()
				if model.Length() == 0 {
					require.ErrorIs(t, err, ringbuf.ErrBufferEmpty, "seed %d step %d", seed, step)
				} else {
					require.NoError(t, err, "seed %d step %d", seed, step)
					require.Equal(t, model.Remove(), v, "seed %d step %d", seed, step)
				}

			case 2:
				values := make([]int, rng.IntN(capacity+3))
				for i := range values {
					values[i] = next
					next++
				}
				space := capacity - model.Length()
				n, err := rb.PushElements(values)
				if space == 0 {
					require.ErrorIs(t, err, ringbuf.ErrBufferFull, "seed %d step %d", seed, step)
					require.Zero(t, n)
				} else {
					require.NoError(t, err, "seed %d step %d", seed, step)
					require.Equal(t, min(space, len(values)), n, "seed %d step %d", seed, step)
				}
				for _, v := range values[:n] {
					model.Add(v)
				}

			case 3:
				dst := make([]int, rng.IntN(capacity+3))
				occupancy := model.Length()
				n, err := rb.PopElements(dst)
				if occupancy == 0 {
					require.ErrorIs(t, err, ringbuf.ErrBufferEmpty, "seed %d step %d", seed, step)
					require.Zero(t, n)
				} else {
					require.NoError(t, err, "seed %d step %d", seed, step)
					require.Equal(t, min(occupancy, len(dst)), n, "seed %d step %d", seed, step)
				}
				for _, v := range dst[:n] {
					require.Equal(t, model.Remove(), v, "seed %d step %d", seed, step)
				}
			}

			require.Equal(t, model.Length(), rb.Len(), "seed %d step %d", seed, step)
			require.GreaterOrEqual(t, rb.Len(), 0)
			require.LessOrEqual(t, rb.Len(), capacity)
			require.Equal(t, capacity-rb.Len(), rb.RemainingSpace())
			require.Equal(t, model.Length() > 0, rb.ElementsAvailable())
			require.Equal(t, model.Length() == capacity, rb.IsFull())
		}
	}
}
