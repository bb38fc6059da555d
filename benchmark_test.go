package ringbuf_test

import (
	"testing"

	"github.com/jacoelho/ringbuf"
)

func BenchmarkPushPop(b *testing.B) {
	rb := ringbuf.New[int](1024)

	b.ReportAllocs()
	for i := 0; b.Loop(); i++ {
		_ = rb.Push(i)
		_, _ = rb.Pop()
	}
}

func BenchmarkBulk(b *testing.B) {
	for _, size := range []int{16, 256, 4096} {
		b.Run(sizeName(size), func(b *testing.B) {
			rb := ringbuf.New[int](size)
			in := make([]int, size/2+1)
			out := make([]int, size/2+1)

			b.ReportAllocs()
			for b.Loop() {
				_, _ = rb.PushElements(in)
				_, _ = rb.PopElements(out)
			}
		})
	}
}

func BenchmarkByteBufferCopy(b *testing.B) {
	buf := ringbuf.NewBytes(32 * 1024)
	chunk := make([]byte, 4096)
	sink := make([]byte, 4096)

	b.SetBytes(int64(len(chunk)))
	b.ReportAllocs()
	for b.Loop() {
		_, _ = buf.Write(chunk)
		_, _ = buf.Read(sink)
	}
}

func sizeName(n int) string {
	switch {
	case n >= 1024:
		return "large"
	case n >= 128:
		return "medium"
	default:
		return "small"
	}
}
