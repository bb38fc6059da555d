package trace

import (
	"errors"

	"go.uber.org/zap"

	"github.com/jacoelho/ringbuf"
)

// Step results.
const (
	ResultOK        = "ok"
	ResultTruncated = "truncated"
	ResultFull      = "full"
	ResultEmpty     = "empty"
)

// Buffer is the buffer surface a trace drives.
type Buffer interface {
	Push(v int) error
	Pop() (int, error)
	PushElements(values []int) (int, error)
	PopElements(dst []int) (int, error)
	Len() int
	IsFull() bool
}

// Step records the outcome of one replayed op.
type Step struct {
	Index       int    `json:"index" yaml:"index"`
	Op          string `json:"op" yaml:"op"`
	Requested   int    `json:"requested" yaml:"requested"`
	Transferred int    `json:"transferred" yaml:"transferred"`
	Values      []int  `json:"values,omitempty" yaml:"values,omitempty"`
	Result      string `json:"result" yaml:"result"`
	Len         int    `json:"len" yaml:"len"`
	Full        bool   `json:"full" yaml:"full"`
}

// Replay runs every op of t against buf in order. Rejections are recorded in the
// returned steps rather than stopping the replay.
func Replay(t *Trace, buf Buffer, logger *zap.Logger) []Step {
	steps := make([]Step, 0, len(t.Ops))
	for i, op := range t.Ops {
		s := apply(op, buf)
		s.Index = i
		s.Len = buf.Len()
		s.Full = buf.IsFull()

		logger.Debug("replayed op",
			zap.Int("index", i),
			zap.String("op", s.Op),
			zap.Int("requested", s.Requested),
			zap.Int("transferred", s.Transferred),
			zap.String("result", s.Result),
		)
		steps = append(steps, s)
	}
	return steps
}

func apply(op Op, buf Buffer) Step {
	switch {
	case len(op.Push) == 1:
		err := buf.Push(op.Push[0])
		return finish(Step{Op: "push", Requested: 1}, op.Push, lenIfNil(err, 1), err)

	case len(op.Push) > 1:
		n, err := buf.PushElements(op.Push)
		return finish(Step{Op: "push_elements", Requested: len(op.Push)}, op.Push, n, err)

	case op.Pop == 1:
		v, err := buf.Pop()
		return finish(Step{Op: "pop", Requested: 1}, []int{v}, lenIfNil(err, 1), err)

	default:
		dst := make([]int, op.Pop)
		n, err := buf.PopElements(dst)
		return finish(Step{Op: "pop_elements", Requested: op.Pop}, dst, n, err)
	}
}

func finish(s Step, values []int, n int, err error) Step {
	s.Transferred = n
	s.Values = values[:n]
	switch {
	case errors.Is(err, ringbuf.ErrBufferFull):
		s.Result = ResultFull
	case errors.Is(err, ringbuf.ErrBufferEmpty):
		s.Result = ResultEmpty
	case n < s.Requested:
		s.Result = ResultTruncated
	default:
		s.Result = ResultOK
	}
	return s
}

func lenIfNil(err error, n int) int {
	if err != nil {
		return 0
	}
	return n
}
