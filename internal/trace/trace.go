// Package trace loads scripted push/pop sequences and replays them against a ring buffer.
package trace

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// MaxCount bounds a trace's capacity and each of its pop counts.
const MaxCount = 1 << 20

// Trace is a scripted sequence of operations against a buffer of Capacity elements.
type Trace struct {
	Capacity int  `yaml:"capacity" json:"capacity"`
	Ops      []Op `yaml:"ops" json:"ops"`
}

// Op is a single step. Exactly one of Push and Pop must be set: one pushed value maps
// to Push and several to PushElements; a pop count of 1 maps to Pop and more to
// PopElements.
type Op struct {
	Push []int `yaml:"push,omitempty" json:"push,omitempty"`
	Pop  int   `yaml:"pop,omitempty" json:"pop,omitempty"`
}

// Load reads and validates the trace stored at path.
func Load(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading trace %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing trace %s: %w", path, err)
	}
	return t, nil
}

// Parse decodes a YAML trace and validates it. Unknown fields are rejected.
func Parse(data []byte) (*Trace, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var t Trace
	if err := dec.Decode(&t); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty trace")
		}
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate reports every problem in the trace at once.
func (t *Trace) Validate() error {
	var errs error
	if t.Capacity < 0 {
		errs = multierr.Append(errs, fmt.Errorf("capacity must not be negative, got %d", t.Capacity))
	}
	if t.Capacity > MaxCount {
		errs = multierr.Append(errs, fmt.Errorf("capacity must not exceed %d, got %d", MaxCount, t.Capacity))
	}
	if len(t.Ops) == 0 {
		errs = multierr.Append(errs, errors.New("trace has no ops"))
	}
	for i, op := range t.Ops {
		switch {
		case op.Pop < 0:
			errs = multierr.Append(errs, fmt.Errorf("op %d: pop count must be positive, got %d", i, op.Pop))
		case op.Pop > MaxCount:
			errs = multierr.Append(errs, fmt.Errorf("op %d: pop count must not exceed %d, got %d", i, MaxCount, op.Pop))
		case len(op.Push) > 0 && op.Pop > 0:
			errs = multierr.Append(errs, fmt.Errorf("op %d: push and pop are mutually exclusive", i))
		case len(op.Push) == 0 && op.Pop == 0:
			errs = multierr.Append(errs, fmt.Errorf("op %d: one of push or pop is required", i))
		}
	}
	return errs
}
