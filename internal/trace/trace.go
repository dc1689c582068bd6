// Package trace records the human-readable calculation steps a codec
// performs. A Trace is a pure function of the codec inputs.
package trace

import (
	"fmt"
	"strings"
)

// Trace is an ordered list of calculation steps.
type Trace []string

func (t Trace) String() string {
	return strings.Join(t, "\n")
}

// Builder accumulates steps for a single codec invocation.
// The zero value is ready to use.
type Builder struct {
	lines []string
}

// Step appends one line formatted as by fmt.Sprintf.
func (b *Builder) Step(format string, args ...any) {
	b.lines = append(b.lines, fmt.Sprintf(format, args...))
}

// Line appends s verbatim.
func (b *Builder) Line(s string) {
	b.lines = append(b.lines, s)
}

// Blank appends an empty separator line.
func (b *Builder) Blank() {
	b.lines = append(b.lines, "")
}

// Append copies the steps of t, indented by indent.
func (b *Builder) Append(t Trace, indent string) {
	for _, l := range t {
		if l == "" {
			b.Blank()
			continue
		}
		b.Line(indent + l)
	}
}

// Trace returns a copy of the accumulated steps.
func (b *Builder) Trace() Trace {
	out := make(Trace, len(b.lines))
	copy(out, b.lines)
	return out
}
