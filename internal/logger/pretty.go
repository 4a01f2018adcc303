package logger

import (
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// defaultPrettyDepth bounds how deep nested values are rendered in
// diagnostic output. Anything deeper is elided rather than dumped.
const defaultPrettyDepth = 3

// prettyPrinter renders arbitrary values for diagnostic messages with a
// bounded depth, so logging a large nested structure stays readable.
type prettyPrinter struct {
	state *spew.ConfigState
}

func newPrettyPrinter(depth int) *prettyPrinter {
	return &prettyPrinter{
		state: &spew.ConfigState{
			Indent:                  "  ",
			MaxDepth:                depth,
			SortKeys:                true,
			DisablePointerAddresses: true,
			DisableCapacities:       true,
		},
	}
}

// format returns the rendered representation without the trailing newline
// spew appends, so the result composes into a single log message cleanly.
func (p *prettyPrinter) format(obj interface{}) string {
	return strings.TrimRight(p.state.Sdump(obj), "\n")
}
