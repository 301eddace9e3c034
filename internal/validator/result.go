package validator

import (
	"github.com/iancoleman/strcase"
	"github.com/mcncl/jsonshape/internal/models"
)

// Reason explains why a value tree was rejected.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonRootNotMapping
	ReasonNonTextKey
	ReasonUnsupportedKind
	ReasonCycle
)

var reasonNames = [...]string{
	ReasonNone:            "None",
	ReasonRootNotMapping:  "RootNotMapping",
	ReasonNonTextKey:      "NonTextKey",
	ReasonUnsupportedKind: "UnsupportedKind",
	ReasonCycle:           "Cycle",
}

func (r Reason) String() string {
	if r < 0 || int(r) >= len(reasonNames) {
		return "Unknown"
	}
	return reasonNames[r]
}

// Code returns the machine readable form of the reason, e.g. "non_text_key".
func (r Reason) Code() string {
	return strcase.ToSnake(r.String())
}

// Result is the outcome of a single validation pass.
type Result struct {
	Valid bool
	// Reason is ReasonNone when Valid is true.
	Reason Reason
	// Path locates the offending node, "$" being the root.
	Path string
	// Kind is the kind of the offending node (or key, for ReasonNonTextKey).
	Kind models.Kind
	// Nodes is the number of nodes visited, root included.
	Nodes int
	// Depth is the deepest composite nesting reached.
	Depth int
}
