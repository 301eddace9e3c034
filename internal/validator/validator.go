// Package validator checks that an in-memory value tree conforms to the JSON
// data model: the root is a mapping, every mapping key is text, every node is
// null, a boolean, a number, text, a sequence or a mapping, and no composite
// contains itself.
//
// Cycle detection tracks the composites on the current descent path only, so
// a composite shared by two sibling branches is accepted while a composite
// reachable from one of its own descendants is rejected.
package validator

import (
	"reflect"

	"github.com/mcncl/jsonshape/internal/errors"
	"github.com/mcncl/jsonshape/internal/models"
)

// Options tune a Validator.
type Options struct {
	// MaxDepth bounds the number of nested composites, the root included.
	// Zero means unlimited.
	MaxDepth int
}

// Validator validates value trees. It holds no per-call state and is safe
// for concurrent use.
type Validator struct {
	opts Options
}

// New creates a Validator with the given options.
func New(opts Options) *Validator {
	if opts.MaxDepth < 0 {
		opts.MaxDepth = 0
	}
	return &Validator{opts: opts}
}

var defaultValidator = New(Options{})

// IsValidJSON reports whether root is a valid JSON document using default options.
func IsValidJSON(root any) (bool, error) {
	return defaultValidator.IsValidJSON(root)
}

// Check validates root using default options and returns diagnostics.
func Check(root any) (Result, error) {
	return defaultValidator.Check(root)
}

// IsValidJSON reports whether root is a mapping whose whole reachable tree
// conforms to the JSON data model and contains no cycle.
//
// Shape problems yield false with a nil error. An error is returned only for
// an absent root (ErrNilRoot) or when MaxDepth is exceeded.
func (v *Validator) IsValidJSON(root any) (bool, error) {
	res, err := v.Check(root)
	if err != nil {
		return false, err
	}
	return res.Valid, nil
}

// Check is IsValidJSON with diagnostics describing the first violation found.
func (v *Validator) Check(root any) (Result, error) {
	if root == nil {
		return Result{}, errors.NewValidationError("root value is required", errors.ErrNilRoot)
	}

	rv := reflect.ValueOf(root)
	kind := models.KindOfValue(rv)
	if kind != models.KindMapping {
		return Result{
			Reason: ReasonRootNotMapping,
			Path:   rootPath,
			Kind:   kind,
			Nodes:  1,
		}, nil
	}

	w := newWalker(v.opts.MaxDepth)
	return w.run(rv)
}
