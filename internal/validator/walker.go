package validator

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/mcncl/jsonshape/internal/errors"
	"github.com/mcncl/jsonshape/internal/models"
)

var orderedObjectType = reflect.TypeOf(models.OrderedObject(nil))

// identity names a composite by reference, never by content. Maps are
// identified by their header pointer, slices by data pointer and length.
type identity struct {
	isMap bool
	ptr   uintptr
	n     int
}

// identityOf returns the identity of a composite. Fixed-size arrays are
// values and empty composites have no children, so neither can close a cycle
// and neither is tracked.
func identityOf(rv reflect.Value) (identity, bool) {
	switch rv.Kind() {
	case reflect.Map:
		if rv.IsNil() {
			return identity{}, false
		}
		return identity{isMap: true, ptr: rv.Pointer()}, true
	case reflect.Slice:
		if rv.Len() == 0 {
			return identity{}, false
		}
		return identity{ptr: rv.Pointer(), n: rv.Len()}, true
	}
	return identity{}, false
}

type frameForm int

const (
	formSequence frameForm = iota
	formMap
	formOrdered
)

// frame is one composite on the descent path.
type frame struct {
	val     reflect.Value
	form    frameForm
	id      identity
	tracked bool
	seg     string
	keys    []reflect.Value
	idx     int
	n       int
}

// walker performs a single validation pass. Its path set holds exactly the
// identities of the tracked frames on its stack.
type walker struct {
	maxDepth int
	path     map[identity]struct{}
	stack    []frame
	nodes    int
	deepest  int
}

func newWalker(maxDepth int) *walker {
	return &walker{
		maxDepth: maxDepth,
		path:     make(map[identity]struct{}),
	}
}

func (w *walker) run(root reflect.Value) (Result, error) {
	defer w.unwind()

	w.nodes = 1
	if res, ok, err := w.enter(root, models.KindMapping, ""); !ok {
		return res, err
	}

	for len(w.stack) > 0 {
		f := &w.stack[len(w.stack)-1]
		if f.idx >= f.n {
			w.leave()
			continue
		}
		i := f.idx
		f.idx++

		var child reflect.Value
		var seg string
		switch f.form {
		case formSequence:
			child = f.val.Index(i)
			seg = indexSegment(i)
		case formMap:
			key := f.keys[i]
			child = f.val.MapIndex(key)
			seg = keySegment(models.Indirect(key).String())
		case formOrdered:
			member := f.val.Index(i)
			key := member.Field(0)
			if kk := models.KindOfValue(key); kk != models.KindText {
				return w.fail(ReasonNonTextKey, rawKeySegment(key), kk), nil
			}
			child = member.Field(1)
			seg = keySegment(models.Indirect(key).String())
		}

		w.nodes++
		kind := models.KindOfValue(child)
		switch {
		case kind == models.KindOther:
			return w.fail(ReasonUnsupportedKind, seg, kind), nil
		case kind.IsComposite():
			if res, ok, err := w.enter(child, kind, seg); !ok {
				return res, err
			}
		}
	}

	return Result{Valid: true, Nodes: w.nodes, Depth: w.deepest}, nil
}

// enter pushes a composite onto the path. It returns ok=false with the
// failing result or error when the composite cannot be descended into.
func (w *walker) enter(rv reflect.Value, kind models.Kind, seg string) (Result, bool, error) {
	rv = models.Indirect(rv)

	if w.maxDepth > 0 && len(w.stack) >= w.maxDepth {
		return Result{}, false, errors.NewValidationError(
			fmt.Sprintf("nesting deeper than %d at %s", w.maxDepth, w.pathTo(seg)),
			errors.ErrMaxDepthExceeded,
		)
	}

	id, tracked := identityOf(rv)
	if tracked {
		if _, onPath := w.path[id]; onPath {
			return w.fail(ReasonCycle, seg, kind), false, nil
		}
		w.path[id] = struct{}{}
	}

	w.stack = append(w.stack, frame{val: rv, id: id, tracked: tracked, seg: seg})
	if len(w.stack) > w.deepest {
		w.deepest = len(w.stack)
	}
	f := &w.stack[len(w.stack)-1]

	switch {
	case kind == models.KindSequence:
		f.form = formSequence
		f.n = rv.Len()
	case rv.Type() == orderedObjectType:
		f.form = formOrdered
		f.n = rv.Len()
	default:
		f.form = formMap
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return keyString(keys[i]) < keyString(keys[j])
		})
		for _, key := range keys {
			if kk := models.KindOfValue(key); kk != models.KindText {
				return w.fail(ReasonNonTextKey, rawKeySegment(key), kk), false, nil
			}
		}
		f.keys = keys
		f.n = len(keys)
	}

	return Result{}, true, nil
}

// leave pops the top frame and releases its identity.
func (w *walker) leave() {
	f := w.stack[len(w.stack)-1]
	if f.tracked {
		delete(w.path, f.id)
	}
	w.stack = w.stack[:len(w.stack)-1]
}

// unwind releases every frame still on the stack.
func (w *walker) unwind() {
	for len(w.stack) > 0 {
		w.leave()
	}
}

func (w *walker) fail(reason Reason, seg string, kind models.Kind) Result {
	return Result{
		Reason: reason,
		Path:   w.pathTo(seg),
		Kind:   kind,
		Nodes:  w.nodes,
		Depth:  w.deepest,
	}
}

// pathTo renders the path of the current top frame extended by seg.
func (w *walker) pathTo(seg string) string {
	segments := make([]string, 0, len(w.stack)+1)
	for _, f := range w.stack {
		if f.seg != "" {
			segments = append(segments, f.seg)
		}
	}
	if seg != "" {
		segments = append(segments, seg)
	}
	return joinPath(segments)
}
