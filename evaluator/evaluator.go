package evaluator

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/Huan-Yang/dMod/eqnset"
	"github.com/Huan-Yang/dMod/symbolic"
)

// ErrNilSet indicates compilation of a nil or empty equation set.
var ErrNilSet = errors.New("evaluator: nil or empty equation set")

// Options configures compilation.
type Options struct {
	// Compile flattens every expression into a postfix instruction tape at
	// construction time. Semantics are unchanged; only call cost differs.
	Compile bool

	// ModelName labels the compiled artifact for diagnostics. When empty,
	// a stable hash of the equation text is used instead.
	ModelName string
}

// DefaultOptions returns the default (tree-walk, auto-named) configuration.
func DefaultOptions() Options { return Options{} }

// Evaluator evaluates every equation of a set against a name→value
// environment.
type Evaluator struct {
	name    string
	outputs []string
	trees   []symbolic.Expr
	tapes   []tape // non-nil only in compiled mode
}

// Compile builds an Evaluator for the set.
func Compile(set *eqnset.Set, opts Options) (*Evaluator, error) {
	if set == nil || set.Len() == 0 {
		return nil, ErrNilSet
	}
	ev := &Evaluator{
		name:    artifactName(set, opts.ModelName),
		outputs: set.Names(),
		trees:   make([]symbolic.Expr, set.Len()),
	}
	for i, out := range ev.outputs {
		e, _ := set.Expr(out)
		ev.trees[i] = e
	}
	if opts.Compile {
		ev.tapes = make([]tape, len(ev.trees))
		for i, tree := range ev.trees {
			ev.tapes[i] = flatten(tree)
		}
	}

	return ev, nil
}

// artifactName derives the diagnostic label: the explicit model name, or
// "eq-" plus an xxhash of the ordered equation text.
func artifactName(set *eqnset.Set, modelName string) string {
	if modelName != "" {
		return modelName
	}
	h := xxhash.New()
	for _, name := range set.Names() {
		src, _ := set.Source(name)
		_, _ = h.WriteString(name)
		_, _ = h.WriteString("=")
		_, _ = h.WriteString(src)
		_, _ = h.WriteString("\n")
	}

	return "eq-" + strconv.FormatUint(h.Sum64(), 16)
}

// Name returns the artifact label.
func (ev *Evaluator) Name() string { return ev.name }

// Outputs returns the output names in column order.
func (ev *Evaluator) Outputs() []string {
	out := make([]string, len(ev.outputs))
	copy(out, ev.outputs)

	return out
}

// Compiled reports whether the tape strategy is active.
func (ev *Evaluator) Compiled() bool { return ev.tapes != nil }

// Eval computes one value per output, column-ordered to match the source
// set. A symbol without an environment entry surfaces
// symbolic.ErrUnknownSymbol wrapped with the output name.
func (ev *Evaluator) Eval(env map[string]float64) ([]float64, error) {
	row := make([]float64, len(ev.outputs))
	for i := range ev.outputs {
		var v float64
		var err error
		if ev.tapes != nil {
			v, err = ev.tapes[i].run(env)
		} else {
			v, err = ev.trees[i].Eval(env)
		}
		if err != nil {
			return nil, fmt.Errorf("evaluator %s: output %q: %w", ev.name, ev.outputs[i], err)
		}
		row[i] = v
	}

	return row, nil
}
