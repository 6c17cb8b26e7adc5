package params

import (
	"fmt"

	"github.com/Huan-Yang/dMod/matrix"
)

// Jacobian is a dense sensitivity matrix with named rows (output
// parameters) and named columns (upstream reference parameters).
type Jacobian struct {
	rows, cols []string
	rowIdx     map[string]int
	colIdx     map[string]int
	m          *matrix.Dense
}

// NewJacobian allocates a zero rows×cols Jacobian.
func NewJacobian(rows, cols []string) (*Jacobian, error) {
	if len(rows) == 0 || len(cols) == 0 {
		return nil, matrix.ErrBadShape
	}
	j := &Jacobian{
		rows:   make([]string, len(rows)),
		cols:   make([]string, len(cols)),
		rowIdx: make(map[string]int, len(rows)),
		colIdx: make(map[string]int, len(cols)),
	}
	copy(j.rows, rows)
	copy(j.cols, cols)
	for i, name := range j.rows {
		if _, dup := j.rowIdx[name]; dup {
			return nil, fmt.Errorf("%w: row %q", ErrDuplicateName, name)
		}
		j.rowIdx[name] = i
	}
	for i, name := range j.cols {
		if _, dup := j.colIdx[name]; dup {
			return nil, fmt.Errorf("%w: column %q", ErrDuplicateName, name)
		}
		j.colIdx[name] = i
	}
	var err error
	if j.m, err = matrix.NewDense(len(rows), len(cols)); err != nil {
		return nil, err
	}

	return j, nil
}

// IdentityJacobian returns the square identity over names: every parameter
// is fully sensitive to itself and nothing else.
func IdentityJacobian(names []string) (*Jacobian, error) {
	j, err := NewJacobian(names, names)
	if err != nil {
		return nil, err
	}
	for i := range names {
		_ = j.m.Set(i, i, 1)
	}

	return j, nil
}

// RowNames returns the row labels in order.
func (j *Jacobian) RowNames() []string {
	out := make([]string, len(j.rows))
	copy(out, j.rows)

	return out
}

// ColNames returns the column labels in order.
func (j *Jacobian) ColNames() []string {
	out := make([]string, len(j.cols))
	copy(out, j.cols)

	return out
}

// HasRow reports whether the Jacobian carries the named row.
func (j *Jacobian) HasRow(name string) bool {
	_, ok := j.rowIdx[name]

	return ok
}

// HasCol reports whether the Jacobian carries the named column.
func (j *Jacobian) HasCol(name string) bool {
	_, ok := j.colIdx[name]

	return ok
}

// At returns the entry addressed by labels.
func (j *Jacobian) At(row, col string) (float64, error) {
	ri, ok := j.rowIdx[row]
	if !ok {
		return 0, fmt.Errorf("%w: row %q", ErrUnknownLabel, row)
	}
	ci, ok := j.colIdx[col]
	if !ok {
		return 0, fmt.Errorf("%w: column %q", ErrUnknownLabel, col)
	}
	v, err := j.m.At(ri, ci)
	if err != nil {
		return 0, err
	}

	return v, nil
}

// Set assigns the entry addressed by labels.
func (j *Jacobian) Set(row, col string, v float64) error {
	ri, ok := j.rowIdx[row]
	if !ok {
		return fmt.Errorf("%w: row %q", ErrUnknownLabel, row)
	}
	ci, ok := j.colIdx[col]
	if !ok {
		return fmt.Errorf("%w: column %q", ErrUnknownLabel, col)
	}

	return j.m.Set(ri, ci, v)
}

// DropCols returns a copy without the named columns. Names absent from the
// Jacobian are ignored — dropping a fixed parameter that never had a
// column is benign.
func (j *Jacobian) DropCols(names ...string) (*Jacobian, error) {
	drop := make(map[string]struct{}, len(names))
	for _, name := range names {
		drop[name] = struct{}{}
	}
	keep := make([]string, 0, len(j.cols))
	for _, name := range j.cols {
		if _, gone := drop[name]; !gone {
			keep = append(keep, name)
		}
	}
	out, err := NewJacobian(j.rows, keep)
	if err != nil {
		return nil, err
	}
	for ri := range j.rows {
		for ci, col := range keep {
			v, _ := j.m.At(ri, j.colIdx[col])
			_ = out.m.Set(ri, ci, v)
		}
	}

	return out, nil
}

// Chain right-multiplies by an upstream Jacobian: the result maps the
// receiver's rows to upstream's columns, restricting upstream to the rows
// named by the receiver's columns. A local column without a matching
// upstream row is ErrChainMismatch.
func (j *Jacobian) Chain(upstream *Jacobian) (*Jacobian, error) {
	restricted, err := matrix.NewDense(len(j.cols), len(upstream.cols))
	if err != nil {
		return nil, err
	}
	for i, name := range j.cols {
		ri, ok := upstream.rowIdx[name]
		if !ok {
			return nil, fmt.Errorf("%w: column %q has no upstream row", ErrChainMismatch, name)
		}
		for c := range upstream.cols {
			v, _ := upstream.m.At(ri, c)
			_ = restricted.Set(i, c, v)
		}
	}

	prod, err := matrix.Mul(j.m, restricted)
	if err != nil {
		return nil, err
	}
	out, err := NewJacobian(j.rows, upstream.cols)
	if err != nil {
		return nil, err
	}
	out.m = prod

	return out, nil
}

// Dense returns a copy of the underlying matrix.
func (j *Jacobian) Dense() *matrix.Dense { return j.m.Clone() }
