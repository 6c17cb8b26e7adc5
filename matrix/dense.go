// SPDX-License-Identifier: MIT

package matrix

// Dense is a row-major dense float64 matrix.
type Dense struct {
	rows, cols int
	data       []float64
}

// NewDense allocates a zero-filled rows×cols matrix.
// Returns ErrBadShape when either dimension is non-positive.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrBadShape
	}

	return &Dense{rows: rows, cols: cols, data: make([]float64, rows*cols)}, nil
}

// Identity returns the n×n identity matrix.
func Identity(n int) (*Dense, error) {
	m, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}

	return m, nil
}

// Rows returns the number of rows. Complexity: O(1).
func (m *Dense) Rows() int { return m.rows }

// Cols returns the number of columns. Complexity: O(1).
func (m *Dense) Cols() int { return m.cols }

// At retrieves the element at (i, j).
// Returns ErrOutOfRange on invalid indices. Complexity: O(1).
func (m *Dense) At(i, j int) (float64, error) {
	if m == nil {
		return 0, ErrNilMatrix
	}
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		return 0, ErrOutOfRange
	}

	return m.data[i*m.cols+j], nil
}

// Set assigns v at (i, j).
// Returns ErrOutOfRange on invalid indices. Complexity: O(1).
func (m *Dense) Set(i, j int, v float64) error {
	if m == nil {
		return ErrNilMatrix
	}
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		return ErrOutOfRange
	}
	m.data[i*m.cols+j] = v

	return nil
}

// Clone returns a deep copy. Complexity: O(rows*cols).
func (m *Dense) Clone() *Dense {
	if m == nil {
		return nil
	}
	out := &Dense{rows: m.rows, cols: m.cols, data: make([]float64, len(m.data))}
	copy(out.data, m.data)

	return out
}

// Scale multiplies every element by s in place and returns the receiver.
func (m *Dense) Scale(s float64) *Dense {
	for i := range m.data {
		m.data[i] *= s
	}

	return m
}

// Mul returns the product a·b.
// Returns ErrDimensionMismatch unless a.Cols == b.Rows.
// Complexity: O(a.rows * a.cols * b.cols).
func Mul(a, b *Dense) (*Dense, error) {
	if a == nil || b == nil {
		return nil, ErrNilMatrix
	}
	if a.cols != b.rows {
		return nil, ErrDimensionMismatch
	}
	out, err := NewDense(a.rows, b.cols)
	if err != nil {
		return nil, err
	}
	for i := 0; i < a.rows; i++ {
		baseA := i * a.cols
		baseO := i * out.cols
		for k := 0; k < a.cols; k++ {
			aik := a.data[baseA+k]
			if aik == 0 {
				continue
			}
			baseB := k * b.cols
			for j := 0; j < b.cols; j++ {
				out.data[baseO+j] += aik * b.data[baseB+j]
			}
		}
	}

	return out, nil
}
