package vox

// RowOrder names, for each matrix row, the column holding its nonzero
// entry. Order231 means row 1 uses column 2, row 2 column 3 and row 3
// column 1.
type RowOrder uint8

const (
	Order123 RowOrder = iota // [x,0,0] [0,x,0] [0,0,x]
	Order132                 // [x,0,0] [0,0,x] [0,x,0]
	Order213                 // [0,x,0] [x,0,0] [0,0,x]
	Order231                 // [0,x,0] [0,0,x] [x,0,0]
	Order312                 // [0,0,x] [x,0,0] [0,x,0]
	Order321                 // [0,0,x] [0,x,0] [x,0,0]
)

var orderColumns = [...][3]uint8{
	Order123: {0, 1, 2},
	Order132: {0, 2, 1},
	Order213: {1, 0, 2},
	Order231: {1, 2, 0},
	Order312: {2, 0, 1},
	Order321: {2, 1, 0},
}

// Rotation is a signed 3x3 permutation matrix: every row and column holds
// exactly one entry of +1 or -1. Neg[i] makes row i's entry negative.
//
// The zero value is the identity. Orders outside Order123..Order321 are
// treated as Order123.
type Rotation struct {
	Order RowOrder
	Neg   [3]bool
}

// Identity returns the rotation mapping every vector to itself.
func Identity() Rotation { return Rotation{} }

func (r Rotation) columns() [3]uint8 {
	if int(r.Order) >= len(orderColumns) {
		return orderColumns[Order123]
	}
	return orderColumns[r.Order]
}

// RotationFromByte decodes a ROTATION byte. It reports false when the
// byte names the same column for rows 1 and 2 or a column beyond 3.
func RotationFromByte(b byte) (Rotation, bool) {
	c1 := b & 0x03
	c2 := (b >> 2) & 0x03
	if c1 > 2 || c2 > 2 || c1 == c2 {
		return Rotation{}, false
	}
	neg := [3]bool{b&0x10 != 0, b&0x20 != 0, b&0x40 != 0}
	return rotationFromColumns([3]uint8{c1, c2, 3 - c1 - c2}, neg), true
}

func rotationFromColumns(cols [3]uint8, neg [3]bool) Rotation {
	for o, c := range orderColumns {
		if c == cols {
			return Rotation{Order: RowOrder(o), Neg: neg}
		}
	}
	return Rotation{Neg: neg}
}

// Byte encodes r as a ROTATION byte. Bit 7 is always clear.
func (r Rotation) Byte() byte {
	cols := r.columns()
	b := cols[0] | cols[1]<<2
	for i, n := range r.Neg {
		if n {
			b |= 1 << (4 + i)
		}
	}
	return b
}

// Matrix returns r as a row-major 3x3 matrix.
func (r Rotation) Matrix() [9]int32 {
	var m [9]int32
	for row, col := range r.columns() {
		m[row*3+int(col)] = sign(r.Neg[row])
	}
	return m
}

// Apply multiplies r with the column vector v.
func (r Rotation) Apply(v [3]int32) [3]int32 {
	var out [3]int32
	for row, col := range r.columns() {
		out[row] = sign(r.Neg[row]) * v[col]
	}
	return out
}

// IsIdentity reports whether r maps every vector to itself.
func (r Rotation) IsIdentity() bool {
	return r.columns() == orderColumns[Order123] && r.Neg == [3]bool{}
}

// Compose returns the rotation r·o, which applies o first and then r.
func (r Rotation) Compose(o Rotation) Rotation {
	rc, oc := r.columns(), o.columns()
	var cols [3]uint8
	var neg [3]bool
	for row := range 3 {
		mid := rc[row]
		cols[row] = oc[mid]
		neg[row] = r.Neg[row] != o.Neg[mid]
	}
	return rotationFromColumns(cols, neg)
}

// Inverse returns the rotation undoing r. Signed permutations are
// orthogonal, so this is the transpose.
func (r Rotation) Inverse() Rotation {
	var cols [3]uint8
	var neg [3]bool
	for row, col := range r.columns() {
		cols[col] = uint8(row)
		neg[col] = r.Neg[row]
	}
	return rotationFromColumns(cols, neg)
}

func sign(neg bool) int32 {
	if neg {
		return -1
	}
	return 1
}
