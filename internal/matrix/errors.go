// Package matrix implements component E, the matrix-algebra engine that
// operates on the internal/value.Matrix storage type: multiply, transpose,
// inverse, determinant, rref, dot/inner/cross, norm, and the other linear
// algebra operations spec.md §4.E names.
//
// It is grounded on katalvlaran-lvlath/matrix (impl_linear_algebra.go,
// ops/inverse.go, ops/lu.go): the fail-fast validate-then-compute shape,
// the operation-tag error wrapping (matrixErrorf(op, err)), and staged
// "Stage N: ..." comments on the larger routines. Arithmetic itself uses
// internal/bigdecimal.Decimal rather than float64, since spec.md §3
// requires Matrix elements to carry the same arbitrary-precision Number
// semantics as scalars.
package matrix

import (
	"errors"
	"fmt"
)

var (
	// ErrNotSquare is returned by operations that require a square matrix.
	ErrNotSquare = errors.New("matrix is not square")
	// ErrDimensionMismatch is returned when operand shapes are incompatible.
	ErrDimensionMismatch = errors.New("matrix dimension mismatch")
	// ErrSingular is returned when Inverse encounters a matrix with no
	// pivot in some column during row reduction.
	ErrSingular = errors.New("matrix is singular")
	// ErrNotVector3 is returned by Cross for any operand whose length isn't 3.
	ErrNotVector3 = errors.New("cross product requires length-3 vectors")
	// ErrEmpty is returned by operations undefined on a 0x0 matrix.
	ErrEmpty = errors.New("matrix is empty")
)

const (
	opMul        = "Mul"
	opScale      = "Scale"
	opTranspose  = "Transpose"
	opInverse    = "Inverse"
	opDeterminant = "Determinant"
	opRREF       = "RREF"
	opDot        = "Dot"
	opInner      = "Inner"
	opCross      = "Cross"
	opNorm       = "Norm"
	opSwapRows   = "SwapRows"
	opSwapCols   = "SwapCols"
	opExpo       = "Expo"
	opNullSpace  = "NullSpace"
)

func wrapf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
