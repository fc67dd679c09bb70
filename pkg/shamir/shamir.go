// Package shamir recovers the constant term of a threshold secret-sharing
// polynomial from integer shares, using exact rational arithmetic.
package shamir

import (
	"fmt"
	"math/big"
)

// Share is one (x, y) point on the secret polynomial.
type Share struct {
	X *big.Int
	Y *big.Int
}

// NewShare copies x and y so later changes by the caller cannot alter the share.
func NewShare(x, y *big.Int) Share {
	return Share{X: new(big.Int).Set(x), Y: new(big.Int).Set(y)}
}

func (s Share) String() string {
	return fmt.Sprintf("(%s, %s)", s.X, s.Y)
}

// InterpolateAtZero returns the value at x=0 of the unique polynomial of
// degree k-1 through the first k shares.
//
// Only shares[:k] are read; callers choose which k shares to supply.
// Each Lagrange term y_i * prod_{j!=i} (-x_j)/(x_i - x_j) is folded into a
// running fraction that is reduced after every step. A repeated x fails with
// *SingularInterpolationError; a sum that does not reduce to an integer fails
// with *NonIntegerResultError.
func InterpolateAtZero(shares []Share, k int) (*big.Int, error) {
	if k < 1 {
		return nil, ErrInvalidThreshold
	}
	if len(shares) < k {
		return nil, &InsufficientSharesError{Have: len(shares), Threshold: k}
	}

	points := shares[:k]
	for i, p := range points {
		if p.X == nil || p.Y == nil {
			return nil, fmt.Errorf("%w: share %d has a nil coordinate", ErrInvalidShare, i)
		}
	}

	acc := newFraction()
	diff := new(big.Int)

	for i, pi := range points {
		termNum := new(big.Int).Set(pi.Y)
		termDen := big.NewInt(1)

		for j, pj := range points {
			if i == j {
				continue
			}

			diff.Sub(pi.X, pj.X)
			if diff.Sign() == 0 {
				return nil, &SingularInterpolationError{X: new(big.Int).Set(pi.X), I: min(i, j), J: max(i, j)}
			}

			termNum.Mul(termNum, new(big.Int).Neg(pj.X))
			termDen.Mul(termDen, diff)
		}

		acc.add(termNum, termDen)
	}

	if acc.den.Sign() == 0 {
		return nil, &SingularInterpolationError{}
	}
	if !acc.isInt() {
		return nil, &NonIntegerResultError{Num: acc.num, Den: acc.den}
	}

	return new(big.Int).Quo(acc.num, acc.den), nil
}
