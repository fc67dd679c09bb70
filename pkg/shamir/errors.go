package shamir

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	// ErrInvalidThreshold indicates a threshold below one.
	ErrInvalidThreshold = errors.New("threshold must be at least 1")

	// ErrInsufficientShares indicates fewer shares than the threshold.
	ErrInsufficientShares = errors.New("insufficient shares for threshold")

	// ErrInvalidShare indicates a share with a missing coordinate.
	ErrInvalidShare = errors.New("invalid share")

	// ErrSingular indicates two selected shares with the same x-coordinate.
	ErrSingular = errors.New("singular interpolation: duplicate x-coordinate")

	// ErrNonInteger indicates the selected shares do not lie on an
	// integer-valued polynomial of the expected degree.
	ErrNonInteger = errors.New("interpolated constant is not an integer")
)

// InsufficientSharesError wraps ErrInsufficientShares with counts.
type InsufficientSharesError struct {
	Have      int
	Threshold int
}

func (e *InsufficientSharesError) Error() string {
	return fmt.Sprintf("insufficient shares: have %d, need %d", e.Have, e.Threshold)
}

func (e *InsufficientSharesError) Unwrap() error {
	return ErrInsufficientShares
}

// SingularInterpolationError reports the repeated abscissa and the
// positions (within the selected shares) where it occurs.
type SingularInterpolationError struct {
	X    *big.Int
	I, J int
}

func (e *SingularInterpolationError) Error() string {
	if e.X == nil {
		return ErrSingular.Error()
	}
	return fmt.Sprintf("singular interpolation: shares %d and %d both have x = %s", e.I, e.J, e.X)
}

func (e *SingularInterpolationError) Unwrap() error {
	return ErrSingular
}

// NonIntegerResultError carries the exact fraction the shares produced.
// The accumulator is reduced after every term, so Num/Den is already in
// lowest terms rather than the raw product of the Lagrange denominators.
// Den is always positive and greater than one.
type NonIntegerResultError struct {
	Num *big.Int
	Den *big.Int
}

func (e *NonIntegerResultError) Error() string {
	return fmt.Sprintf("interpolated constant is not an integer: %s/%s", e.Num, e.Den)
}

func (e *NonIntegerResultError) Unwrap() error {
	return ErrNonInteger
}

// Rat returns the fraction as a big.Rat.
func (e *NonIntegerResultError) Rat() *big.Rat {
	return new(big.Rat).SetFrac(e.Num, e.Den)
}
