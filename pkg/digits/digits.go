package digits

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

const (
	// Alphabet lists the supported digit characters in order of value.
	Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

	MinBase = 2
	MaxBase = len(Alphabet)
)

// ErrDecode is the sentinel wrapped by every DecodeError.
var ErrDecode = errors.New("invalid digit string")

// DecodeError describes why a digit string could not be decoded.
// Pos is the byte offset of the offending character, or -1 when the
// failure is not tied to a single character.
type DecodeError struct {
	Digits string
	Base   int
	Pos    int
	Reason string
}

func (e *DecodeError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("decode %q in base %d: %s at position %d", e.Digits, e.Base, e.Reason, e.Pos)
	}
	return fmt.Sprintf("decode %q in base %d: %s", e.Digits, e.Base, e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return ErrDecode
}

// Decode evaluates digits as a positional number in the given base.
// Letters are case-insensitive. No sign, prefix or separator is accepted.
func Decode(digits string, base int) (*big.Int, error) {
	if base < MinBase || base > MaxBase {
		return nil, &DecodeError{Digits: digits, Base: base, Pos: -1, Reason: fmt.Sprintf("base must be between %d and %d", MinBase, MaxBase)}
	}
	if digits == "" {
		return nil, &DecodeError{Digits: digits, Base: base, Pos: -1, Reason: "empty input"}
	}

	bigBase := big.NewInt(int64(base))
	result := new(big.Int)
	digit := new(big.Int)

	for i := 0; i < len(digits); i++ {
		v, ok := value(digits[i])
		if !ok {
			return nil, &DecodeError{Digits: digits, Base: base, Pos: i, Reason: fmt.Sprintf("invalid character %q", digits[i])}
		}
		if v >= base {
			return nil, &DecodeError{Digits: digits, Base: base, Pos: i, Reason: fmt.Sprintf("digit %q out of range", digits[i])}
		}

		result.Mul(result, bigBase)
		result.Add(result, digit.SetInt64(int64(v)))
	}

	return result, nil
}

// ParseBase reads a declared base such as "16" and checks its range.
func ParseBase(s string) (int, error) {
	base, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &DecodeError{Digits: s, Pos: -1, Reason: "base is not a decimal integer"}
	}
	if base < MinBase || base > MaxBase {
		return 0, &DecodeError{Digits: s, Base: base, Pos: -1, Reason: fmt.Sprintf("base must be between %d and %d", MinBase, MaxBase)}
	}
	return base, nil
}

// value maps a single byte to its position in Alphabet.
func value(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10, true
	}
	return 0, false
}
