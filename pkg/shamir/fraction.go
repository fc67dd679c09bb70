package shamir

import "math/big"

// fraction is the running sum of Lagrange terms. It is kept in lowest
// terms with a positive denominator; zero is always 0/1.
type fraction struct {
	num *big.Int
	den *big.Int
}

func newFraction() fraction {
	return fraction{num: new(big.Int), den: big.NewInt(1)}
}

// add sets f to f + num/den and reduces the result.
func (f *fraction) add(num, den *big.Int) {
	left := new(big.Int).Mul(f.num, den)
	right := new(big.Int).Mul(num, f.den)

	f.num = left.Add(left, right)
	f.den = new(big.Int).Mul(f.den, den)
	f.reduce()
}

// reduce divides out gcd(|num|, |den|) and moves the sign to the numerator.
// A zero denominator is left untouched for the caller to report.
func (f *fraction) reduce() {
	if f.den.Sign() == 0 {
		return
	}

	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(f.num), new(big.Int).Abs(f.den))
	if g.Cmp(one) != 0 {
		f.num.Quo(f.num, g)
		f.den.Quo(f.den, g)
	}

	if f.den.Sign() < 0 {
		f.num.Neg(f.num)
		f.den.Neg(f.den)
	}
}

func (f *fraction) isInt() bool {
	return f.den.Cmp(one) == 0
}

var one = big.NewInt(1)
