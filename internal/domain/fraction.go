package domain

import "math/big"

var bigOne = big.NewInt(1)

// Fraction is an exact rational number. The zero value is 0/1. Fractions are
// immutable: every operation returns a new value and never mutates operands.
// Fractions are not reduced; arithmetic stays exact regardless.
type Fraction struct {
	num *big.Int
	den *big.Int
}

// NewFraction builds num/den. A nil denominator means 1. A zero denominator
// is a programming error and panics.
func NewFraction(num, den *big.Int) Fraction {
	if num == nil {
		num = new(big.Int)
	}
	if den == nil {
		den = bigOne
	}
	if den.Sign() == 0 {
		panic("domain: fraction with zero denominator")
	}
	return Fraction{num: new(big.Int).Set(num), den: new(big.Int).Set(den)}
}

func FractionFromInt(v int64) Fraction {
	return Fraction{num: big.NewInt(v), den: big.NewInt(1)}
}

func FractionFromBig(v *big.Int) Fraction {
	return NewFraction(v, nil)
}

func (f Fraction) Numerator() *big.Int {
	if f.num == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(f.num)
}

func (f Fraction) Denominator() *big.Int {
	if f.den == nil {
		return new(big.Int).Set(bigOne)
	}
	return new(big.Int).Set(f.den)
}

func (f Fraction) normalized() (num, den *big.Int) {
	num, den = f.num, f.den
	if num == nil {
		num = new(big.Int)
	}
	if den == nil {
		den = bigOne
	}
	return num, den
}

// Add returns f + other.
func (f Fraction) Add(other Fraction) Fraction {
	an, ad := f.normalized()
	bn, bd := other.normalized()
	num := new(big.Int).Mul(an, bd)
	num.Add(num, new(big.Int).Mul(bn, ad))
	return Fraction{num: num, den: new(big.Int).Mul(ad, bd)}
}

// Sub returns f - other.
func (f Fraction) Sub(other Fraction) Fraction {
	an, ad := f.normalized()
	bn, bd := other.normalized()
	num := new(big.Int).Mul(an, bd)
	num.Sub(num, new(big.Int).Mul(bn, ad))
	return Fraction{num: num, den: new(big.Int).Mul(ad, bd)}
}

// Mul returns f * other.
func (f Fraction) Mul(other Fraction) Fraction {
	an, ad := f.normalized()
	bn, bd := other.normalized()
	return Fraction{
		num: new(big.Int).Mul(an, bn),
		den: new(big.Int).Mul(ad, bd),
	}
}

// Div returns f / other and panics on division by zero. The result's
// denominator is kept positive.
func (f Fraction) Div(other Fraction) Fraction {
	an, ad := f.normalized()
	bn, bd := other.normalized()
	if bn.Sign() == 0 {
		panic("domain: fraction division by zero")
	}
	num := new(big.Int).Mul(an, bd)
	den := new(big.Int).Mul(ad, bn)
	if den.Sign() < 0 {
		num.Neg(num)
		den.Neg(den)
	}
	return Fraction{num: num, den: den}
}

// Cmp compares f with other: -1 when f < other, 0 when equal, +1 otherwise.
func (f Fraction) Cmp(other Fraction) int {
	an, ad := f.normalized()
	bn, bd := other.normalized()
	left := new(big.Int).Mul(an, bd)
	right := new(big.Int).Mul(bn, ad)
	if ad.Sign()*bd.Sign() < 0 {
		return right.Cmp(left)
	}
	return left.Cmp(right)
}

func (f Fraction) Sign() int {
	an, ad := f.normalized()
	return an.Sign() * ad.Sign()
}

// Quotient truncates the fraction toward zero. This is the only
// precision-losing read on a Fraction.
func (f Fraction) Quotient() *big.Int {
	an, ad := f.normalized()
	return new(big.Int).Quo(an, ad)
}

func (f Fraction) IsZero() bool {
	return f.num == nil || f.num.Sign() == 0
}
