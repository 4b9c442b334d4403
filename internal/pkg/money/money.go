// Package money provides precise decimal arithmetic for monetary
// values using big.Rat. Storing amounts as rational numbers avoids the
// usual floating-point drift in staged price computations.
package money

import (
	"fmt"
	"math"
	"math/big"
)

// Money is an immutable monetary value. All operations return a new
// instance and never modify the receiver.
type Money struct {
	rat *big.Rat
}

// New creates a Money from numerator and denominator.
// Example: New(249900, 100) represents $2499.00.
func New(numerator, denominator int64) (*Money, error) {
	if denominator == 0 {
		return nil, fmt.Errorf("denominator cannot be zero")
	}
	if denominator < 0 {
		return nil, fmt.Errorf("denominator must be positive")
	}
	return &Money{rat: big.NewRat(numerator, denominator)}, nil
}

// FromFloat creates a Money from a float64 amount.
// NaN and infinities are rejected.
func FromFloat(amount float64) (*Money, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, fmt.Errorf("amount must be a finite number, got %v", amount)
	}
	rat := new(big.Rat).SetFloat64(amount)
	return &Money{rat: rat}, nil
}

// Zero returns a zero-valued Money.
func Zero() *Money {
	return &Money{rat: big.NewRat(0, 1)}
}

// Rat returns a copy of the underlying rational value.
func (m *Money) Rat() *big.Rat {
	return new(big.Rat).Set(m.rat)
}

// Ratio returns the value as a normalized numerator/denominator pair
// for storage. Fails if either component does not fit in an int64.
func (m *Money) Ratio() (num, denom int64, err error) {
	if !m.rat.Num().IsInt64() || !m.rat.Denom().IsInt64() {
		return 0, 0, fmt.Errorf("money value %s exceeds int64 storage bounds", m.rat.RatString())
	}
	return m.rat.Num().Int64(), m.rat.Denom().Int64(), nil
}

// Add returns m + other.
func (m *Money) Add(other *Money) *Money {
	return &Money{rat: new(big.Rat).Add(m.rat, other.rat)}
}

// Subtract returns m - other.
func (m *Money) Subtract(other *Money) *Money {
	return &Money{rat: new(big.Rat).Sub(m.rat, other.rat)}
}

// MultiplyRat returns m scaled by the given rational factor.
func (m *Money) MultiplyRat(factor *big.Rat) *Money {
	return &Money{rat: new(big.Rat).Mul(m.rat, factor)}
}

// MultiplyFloat returns m scaled by the given float factor.
// Non-finite factors are treated as zero.
func (m *Money) MultiplyFloat(factor float64) *Money {
	if math.IsNaN(factor) || math.IsInf(factor, 0) {
		return Zero()
	}
	return m.MultiplyRat(new(big.Rat).SetFloat64(factor))
}

// IsZero returns true if the value is zero.
func (m *Money) IsZero() bool {
	return m.rat.Sign() == 0
}

// IsNegative returns true if the value is below zero.
func (m *Money) IsNegative() bool {
	return m.rat.Sign() < 0
}

// IsPositive returns true if the value is above zero.
func (m *Money) IsPositive() bool {
	return m.rat.Sign() > 0
}

// LessThan returns true if m < other.
func (m *Money) LessThan(other *Money) bool {
	return m.rat.Cmp(other.rat) < 0
}

// GreaterThan returns true if m > other.
func (m *Money) GreaterThan(other *Money) bool {
	return m.rat.Cmp(other.rat) > 0
}

// Equals returns true if m and other represent the same value.
func (m *Money) Equals(other *Money) bool {
	return m.rat.Cmp(other.rat) == 0
}

// Max returns the larger of m and other.
func (m *Money) Max(other *Money) *Money {
	if m.rat.Cmp(other.rat) >= 0 {
		return m.Copy()
	}
	return other.Copy()
}

// Round2 rounds to two decimal places, half away from zero.
// Round2 is idempotent: Round2(Round2(x)) == Round2(x).
func (m *Money) Round2() *Money {
	rounded, ok := new(big.Rat).SetString(m.rat.FloatString(2))
	if !ok {
		// FloatString always yields a parseable decimal; this branch
		// is unreachable but keeps the method total.
		return m.Copy()
	}
	return &Money{rat: rounded}
}

// Float64 returns an approximate float64 representation.
// For display and JSON responses only, never for calculations.
func (m *Money) Float64() float64 {
	f, _ := m.rat.Float64()
	return f
}

// String renders the value with two decimal places.
func (m *Money) String() string {
	return m.rat.FloatString(2)
}

// Copy returns a deep copy.
func (m *Money) Copy() *Money {
	return &Money{rat: new(big.Rat).Set(m.rat)}
}
