package order

import "errors"

var errNegativeMoney = errors.New("money cannot be negative")

type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errNegativeMoney
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

func (m Money) MultiplyBy(qty int) Money {
	return Money{cents: m.cents * int64(qty)}
}
