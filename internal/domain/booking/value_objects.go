package booking

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNegativeAmount  = errors.New("amount cannot be negative")
	ErrInvalidCurrency = errors.New("currency must be a 3-letter code")
	ErrInvalidStay     = errors.New("check-out must be after check-in")
)

// Money is an exact amount in a currency's major unit.
type Money struct {
	amount   decimal.Decimal
	currency string
}

func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if amount.IsNegative() {
		return Money{}, ErrNegativeAmount
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if len(currency) != 3 {
		return Money{}, ErrInvalidCurrency
	}
	return Money{amount: amount, currency: currency}, nil
}

func (m Money) Amount() decimal.Decimal { return m.amount }
func (m Money) Currency() string        { return m.currency }

// MinorUnits converts to cents, rounding half away from zero.
func (m Money) MinorUnits() int64 {
	return m.amount.Round(2).Shift(2).IntPart()
}

// Matches reports whether m and other round to the same cents in the same currency.
func (m Money) Matches(other Money) bool {
	return m.currency == other.currency && m.MinorUnits() == other.MinorUnits()
}

type Stay struct {
	checkIn  time.Time
	checkOut time.Time
}

func NewStay(checkIn, checkOut time.Time) (Stay, error) {
	if !checkOut.After(checkIn) {
		return Stay{}, ErrInvalidStay
	}
	return Stay{checkIn: checkIn, checkOut: checkOut}, nil
}

func (s Stay) CheckIn() time.Time  { return s.checkIn }
func (s Stay) CheckOut() time.Time { return s.checkOut }

// Guest is the lead holder named on a booking.
type Guest struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

