package rate

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// NormalizeHotel flattens one hotel's room types and rates into display-ready rates,
// keeping provider order. Unpriced rates are dropped silently; rates that cannot be
// normalized are dropped and reported in skipped. Prices that carry no currency are
// taken to be in currency, the one the search asked for. The function is pure.
func NormalizeHotel(h HotelRates, nights int, currency string) (rates []NormalizedRate, skipped []SkippedRate) {
	rates = []NormalizedRate{}
	for _, rt := range h.RoomTypes {
		for _, o := range rt.Rates {
			nr, ok, err := normalizeOffer(rt, o, nights, currency)
			if err != nil {
				skipped = append(skipped, SkippedRate{HotelID: h.HotelID, RateID: o.RateID, Err: err})
				continue
			}
			if ok {
				rates = append(rates, nr)
			}
		}
	}
	return rates, skipped
}

func normalizeOffer(rt RoomType, o Offer, nights int, fallbackCurrency string) (nr NormalizedRate, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			nr, ok, err = NormalizedRate{}, false, fmt.Errorf("%w: %v", ErrRateNormalizing, r)
		}
	}()

	if o.DecodeErr != nil {
		return NormalizedRate{}, false, fmt.Errorf("%w: %w", ErrUndecodableRate, o.DecodeErr)
	}

	price, found := ResolvePrice(o)
	if !found || !price.Amount.IsPositive() {
		return NormalizedRate{}, false, nil
	}

	if o.RateID == "" {
		return NormalizedRate{}, false, ErrMissingRateID
	}
	currency := strings.ToUpper(strings.TrimSpace(price.Currency))
	if currency == "" {
		currency = strings.ToUpper(strings.TrimSpace(fallbackCurrency))
	}
	if len(currency) != 3 {
		return NormalizedRate{}, false, ErrInvalidCurrency
	}

	return NormalizedRate{
		RateID:               o.RateID,
		OfferID:              rt.OfferID,
		RoomID:               rt.RoomTypeID,
		RoomName:             o.Name,
		BoardType:            o.BoardType,
		BoardName:            o.BoardName,
		PerNightAmount:       PerNight(price.Amount, nights),
		TotalAmount:          price.Amount,
		Currency:             currency,
		CancellationPolicies: NormalizeCancellation(o.Cancellation),
		BedTypes:             nonNil(o.BedTypes),
		MaxOccupancy:         o.MaxOccupancy,
		Amenities:            nonNil(o.Amenities),
	}, true, nil
}

// ResolvePrice prefers the suggested selling price when it is positive and falls back to the total.
func ResolvePrice(o Offer) (Price, bool) {
	if len(o.SuggestedSellingPrice) > 0 && o.SuggestedSellingPrice[0].Amount.IsPositive() {
		return o.SuggestedSellingPrice[0], true
	}
	if len(o.Total) > 0 {
		return o.Total[0], true
	}
	return Price{}, false
}

// PerNight divides total by nights, rounding half-even to cents. Without nights it is the total.
func PerNight(total decimal.Decimal, nights int) decimal.Decimal {
	if nights <= 0 {
		return total
	}
	return total.Div(decimal.NewFromInt(int64(nights))).RoundBank(2)
}

// NormalizeCancellation maps any of the provider's policy shapes onto a uniform list.
// Absent data yields an empty, non-nil list.
func NormalizeCancellation(c Cancellation) []CancellationPolicy {
	out := []CancellationPolicy{}
	if !c.Present {
		return out
	}

	if len(c.Infos) > 0 {
		for _, info := range c.Infos {
			tag := info.Type
			if tag == "" {
				tag = c.RefundableTag
			}
			t := ParsePolicyType(tag)
			desc := info.Description
			if desc == "" {
				desc = describe(t, info)
			}
			out = append(out, CancellationPolicy{Type: t, Description: desc})
		}
		return out
	}

	if c.RefundableTag != "" {
		t := ParsePolicyType(c.RefundableTag)
		out = append(out, CancellationPolicy{Type: t, Description: describe(t, PolicyInfo{})})
	}
	return out
}

func describe(t PolicyType, info PolicyInfo) string {
	switch t {
	case PolicyRefundable:
		if info.CancelTime != "" {
			return "Free cancellation until " + info.CancelTime
		}
		return "Free cancellation"
	case PolicyPartiallyRefundable:
		if info.Amount.IsPositive() {
			fee := fmt.Sprintf("Cancellation fee of %s %s", info.Amount.StringFixed(2), info.Currency)
			if info.CancelTime != "" {
				return fee + " from " + info.CancelTime
			}
			return fee
		}
		return "Partially refundable"
	default:
		return "Non-refundable"
	}
}

// MinPerNight returns the lowest per-night amount and its currency.
func MinPerNight(rates []NormalizedRate) (decimal.Decimal, string, bool) {
	if len(rates) == 0 {
		return decimal.Zero, "", false
	}
	best := rates[0]
	for _, r := range rates[1:] {
		if r.PerNightAmount.LessThan(best.PerNightAmount) {
			best = r
		}
	}
	return best.PerNightAmount, best.Currency, true
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
