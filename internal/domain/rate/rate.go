package rate

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrMissingRateID   = errors.New("rate id is missing")
	ErrInvalidCurrency = errors.New("currency must be a 3-letter code")
	ErrUndecodableRate = errors.New("rate could not be decoded")
	ErrRateNormalizing = errors.New("rate normalization panicked")
)

// PolicyType is the uniform cancellation category shown to guests.
type PolicyType string

const (
	PolicyRefundable          PolicyType = "REFUNDABLE"
	PolicyNonRefundable       PolicyType = "NON_REFUNDABLE"
	PolicyPartiallyRefundable PolicyType = "PARTIALLY_REFUNDABLE"
)

// ParsePolicyType maps upstream tags onto the known categories. Unknown tags are non-refundable.
func ParsePolicyType(s string) PolicyType {
	switch s {
	case "REFUNDABLE", "RFN":
		return PolicyRefundable
	case "PARTIALLY_REFUNDABLE", "PRFN":
		return PolicyPartiallyRefundable
	default:
		return PolicyNonRefundable
	}
}

type CancellationPolicy struct {
	Type        PolicyType `json:"type"`
	Description string     `json:"description"`
}

type BedType struct {
	Quantity int    `json:"quantity"`
	BedType  string `json:"bedType"`
	BedSize  string `json:"bedSize,omitempty"`
}

// NormalizedRate is the flat, display-ready view of one bookable rate. It is never persisted.
type NormalizedRate struct {
	RateID               string               `json:"rateId"`
	OfferID              string               `json:"offerId"`
	RoomID               string               `json:"roomId"`
	RoomName             string               `json:"roomName"`
	BoardType            string               `json:"boardType"`
	BoardName            string               `json:"boardName,omitempty"`
	PerNightAmount       decimal.Decimal      `json:"perNightAmount"`
	TotalAmount          decimal.Decimal      `json:"totalAmount"`
	Currency             string               `json:"currency"`
	CancellationPolicies []CancellationPolicy `json:"cancellationPolicies"`
	BedTypes             []BedType            `json:"bedTypes"`
	MaxOccupancy         int                  `json:"maxOccupancy"`
	Amenities            []string             `json:"amenities"`
}

// HotelRates is the provider's availability for one hotel after boundary decoding.
type HotelRates struct {
	HotelID   string
	RoomTypes []RoomType
}

type RoomType struct {
	RoomTypeID string
	OfferID    string
	Rates      []Offer
}

// Offer is one provider rate in strict form. Price and cancellation fields that arrive as
// either an object or an array are already flattened into lists.
type Offer struct {
	RateID                string
	Name                  string
	BoardType             string
	BoardName             string
	MaxOccupancy          int
	SuggestedSellingPrice []Price
	Total                 []Price
	Cancellation          Cancellation
	BedTypes              []BedType
	Amenities             []string
	// DecodeErr is set when the provider record could not be decoded; the offer is skipped.
	DecodeErr error
}

type Price struct {
	Amount   decimal.Decimal
	Currency string
}

// Cancellation carries whichever of the provider's policy shapes was present.
type Cancellation struct {
	Present       bool
	RefundableTag string
	Infos         []PolicyInfo
}

type PolicyInfo struct {
	Type        string
	Description string
	CancelTime  string
	Amount      decimal.Decimal
	Currency    string
}

// SkippedRate records a rate dropped because it could not be normalized.
type SkippedRate struct {
	HotelID string
	RateID  string
	Err     error
}
