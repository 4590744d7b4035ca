package upstream

import (
	"bytes"
	"encoding/json"
	"errors"

	"ski-stays/internal/domain/rate"

	"github.com/shopspring/decimal"
)

// OneOrMany decodes a field the provider sends either as a single object or as an array.
type OneOrMany[T any] []T

func (o *OneOrMany[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*o = nil
		return nil
	case b[0] == '[':
		var many []T
		if err := json.Unmarshal(b, &many); err != nil {
			return err
		}
		*o = many
		return nil
	default:
		var one T
		if err := json.Unmarshal(b, &one); err != nil {
			return err
		}
		*o = OneOrMany[T]{one}
		return nil
	}
}

type Price struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

type PolicyInfo struct {
	Type          string          `json:"type,omitempty"`
	Description   string          `json:"description,omitempty"`
	RefundableTag string          `json:"refundableTag,omitempty"`
	CancelTime    string          `json:"cancelTime,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency,omitempty"`
}

// CancellationPolicies accepts a policy array, an object with cancelPolicyInfos,
// an object with only refundableTag, or nothing.
type CancellationPolicies struct {
	Present       bool
	RefundableTag string
	Infos         []PolicyInfo
}

func (c *CancellationPolicies) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*c = CancellationPolicies{}
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}

	if b[0] == '[' {
		var infos []PolicyInfo
		if err := json.Unmarshal(b, &infos); err != nil {
			return err
		}
		for i := range infos {
			if infos[i].Type == "" {
				infos[i].Type = infos[i].RefundableTag
			}
		}
		*c = CancellationPolicies{Present: true, Infos: infos}
		return nil
	}

	var obj struct {
		CancelPolicyInfos []PolicyInfo `json:"cancelPolicyInfos"`
		RefundableTag     string       `json:"refundableTag"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	*c = CancellationPolicies{Present: true, RefundableTag: obj.RefundableTag, Infos: obj.CancelPolicyInfos}
	return nil
}

func (c CancellationPolicies) MarshalJSON() ([]byte, error) {
	if !c.Present {
		return []byte("null"), nil
	}
	return json.Marshal(struct {
		CancelPolicyInfos []PolicyInfo `json:"cancelPolicyInfos"`
		RefundableTag     string       `json:"refundableTag,omitempty"`
	}{c.Infos, c.RefundableTag})
}

func (c CancellationPolicies) ToDomain() rate.Cancellation {
	out := rate.Cancellation{Present: c.Present, RefundableTag: c.RefundableTag}
	for _, info := range c.Infos {
		out.Infos = append(out.Infos, rate.PolicyInfo{
			Type:        info.Type,
			Description: info.Description,
			CancelTime:  info.CancelTime,
			Amount:      info.Amount,
			Currency:    info.Currency,
		})
	}
	return out
}

type RetailRate struct {
	Total                 OneOrMany[Price] `json:"total"`
	SuggestedSellingPrice OneOrMany[Price] `json:"suggestedSellingPrice"`
}

type BedType struct {
	Quantity int    `json:"quantity"`
	BedType  string `json:"bedType"`
	BedSize  string `json:"bedSize"`
}

// Rate is one provider rate record.
type Rate struct {
	RateID               string               `json:"rateId"`
	Name                 string               `json:"name"`
	MaxOccupancy         int                  `json:"maxOccupancy"`
	BoardType            string               `json:"boardType"`
	BoardName            string               `json:"boardName"`
	RetailRate           RetailRate           `json:"retailRate"`
	CancellationPolicies CancellationPolicies `json:"cancellationPolicies"`
	BedTypes             []BedType            `json:"bedTypes"`
	Amenities            []string             `json:"amenities"`
}

func (r Rate) ToDomain() rate.Offer {
	o := rate.Offer{
		RateID:                r.RateID,
		Name:                  r.Name,
		BoardType:             r.BoardType,
		BoardName:             r.BoardName,
		MaxOccupancy:          r.MaxOccupancy,
		SuggestedSellingPrice: toPrices(r.RetailRate.SuggestedSellingPrice),
		Total:                 toPrices(r.RetailRate.Total),
		Cancellation:          r.CancellationPolicies.ToDomain(),
		Amenities:             r.Amenities,
	}
	for _, bt := range r.BedTypes {
		o.BedTypes = append(o.BedTypes, rate.BedType{Quantity: bt.Quantity, BedType: bt.BedType, BedSize: bt.BedSize})
	}
	return o
}

func toPrices(ps []Price) []rate.Price {
	out := make([]rate.Price, 0, len(ps))
	for _, p := range ps {
		out = append(out, rate.Price{Amount: p.Amount, Currency: p.Currency})
	}
	return out
}

// DecodeRate decodes one raw rate. A failure is carried on the offer so the caller can
// skip that rate alone.
func DecodeRate(raw json.RawMessage) rate.Offer {
	var r Rate
	if err := json.Unmarshal(raw, &r); err != nil {
		var id struct {
			RateID string `json:"rateId"`
		}
		_ = json.Unmarshal(raw, &id)
		return rate.Offer{RateID: id.RateID, DecodeErr: err}
	}
	return r.ToDomain()
}

type RoomType struct {
	RoomTypeID string            `json:"roomTypeId"`
	OfferID    string            `json:"offerId"`
	Rates      []json.RawMessage `json:"rates"`
}

// HotelRates is one hotel's availability. Rates stay raw until DecodeRate so a single
// malformed rate cannot fail the whole response.
type HotelRates struct {
	HotelID   string     `json:"hotelId"`
	RoomTypes []RoomType `json:"roomTypes"`
}

func (h HotelRates) ToDomain() rate.HotelRates {
	out := rate.HotelRates{HotelID: h.HotelID}
	for _, rt := range h.RoomTypes {
		d := rate.RoomType{RoomTypeID: rt.RoomTypeID, OfferID: rt.OfferID}
		for _, raw := range rt.Rates {
			d.Rates = append(d.Rates, DecodeRate(raw))
		}
		out.RoomTypes = append(out.RoomTypes, d)
	}
	return out
}

type Occupancy struct {
	Adults   int   `json:"adults"`
	Children []int `json:"children"`
}

type RatesRequest struct {
	HotelIDs         []string    `json:"hotelIds"`
	Checkin          string      `json:"checkin"`
	Checkout         string      `json:"checkout"`
	Occupancies      []Occupancy `json:"occupancies"`
	Currency         string      `json:"currency"`
	GuestNationality string      `json:"guestNationality"`
	Margin           *float64    `json:"margin,omitempty"`
	Timeout          int         `json:"timeout,omitempty"`
}

type RatesResponse struct {
	Data []HotelRates `json:"data"`
}

// Hotel is a directory entry.
type Hotel struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	Country     string  `json:"country"`
	Stars       float64 `json:"stars"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"reviewCount"`
	MainPhoto   string  `json:"main_photo"`
	Thumbnail   string  `json:"thumbnail"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

type HotelsResponse struct {
	Data []Hotel `json:"data"`
}

type HotelImage struct {
	URL          string `json:"url"`
	Caption      string `json:"caption"`
	DefaultImage bool   `json:"defaultImage"`
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type CheckinCheckoutTimes struct {
	CheckinStart string `json:"checkin_start"`
	Checkout     string `json:"checkout"`
}

type RoomPhoto struct {
	URL string `json:"url"`
}

type Room struct {
	ID           int         `json:"id"`
	RoomName     string      `json:"roomName"`
	Description  string      `json:"description"`
	MaxOccupancy int         `json:"maxOccupancy"`
	Photos       []RoomPhoto `json:"photos"`
}

type HotelDetail struct {
	ID                   string               `json:"id"`
	Name                 string               `json:"name"`
	HotelDescription     string               `json:"hotelDescription"`
	ImportantInformation string               `json:"hotelImportantInformation"`
	Address              string               `json:"address"`
	City                 string               `json:"city"`
	Country              string               `json:"country"`
	Zip                  string               `json:"zip"`
	StarRating           float64              `json:"starRating"`
	Rating               float64              `json:"rating"`
	ReviewCount          int                  `json:"reviewCount"`
	Location             Location             `json:"location"`
	MainPhoto            string               `json:"main_photo"`
	HotelImages          []HotelImage         `json:"hotelImages"`
	HotelFacilities      []string             `json:"hotelFacilities"`
	Rooms                []Room               `json:"rooms"`
	CheckinCheckoutTimes CheckinCheckoutTimes `json:"checkinCheckoutTimes"`
}

type HotelDetailResponse struct {
	Data HotelDetail `json:"data"`
}

type Review struct {
	AverageScore float64 `json:"averageScore"`
	Name         string  `json:"name"`
	Country      string  `json:"country"`
	Type         string  `json:"type"`
	Date         string  `json:"date"`
	Headline     string  `json:"headline"`
	Language     string  `json:"language"`
	Pros         string  `json:"pros"`
	Cons         string  `json:"cons"`
}

type ReviewsResponse struct {
	Data []Review `json:"data"`
}

type PrebookRequest struct {
	OfferID       string `json:"offerId"`
	UsePaymentSdk bool   `json:"usePaymentSdk"`
}

type Prebook struct {
	PrebookID            string               `json:"prebookId"`
	OfferID              string               `json:"offerId"`
	HotelID              string               `json:"hotelId"`
	Price                decimal.Decimal      `json:"price"`
	Currency             string               `json:"currency"`
	Checkin              string               `json:"checkin"`
	Checkout             string               `json:"checkout"`
	PriceDifferencePct   float64              `json:"priceDifferencePercent"`
	CancellationChanged  bool                 `json:"cancellationChanged"`
	CancellationPolicies CancellationPolicies `json:"cancellationPolicies"`
}

type PrebookResponse struct {
	Data Prebook `json:"data"`
}

type Holder struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
}

type BookGuest struct {
	OccupancyNumber int    `json:"occupancyNumber"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
}

type BookPayment struct {
	Method        string `json:"method"`
	TransactionID string `json:"transactionId,omitempty"`
}

type BookRequest struct {
	PrebookID       string      `json:"prebookId"`
	Holder          Holder      `json:"holder"`
	Guests          []BookGuest `json:"guests"`
	Payment         BookPayment `json:"payment"`
	ClientReference string      `json:"clientReference,omitempty"`
}

type BookedHotel struct {
	HotelID string `json:"hotelId"`
	Name    string `json:"name"`
}

// Booking is the provider's view of a booking, shared by book, get and list.
type Booking struct {
	BookingID             string               `json:"bookingId"`
	ClientReference       string               `json:"clientReference"`
	Status                string               `json:"status"`
	HotelConfirmationCode string               `json:"hotelConfirmationCode"`
	Checkin               string               `json:"checkin"`
	Checkout              string               `json:"checkout"`
	Hotel                 BookedHotel          `json:"hotel"`
	Price                 decimal.Decimal      `json:"price"`
	Currency              string               `json:"currency"`
	Holder                Holder               `json:"holder"`
	CancellationPolicies  CancellationPolicies `json:"cancellationPolicies"`
	CreatedAt             string               `json:"createdAt"`
}

type BookingResponse struct {
	Data Booking `json:"data"`
}

type BookingsResponse struct {
	Data []Booking `json:"data"`
}

type Cancellation struct {
	BookingID       string          `json:"bookingId"`
	Status          string          `json:"status"`
	CancellationFee decimal.Decimal `json:"cancellation_fee"`
	RefundAmount    decimal.Decimal `json:"refund_amount"`
	Currency        string          `json:"currency"`
}

type CancellationResponse struct {
	Data Cancellation `json:"data"`
}

var errEmptyID = errors.New("id is required")
