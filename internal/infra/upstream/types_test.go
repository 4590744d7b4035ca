package upstream

import (
	"encoding/json"
	"testing"

	"ski-stays/internal/domain/rate"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOneOrMany(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want int
	}{
		{name: "object", in: `{"amount":450,"currency":"USD"}`, want: 1},
		{name: "array", in: `[{"amount":450,"currency":"USD"},{"amount":500,"currency":"USD"}]`, want: 2},
		{name: "null", in: `null`, want: 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var got OneOrMany[Price]
			require.NoError(t, json.Unmarshal([]byte(c.in), &got))
			assert.Len(t, got, c.want)
			if c.want > 0 {
				assert.True(t, got[0].Amount.Equal(decimal.NewFromInt(450)))
			}
		})
	}
}

func TestCancellationPolicies_Shapes(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want CancellationPolicies
	}{
		{
			name: "array",
			in:   `{"cancellationPolicies":[{"refundableTag":"RFN","cancelTime":"2025-12-08"}]}`,
			want: CancellationPolicies{Present: true, Infos: []PolicyInfo{{Type: "RFN", RefundableTag: "RFN", CancelTime: "2025-12-08"}}},
		},
		{
			name: "object with infos",
			in:   `{"cancellationPolicies":{"cancelPolicyInfos":[{"cancelTime":"2025-12-08","amount":50,"currency":"USD"}],"refundableTag":"RFN"}}`,
			want: CancellationPolicies{Present: true, RefundableTag: "RFN", Infos: []PolicyInfo{{CancelTime: "2025-12-08", Amount: decimal.NewFromInt(50), Currency: "USD"}}},
		},
		{
			name: "object with tag only",
			in:   `{"cancellationPolicies":{"refundableTag":"NRFN"}}`,
			want: CancellationPolicies{Present: true, RefundableTag: "NRFN"},
		},
		{
			name: "absent",
			in:   `{}`,
			want: CancellationPolicies{},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var got struct {
				CancellationPolicies CancellationPolicies `json:"cancellationPolicies"`
			}
			require.NoError(t, json.Unmarshal([]byte(c.in), &got))
			assert.Equal(t, c.want.Present, got.CancellationPolicies.Present)
			assert.Equal(t, c.want.RefundableTag, got.CancellationPolicies.RefundableTag)
			require.Len(t, got.CancellationPolicies.Infos, len(c.want.Infos))
			for i, info := range c.want.Infos {
				g := got.CancellationPolicies.Infos[i]
				assert.Equal(t, info.Type, g.Type)
				assert.Equal(t, info.CancelTime, g.CancelTime)
				assert.True(t, info.Amount.Equal(g.Amount))
			}
		})
	}
}

func TestDecodeRate(t *testing.T) {
	t.Run("array prices and tag object", func(t *testing.T) {
		raw := json.RawMessage(`{
			"rateId": "R1",
			"name": "Queen Room",
			"maxOccupancy": 2,
			"boardType": "RO",
			"boardName": "Room Only",
			"retailRate": {
				"total": [{"amount": 450, "currency": "USD"}],
				"suggestedSellingPrice": {"amount": 0, "currency": "USD"}
			},
			"cancellationPolicies": {"refundableTag": "NRFN"}
		}`)

		o := DecodeRate(raw)
		require.NoError(t, o.DecodeErr)
		assert.Equal(t, "R1", o.RateID)
		require.Len(t, o.Total, 1)
		assert.True(t, o.Total[0].Amount.Equal(decimal.NewFromInt(450)))
		require.Len(t, o.SuggestedSellingPrice, 1)

		price, ok := rate.ResolvePrice(o)
		require.True(t, ok)
		assert.True(t, price.Amount.Equal(decimal.NewFromInt(450)))
	})

	t.Run("malformed rate keeps its id and error", func(t *testing.T) {
		o := DecodeRate(json.RawMessage(`{"rateId":"R2","maxOccupancy":"two"}`))
		assert.Equal(t, "R2", o.RateID)
		assert.Error(t, o.DecodeErr)
	})
}

func TestHotelRates_ToDomainIsolatesBadRates(t *testing.T) {
	var resp RatesResponse
	require.NoError(t, json.Unmarshal([]byte(`{"data":[{"hotelId":"H1","roomTypes":[{"roomTypeId":"RT","offerId":"OF","rates":[
		{"rateId":"A","retailRate":{"total":{"amount":"100.50","currency":"USD"}}},
		{"rateId":"B","retailRate":{"total":{"amount":{"bad":1}}}}
	]}]}]}`), &resp))

	require.Len(t, resp.Data, 1)
	h := resp.Data[0].ToDomain()
	require.Len(t, h.RoomTypes, 1)
	require.Len(t, h.RoomTypes[0].Rates, 2)
	assert.NoError(t, h.RoomTypes[0].Rates[0].DecodeErr)
	assert.Error(t, h.RoomTypes[0].Rates[1].DecodeErr)

	rates, skipped := rate.NormalizeHotel(h, 1, "USD")
	require.Len(t, rates, 1)
	assert.Equal(t, "A", rates[0].RateID)
	require.Len(t, skipped, 1)
	assert.Equal(t, "B", skipped[0].RateID)
}
