package upstream

import (
	"context"
	"net/http"
)

func (c *Client) SearchRates(ctx context.Context, req RatesRequest) ([]HotelRates, error) {
	var resp RatesResponse
	if err := c.do(ctx, "hotels.rates", http.MethodPost, c.dataURL("/hotels/rates"), req, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}
