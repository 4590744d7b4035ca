package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// SearchHotels lists directory hotels for a city.
func (c *Client) SearchHotels(ctx context.Context, countryCode, city string, limit int) ([]Hotel, error) {
	q := url.Values{}
	q.Set("countryCode", countryCode)
	q.Set("cityName", city)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var resp HotelsResponse
	if err := c.do(ctx, "data.hotels", http.MethodGet, c.dataURL("/data/hotels?"+q.Encode()), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) GetHotel(ctx context.Context, hotelID string) (*HotelDetail, error) {
	if hotelID == "" {
		return nil, &APIError{Status: http.StatusBadRequest, Code: "INVALID_REQUEST", Message: errEmptyID.Error()}
	}
	q := url.Values{}
	q.Set("hotelId", hotelID)

	var resp HotelDetailResponse
	if err := c.do(ctx, "data.hotel", http.MethodGet, c.dataURL("/data/hotel?"+q.Encode()), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) GetReviews(ctx context.Context, hotelID string, limit int) ([]Review, error) {
	q := url.Values{}
	q.Set("hotelId", hotelID)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var resp ReviewsResponse
	if err := c.do(ctx, "data.reviews", http.MethodGet, c.dataURL("/data/reviews?"+q.Encode()), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}
