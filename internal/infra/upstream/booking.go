package upstream

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) Prebook(ctx context.Context, offerID string) (*Prebook, error) {
	var resp PrebookResponse
	body := PrebookRequest{OfferID: offerID, UsePaymentSdk: false}
	if err := c.do(ctx, "rates.prebook", http.MethodPost, c.bookingURL("/rates/prebook"), body, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) Book(ctx context.Context, req BookRequest) (*Booking, error) {
	var resp BookingResponse
	if err := c.do(ctx, "rates.book", http.MethodPost, c.bookingURL("/rates/book"), req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) GetBooking(ctx context.Context, bookingID string) (*Booking, error) {
	var resp BookingResponse
	if err := c.do(ctx, "bookings.get", http.MethodGet, c.bookingURL("/bookings/"+url.PathEscape(bookingID)), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) CancelBooking(ctx context.Context, bookingID string) (*Cancellation, error) {
	var resp CancellationResponse
	if err := c.do(ctx, "bookings.cancel", http.MethodPut, c.bookingURL("/bookings/"+url.PathEscape(bookingID)), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) ListBookings(ctx context.Context, clientReference string) ([]Booking, error) {
	q := url.Values{}
	q.Set("clientReference", clientReference)

	var resp BookingsResponse
	if err := c.do(ctx, "bookings.list", http.MethodGet, c.bookingURL("/bookings?"+q.Encode()), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}
