package commands

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"ski-stays/internal/domain/booking"
	"ski-stays/internal/domain/rate"
	"ski-stays/internal/domain/user"
	reqdto "ski-stays/internal/handler/dto/request"
	"ski-stays/internal/infra"
	"ski-stays/internal/infra/payment"
	"ski-stays/internal/infra/upstream"
	"ski-stays/internal/pkg/cache"
	"ski-stays/internal/pkg/clock"
	"ski-stays/internal/pkg/config"
	"ski-stays/internal/pkg/errs"
	"ski-stays/internal/usecase/queries"
	"ski-stays/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// payment intent metadata keys
const (
	metaPrebookID   = "prebook_id"
	metaOfferID     = "offer_id"
	metaAmountCents = "amount_cents"
	metaCurrency    = "currency"
)

const paymentMethodTransaction = "TRANSACTION_ID"

type PrebookResult struct {
	PrebookID            string                    `json:"prebookId"`
	OfferID              string                    `json:"offerId"`
	HotelID              string                    `json:"hotelId"`
	Price                decimal.Decimal           `json:"price"`
	Currency             string                    `json:"currency"`
	CheckIn              string                    `json:"checkIn"`
	CheckOut             string                    `json:"checkOut"`
	PriceDifferencePct   float64                   `json:"priceDifferencePercent"`
	CancellationChanged  bool                      `json:"cancellationChanged"`
	CancellationPolicies []rate.CancellationPolicy `json:"cancellationPolicies"`
	PaymentIntentID      string                    `json:"paymentIntentId"`
	ClientSecret         string                    `json:"clientSecret"`
}

type ConfirmResult struct {
	BookingID             string          `json:"bookingId"`
	PrebookID             string          `json:"prebookId"`
	Status                string          `json:"status"`
	HotelID               string          `json:"hotelId"`
	HotelName             string          `json:"hotelName"`
	CheckIn               string          `json:"checkIn"`
	CheckOut              string          `json:"checkOut"`
	TotalAmount           decimal.Decimal `json:"totalAmount"`
	Currency              string          `json:"currency"`
	GuestEmail            string          `json:"guestEmail"`
	HotelConfirmationCode string          `json:"hotelConfirmationCode,omitempty"`
	Replayed              bool            `json:"replayed"`
}

type ManageResult struct {
	BookingID       string          `json:"bookingId"`
	Status          string          `json:"status"`
	CancellationFee decimal.Decimal `json:"cancellationFee"`
	RefundAmount    decimal.Decimal `json:"refundAmount"`
	Currency        string          `json:"currency"`
}

type BookingCommands interface {
	Prebook(ctx context.Context, req reqdto.PrebookRequest) (*PrebookResult, error)
	Confirm(ctx context.Context, req reqdto.ConfirmBookingRequest, userID *uuid.UUID) (*ConfirmResult, error)
	Manage(ctx context.Context, req reqdto.ManageBookingRequest) (*ManageResult, error)
}

type BookingProvider interface {
	Prebook(ctx context.Context, offerID string) (*upstream.Prebook, error)
	Book(ctx context.Context, req upstream.BookRequest) (*upstream.Booking, error)
	CancelBooking(ctx context.Context, bookingID string) (*upstream.Cancellation, error)
}

type PaymentGateway interface {
	CreateIntent(ctx context.Context, amount decimal.Decimal, currency string, metadata map[string]string) (*payment.Intent, error)
	GetIntent(ctx context.Context, id string) (*payment.Intent, error)
}

// prebookSnapshot is the price locked in at prebook, kept until confirm.
type prebookSnapshot struct {
	PrebookID string          `json:"prebookId"`
	OfferID   string          `json:"offerId"`
	HotelID   string          `json:"hotelId"`
	Price     decimal.Decimal `json:"price"`
	Currency  string          `json:"currency"`
	CheckIn   string          `json:"checkIn"`
	CheckOut  string          `json:"checkOut"`
}

type bookingCommandsImpl struct {
	uow        shared.UnitOfWork
	bookings   queries.BookingReadStore
	access     queries.BookingAccessStore
	provider   BookingProvider
	payments   PaymentGateway
	cache      *cache.Cache
	prebookTTL time.Duration
	clock      clock.Clock
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	bookings queries.BookingReadStore,
	access queries.BookingAccessStore,
	provider BookingProvider,
	payments PaymentGateway,
	c *cache.Cache,
	cfg config.Config,
	clk clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:        uow,
		bookings:   bookings,
		access:     access,
		provider:   provider,
		payments:   payments,
		cache:      c,
		prebookTTL: cfg.Cache.PrebookTTL,
		clock:      clk,
	}
}

func prebookKey(prebookID string) string {
	return "prebook:" + prebookID
}

func (b *bookingCommandsImpl) Prebook(ctx context.Context, req reqdto.PrebookRequest) (*PrebookResult, error) {
	offerID := strings.TrimSpace(req.OfferID)
	if offerID == "" {
		return nil, errs.Mark(errs.New("offer id is required"), errs.ErrDomainValidation)
	}

	pb, err := b.provider.Prebook(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if pb.PrebookID == "" {
		return nil, &upstream.APIError{Status: http.StatusBadGateway, Code: upstream.CodeUpstreamError, Message: "prebook returned no id"}
	}

	currency := strings.ToUpper(pb.Currency)
	intent, err := b.payments.CreateIntent(ctx, pb.Price, currency, map[string]string{
		metaPrebookID:   pb.PrebookID,
		metaOfferID:     offerID,
		metaAmountCents: strconv.FormatInt(payment.ToMinorUnits(pb.Price), 10),
		metaCurrency:    currency,
	})
	if err != nil {
		return nil, err
	}

	cache.Put(ctx, b.cache, prebookKey(pb.PrebookID), prebookSnapshot{
		PrebookID: pb.PrebookID,
		OfferID:   offerID,
		HotelID:   pb.HotelID,
		Price:     pb.Price,
		Currency:  currency,
		CheckIn:   pb.Checkin,
		CheckOut:  pb.Checkout,
	}, b.prebookTTL)

	slog.Info("prebook created",
		"prebook_id", pb.PrebookID,
		"hotel_id", pb.HotelID,
		"payment_intent_id", intent.ID)

	return &PrebookResult{
		PrebookID:            pb.PrebookID,
		OfferID:              offerID,
		HotelID:              pb.HotelID,
		Price:                pb.Price,
		Currency:             currency,
		CheckIn:              pb.Checkin,
		CheckOut:             pb.Checkout,
		PriceDifferencePct:   pb.PriceDifferencePct,
		CancellationChanged:  pb.CancellationChanged,
		CancellationPolicies: rate.NormalizeCancellation(pb.CancellationPolicies.ToDomain()),
		PaymentIntentID:      intent.ID,
		ClientSecret:         intent.ClientSecret,
	}, nil
}

func (b *bookingCommandsImpl) Confirm(ctx context.Context, req reqdto.ConfirmBookingRequest, userID *uuid.UUID) (*ConfirmResult, error) {
	if existing, err := b.replay(ctx, req.PrebookID); err != nil || existing != nil {
		return existing, err
	}

	intent, err := b.payments.GetIntent(ctx, req.PaymentIntentID)
	if err != nil {
		return nil, err
	}
	if !intent.Succeeded() {
		return nil, errs.Mark(errs.Wrap(errs.New(intent.Status), "payment intent "+intent.ID), errs.ErrPaymentNotCompleted)
	}

	snap, err := b.verifyPayment(ctx, req.PrebookID, intent)
	if err != nil {
		return nil, err
	}

	holder := req.HolderGuest()
	remote, err := b.provider.Book(ctx, upstream.BookRequest{
		PrebookID: req.PrebookID,
		Holder: upstream.Holder{
			FirstName: holder.FirstName,
			LastName:  holder.LastName,
			Email:     holder.Email,
			Phone:     holder.Phone,
		},
		Guests:  bookGuests(req, holder),
		Payment: upstream.BookPayment{Method: paymentMethodTransaction, TransactionID: intent.ID},
	})
	if err != nil {
		return nil, err
	}

	entity, err := b.newBooking(req, snap, remote, intent, holder.Email, userID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	err = b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Bookings().Create(ctx, entity); err != nil {
			return err
		}
		// the holder and the lead guest may look the booking up
		for _, email := range accessEmails(holder.Email, req.Guests) {
			if err := tx.BookingAccess().Grant(ctx, entity.ID(), email, entity.CreatedAt()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			// a concurrent confirm for the same prebook won the insert
			if existing, rerr := b.replay(ctx, req.PrebookID); rerr == nil && existing != nil {
				return existing, nil
			}
			return nil, errs.Mark(err, errs.ErrBookingConflict)
		}
		slog.Error("booking confirmed upstream but not stored",
			"booking_id", entity.BookingID(),
			"prebook_id", entity.PrebookID(),
			"error", err.Error())
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	slog.Info("booking confirmed", "booking_id", entity.BookingID(), "prebook_id", entity.PrebookID())

	res := fromEntity(entity)
	res.HotelConfirmationCode = remote.HotelConfirmationCode
	return res, nil
}

// replay returns the stored booking for prebookID, or nil when none exists yet.
func (b *bookingCommandsImpl) replay(ctx context.Context, prebookID string) (*ConfirmResult, error) {
	stored, err := b.bookings.FindByPrebookID(ctx, prebookID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	slog.Info("replaying confirmed booking", "booking_id", stored.BookingID, "prebook_id", prebookID)
	return &ConfirmResult{
		BookingID:   stored.BookingID,
		PrebookID:   stored.PrebookID,
		Status:      stored.Status,
		HotelID:     stored.HotelID,
		HotelName:   stored.HotelName,
		CheckIn:     stored.CheckIn.Format(rate.DateLayout),
		CheckOut:    stored.CheckOut.Format(rate.DateLayout),
		TotalAmount: stored.TotalAmount,
		Currency:    stored.Currency,
		GuestEmail:  stored.GuestEmail,
		Replayed:    true,
	}, nil
}

// verifyPayment checks the captured intent against the prebook it was created for.
// The cached snapshot is preferred; the intent metadata covers an evicted snapshot.
func (b *bookingCommandsImpl) verifyPayment(ctx context.Context, prebookID string, intent *payment.Intent) (*prebookSnapshot, error) {
	if id := intent.Metadata[metaPrebookID]; id != "" && id != prebookID {
		return nil, errs.Mark(errs.New("payment intent was created for prebook "+id), errs.ErrPaymentAmountInvalid)
	}

	var (
		expectedCents int64
		currency      string
		snap          *prebookSnapshot
	)
	if s, ok := cache.Get[prebookSnapshot](ctx, b.cache, "prebook", prebookKey(prebookID)); ok {
		snap = &s
		expectedCents = payment.ToMinorUnits(s.Price)
		currency = s.Currency
	} else {
		cents, err := strconv.ParseInt(intent.Metadata[metaAmountCents], 10, 64)
		if err != nil {
			return nil, errs.Mark(errs.New("prebook price unknown for "+prebookID), errs.ErrPaymentAmountInvalid)
		}
		expectedCents = cents
		currency = intent.Metadata[metaCurrency]
	}

	if intent.Amount != expectedCents {
		return nil, errs.Mark(
			errs.New("charged "+strconv.FormatInt(intent.Amount, 10)+", expected "+strconv.FormatInt(expectedCents, 10)),
			errs.ErrPaymentAmountInvalid,
		)
	}
	if currency != "" && !strings.EqualFold(intent.Currency, currency) {
		return nil, errs.Mark(errs.New("currency mismatch "+intent.Currency), errs.ErrPaymentAmountInvalid)
	}
	return snap, nil
}

func (b *bookingCommandsImpl) newBooking(
	req reqdto.ConfirmBookingRequest,
	snap *prebookSnapshot,
	remote *upstream.Booking,
	intent *payment.Intent,
	holderEmail string,
	userID *uuid.UUID,
) (*booking.Booking, error) {
	hotelID, checkIn, checkOut := remote.Hotel.HotelID, remote.Checkin, remote.Checkout
	amount, currency := remote.Price, remote.Currency
	if snap != nil {
		hotelID = firstNonEmpty(hotelID, snap.HotelID)
		checkIn = firstNonEmpty(checkIn, snap.CheckIn)
		checkOut = firstNonEmpty(checkOut, snap.CheckOut)
		if !amount.IsPositive() {
			amount, currency = snap.Price, snap.Currency
		}
	}
	if !amount.IsPositive() {
		amount, currency = decimal.New(intent.Amount, -2), intent.Currency
	}

	in, err := time.Parse(rate.DateLayout, checkIn)
	if err != nil {
		return nil, booking.ErrInvalidStay
	}
	out, err := time.Parse(rate.DateLayout, checkOut)
	if err != nil {
		return nil, booking.ErrInvalidStay
	}
	stay, err := booking.NewStay(in, out)
	if err != nil {
		return nil, err
	}
	total, err := booking.NewMoney(amount, currency)
	if err != nil {
		return nil, err
	}

	return booking.New(booking.NewParams{
		UserID:          userID,
		BookingID:       remote.BookingID,
		PrebookID:       req.PrebookID,
		HotelID:         hotelID,
		HotelName:       remote.Hotel.Name,
		Stay:            stay,
		Total:           total,
		Status:          booking.ParseStatus(remote.Status),
		GuestEmail:      holderEmail,
		PaymentIntentID: intent.ID,
	}, b.clock.Now())
}

func (b *bookingCommandsImpl) Manage(ctx context.Context, req reqdto.ManageBookingRequest) (*ManageResult, error) {
	if req.ToAction() != booking.ActionCancel {
		return nil, errs.Mark(errs.New("action "+req.Action), errs.ErrUnsupportedAction)
	}

	stored, err := b.bookings.FindByBookingID(ctx, req.BookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBookingNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	ok, err := b.access.HasAccess(ctx, req.BookingID, req.Email)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !ok {
		return nil, errs.ErrBookingAccessDenied
	}

	entity, err := toEntity(stored)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	now := b.clock.Now()
	if err := entity.Cancel(now); err != nil {
		return nil, errs.Mark(err, errs.ErrBookingConflict)
	}

	cancellation, err := b.provider.CancelBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	err = b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Bookings().UpdateStatus(ctx, entity.BookingID(), entity.Status(), now)
	})
	if err != nil {
		slog.Error("booking cancelled upstream but status not stored",
			"booking_id", entity.BookingID(),
			"error", err.Error())
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	slog.Info("booking cancelled", "booking_id", entity.BookingID())

	currency := cancellation.Currency
	if currency == "" {
		currency = stored.Currency
	}
	return &ManageResult{
		BookingID:       entity.BookingID(),
		Status:          entity.Status().String(),
		CancellationFee: cancellation.CancellationFee,
		RefundAmount:    cancellation.RefundAmount,
		Currency:        currency,
	}, nil
}

func toEntity(v *queries.BookingView) (*booking.Booking, error) {
	stay, err := booking.NewStay(v.CheckIn, v.CheckOut)
	if err != nil {
		return nil, err
	}
	total, err := booking.NewMoney(v.TotalAmount, v.Currency)
	if err != nil {
		return nil, err
	}
	email, err := user.NewEmail(v.GuestEmail)
	if err != nil {
		return nil, err
	}
	var intentID string
	if v.PaymentIntentID != nil {
		intentID = *v.PaymentIntentID
	}
	return booking.Reconstruct(
		v.ID, v.UserID,
		v.BookingID, v.PrebookID, v.HotelID, v.HotelName,
		stay, total,
		booking.Status(v.Status),
		email,
		intentID,
		v.CreatedAt, v.UpdatedAt,
	), nil
}

func fromEntity(e *booking.Booking) *ConfirmResult {
	return &ConfirmResult{
		BookingID:   e.BookingID(),
		PrebookID:   e.PrebookID(),
		Status:      e.Status().String(),
		HotelID:     e.HotelID(),
		HotelName:   e.HotelName(),
		CheckIn:     e.Stay().CheckIn().Format(rate.DateLayout),
		CheckOut:    e.Stay().CheckOut().Format(rate.DateLayout),
		TotalAmount: e.Total().Amount(),
		Currency:    e.Total().Currency(),
		GuestEmail:  e.GuestEmail().Value(),
	}
}

func bookGuests(req reqdto.ConfirmBookingRequest, holder booking.Guest) []upstream.BookGuest {
	if len(req.Guests) == 0 {
		return []upstream.BookGuest{{
			OccupancyNumber: 1,
			FirstName:       holder.FirstName,
			LastName:        holder.LastName,
			Email:           holder.Email,
		}}
	}
	guests := make([]upstream.BookGuest, 0, len(req.Guests))
	for i, g := range req.Guests {
		occupancy := g.OccupancyNumber
		if occupancy == 0 {
			occupancy = i + 1
		}
		email := g.Email
		if email == "" {
			email = holder.Email
		}
		guests = append(guests, upstream.BookGuest{
			OccupancyNumber: occupancy,
			FirstName:       g.FirstName,
			LastName:        g.LastName,
			Email:           email,
		})
	}
	return guests
}

// accessEmails lists the distinct lowercased emails granted access to a new booking.
func accessEmails(holder string, guests []reqdto.GuestRequest) []string {
	seen := map[string]bool{}
	var out []string
	add := func(e string) {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" || seen[e] {
			return
		}
		seen[e] = true
		out = append(out, e)
	}
	add(holder)
	if len(guests) > 0 {
		add(guests[0].Email)
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
