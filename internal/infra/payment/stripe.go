package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"ski-stays/internal/pkg/config"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
)

const StatusSucceeded = string(stripe.PaymentIntentStatusSucceeded)

var ErrInvalidAmount = errors.New("payment amount must be positive")

// Error is a failure reported by the payment processor.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("payment %d %s: %s", e.Status, e.Code, e.Message)
}

type Intent struct {
	ID           string            `json:"id"`
	ClientSecret string            `json:"client_secret"`
	Amount       int64             `json:"amount"`
	Currency     string            `json:"currency"`
	Status       string            `json:"status"`
	Metadata     map[string]string `json:"metadata"`
}

// Succeeded reports whether the guest's payment has been captured.
func (i *Intent) Succeeded() bool {
	return i.Status == StatusSucceeded
}

// Gateway creates and reads Stripe payment intents.
type Gateway struct {
	intents *paymentintent.Client
}

func NewGateway(cfg config.PaymentConfig) *Gateway {
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(strings.TrimRight(cfg.BaseURL, "/")),
		HTTPClient:        &http.Client{Timeout: 15 * time.Second},
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     slogLogger{},
	})
	return &Gateway{
		intents: &paymentintent.Client{B: backend, Key: cfg.SecretKey},
	}
}

// ToMinorUnits converts a major-unit amount to cents, rounding half up.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Round(2).Shift(2).IntPart()
}

func (g *Gateway) CreateIntent(ctx context.Context, amount decimal.Decimal, currency string, metadata map[string]string) (*Intent, error) {
	cents := ToMinorUnits(amount)
	if cents <= 0 {
		return nil, ErrInvalidAmount
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(cents),
		Currency: stripe.String(strings.ToLower(currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := g.intents.New(params)
	if err != nil {
		return nil, toError(ctx, "create", err)
	}
	return fromStripe(pi), nil
}

func (g *Gateway) GetIntent(ctx context.Context, id string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := g.intents.Get(id, params)
	if err != nil {
		return nil, toError(ctx, "get", err)
	}
	return fromStripe(pi), nil
}

func fromStripe(pi *stripe.PaymentIntent) *Intent {
	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		Status:       string(pi.Status),
		Metadata:     pi.Metadata,
	}
}

func toError(ctx context.Context, op string, err error) *Error {
	var serr *stripe.Error
	if errors.As(err, &serr) {
		code := string(serr.Code)
		if code == "" {
			code = string(serr.Type)
		}
		msg := serr.Msg
		if msg == "" {
			msg = http.StatusText(serr.HTTPStatusCode)
		}
		return &Error{Status: serr.HTTPStatusCode, Code: code, Message: msg}
	}

	slog.WarnContext(ctx, "payment request failed", "op", op, "error", err)
	return &Error{Status: http.StatusBadGateway, Code: "network_error", Message: err.Error()}
}

// slogLogger routes the Stripe client's own logging into slog.
type slogLogger struct{}

func (slogLogger) Debugf(format string, v ...any) { slog.Debug(fmt.Sprintf(format, v...)) }
func (slogLogger) Infof(format string, v ...any)  { slog.Debug(fmt.Sprintf(format, v...)) }
func (slogLogger) Warnf(format string, v ...any)  { slog.Warn(fmt.Sprintf(format, v...)) }
func (slogLogger) Errorf(format string, v ...any) { slog.Error(fmt.Sprintf(format, v...)) }
