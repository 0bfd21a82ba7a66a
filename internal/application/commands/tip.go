package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/pocketvibe/pocketvibe-backend/internal/application/dto"
	"github.com/pocketvibe/pocketvibe-backend/pkg/env"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

var ErrInvalidAmount = errors.New("tip amount must be positive")

// Tip takes tips through Stripe payment intents. The front-end still speaks
// satoshis, so amounts are converted to USD cents with a configured rate
// before the intent is created.
type Tip struct {
	cfg *TipConfig
}

type TipConfig struct {
	apiKey    string
	usdPerBTC float64
}

func NewTipConfig() *TipConfig {
	rate, err := strconv.ParseFloat(env.GetEnv("USD_PER_BTC", "100000"), 64)
	if err != nil || rate <= 0 {
		rate = 100000
	}
	return &TipConfig{
		apiKey:    env.GetEnv("STRIPE_KEY", ""),
		usdPerBTC: rate,
	}
}

func NewTip(cfg *TipConfig) *Tip {
	stripe.Key = cfg.apiKey
	stripe.SetHTTPClient(&http.Client{Timeout: 10 * time.Second})
	return &Tip{cfg: cfg}
}

func (c *Tip) Execute(ctx context.Context, req dto.GenerateTipRequest) (*dto.GenerateTipResponse, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	btc := req.Amount / 100000000
	cents := int64(math.Round(btc * c.cfg.usdPerBTC * 100))
	if cents < 50 { // Stripe's minimum charge for USD
		cents = 50
	}

	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(cents),
		Currency:    stripe.String(string(stripe.CurrencyUSD)),
		Description: stripe.String("Pocket Vibe Tip"),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx

	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("err creating payment intent, %v", err)
	}

	slog.Info("tip intent created", "intent_id", intent.ID, "cents", cents)
	return &dto.GenerateTipResponse{
		Status:         "success",
		ClientSecret:   intent.ClientSecret,
		ConversionRate: c.cfg.usdPerBTC,
		InvoiceID:      intent.ID,
	}, nil
}

func (c *Tip) Check(ctx context.Context, intentID string) (*dto.CheckTipResponse, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	intent, err := paymentintent.Get(intentID, params)
	if err != nil {
		return nil, fmt.Errorf("err retrieving payment intent, %v", err)
	}

	return &dto.CheckTipResponse{
		Status: "success",
		IsPaid: intent.Status == stripe.PaymentIntentStatusSucceeded,
	}, nil
}
