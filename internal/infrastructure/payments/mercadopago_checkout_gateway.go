package payments

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"transporte_xpto/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	currencyID   = "COP"
	mockCheckout = "https://mock.mercadopago.local/checkout/"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")
var ErrInvalidCheckoutAmount = errors.New("checkout amount must be positive")

// MercadoPagoCheckoutGateway creates hosted checkout preferences for
// invoiced requests. In mock mode no call leaves the process.
type MercadoPagoCheckoutGateway struct {
	client   preference.Client
	mockMode bool
	logger   *zap.Logger
}

var _ interfaces.ICheckoutGateway = (*MercadoPagoCheckoutGateway)(nil)

func NewMercadoPagoCheckoutGateway(accessToken string, mock bool, logger *zap.Logger) (*MercadoPagoCheckoutGateway, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("payments.mercadopago")

	if mock {
		logger.Info("mock mode enabled")
		return &MercadoPagoCheckoutGateway{mockMode: true, logger: logger}, nil
	}
	if accessToken == "" {
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercado pago sdk config: %w", err)
	}
	logger.Info("mercado pago client initialized")
	return &MercadoPagoCheckoutGateway{client: preference.NewClient(cfg), logger: logger}, nil
}

// CreateCheckoutLink returns the init point of a one-item preference whose
// external reference is the request id.
func (g *MercadoPagoCheckoutGateway) CreateCheckoutLink(ctx context.Context, reference, title string, amount decimal.Decimal) (string, error) {
	if !amount.IsPositive() {
		return "", ErrInvalidCheckoutAmount
	}
	if g != nil && g.mockMode {
		link := mockCheckout + url.PathEscape(reference)
		g.logger.Info("mock checkout created", zap.String("reference", reference), zap.String("amount", amount.String()))
		return link, nil
	}
	if g == nil || g.client == nil {
		return "", ErrMercadoPagoGatewayNotConfigured
	}

	resp, err := g.client.Create(ctx, buildPreference(reference, title, amount))
	if err != nil {
		g.logger.Error("preference create failed", zap.String("reference", reference), zap.Error(err))
		return "", err
	}
	g.logger.Info("preference created",
		zap.String("reference", reference),
		zap.String("preference_id", resp.ID))
	return resp.InitPoint, nil
}

func buildPreference(reference, title string, amount decimal.Decimal) preference.Request {
	return preference.Request{
		ExternalReference: reference,
		Items: []preference.ItemRequest{{
			ID:         reference,
			Title:      title,
			Quantity:   1,
			CurrencyID: currencyID,
			UnitPrice:  amount.InexactFloat64(),
		}},
	}
}
