package payments

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMercadoPagoCheckoutGateway_RequiresToken(t *testing.T) {
	_, err := NewMercadoPagoCheckoutGateway("", false, nil)
	assert.ErrorIs(t, err, ErrMissingMercadoPagoAccessToken)
}

func TestMercadoPagoCheckoutGateway_Mock(t *testing.T) {
	g, err := NewMercadoPagoCheckoutGateway("", true, nil)
	require.NoError(t, err)

	link, err := g.CreateCheckoutLink(context.Background(), "r 1", "Servicio HE000001", decimal.NewFromInt(1000))
	require.NoError(t, err)
	assert.Equal(t, "https://mock.mercadopago.local/checkout/r%201", link)
}

func TestMercadoPagoCheckoutGateway_RejectsNonPositive(t *testing.T) {
	g, err := NewMercadoPagoCheckoutGateway("", true, nil)
	require.NoError(t, err)

	_, err = g.CreateCheckoutLink(context.Background(), "r1", "x", decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidCheckoutAmount)
}

func TestMercadoPagoCheckoutGateway_NotConfigured(t *testing.T) {
	var g *MercadoPagoCheckoutGateway
	_, err := g.CreateCheckoutLink(context.Background(), "r1", "x", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, ErrMercadoPagoGatewayNotConfigured)
}

func TestBuildPreference(t *testing.T) {
	p := buildPreference("r1", "Servicio HE000001", decimal.RequireFromString("1250.50"))

	assert.Equal(t, "r1", p.ExternalReference)
	require.Len(t, p.Items, 1)
	assert.Equal(t, 1, p.Items[0].Quantity)
	assert.Equal(t, "COP", p.Items[0].CurrencyID)
	assert.InDelta(t, 1250.50, p.Items[0].UnitPrice, 0.001)
}
