package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/frota/pkg/tabview"
)

func TestCurrency(t *testing.T) {
	assert.Equal(t, "R$ 2.550,00", Currency(tabview.Number(2550), nil))
	assert.Equal(t, "R$ 850,00", Currency(tabview.Number(850), nil))
	assert.Equal(t, "-", Currency(tabview.String("-"), nil))
	assert.Equal(t, "", Currency(tabview.Null(), nil))
}

func TestDate(t *testing.T) {
	assert.Equal(t, "15/12/2024", Date(tabview.String("2024-12-15"), nil))
	assert.Equal(t, "-", Date(tabview.String("-"), nil))
	assert.Equal(t, "3", Date(tabview.Number(3), nil))
}

func TestStatus(t *testing.T) {
	assert.Equal(t, "● Pago", Status(tabview.String("Pago"), nil))
	assert.Equal(t, "○ Pendente", Status(tabview.String("Pendente"), nil))
	assert.Equal(t, "● Disponível", Status(tabview.String("Disponível"), nil))
	assert.Equal(t, "", Status(tabview.Null(), nil))
}

func TestPaymentActions(t *testing.T) {
	paid := tabview.Row{"status": tabview.String("Pago")}
	pending := tabview.Row{"status": tabview.String("Pendente")}
	assert.Equal(t, "Ver | PDF", PaymentActions(tabview.Null(), paid))
	assert.Equal(t, "Ver", PaymentActions(tabview.Null(), pending))
}

func TestByName(t *testing.T) {
	r, err := ByName("")
	require.NoError(t, err)
	assert.Nil(t, r)

	r, err = ByName(" Currency ")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, "R$ 1,50", r(tabview.Number(1.5), nil))

	_, err = ByName("sparkline")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "currency")
}
