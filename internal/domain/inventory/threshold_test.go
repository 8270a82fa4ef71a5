package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/inventory"
)

func TestClassify_Bandas(t *testing.T) {
	low, critical := d("10"), d("3")
	tests := []struct {
		stock string
		want  inventory.StockStatus
	}{
		{"0", inventory.StatusOutOfStock},
		{"0.01", inventory.StatusCritical},
		{"3", inventory.StatusCritical},
		{"3.01", inventory.StatusLow},
		{"10", inventory.StatusLow},
		{"10.01", inventory.StatusHealthy},
		{"250", inventory.StatusHealthy},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, inventory.Classify(d(tt.stock), low, critical), "stock %s", tt.stock)
	}
}

func TestClassify_UmbralesIguales(t *testing.T) {
	assert.Equal(t, inventory.StatusCritical, inventory.Classify(d("5"), d("5"), d("5")))
	assert.Equal(t, inventory.StatusHealthy, inventory.Classify(d("6"), d("5"), d("5")))
}

func TestValidateThresholds(t *testing.T) {
	assert.NoError(t, inventory.ValidateThresholds(d("10"), d("3")))
	assert.NoError(t, inventory.ValidateThresholds(d("0"), d("0")))
	assert.ErrorIs(t, inventory.ValidateThresholds(d("3"), d("10")), domain.ErrInvalidThresholds)
	assert.ErrorIs(t, inventory.ValidateThresholds(d("10"), d("-1")), domain.ErrInvalidThresholds)
}
