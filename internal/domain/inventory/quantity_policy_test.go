package inventory_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/inventory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestValidateQuantity(t *testing.T) {
	tests := []struct {
		name     string
		step     string
		quantity string
		want     string
		wantErr  error
	}{
		{"múltiplo exacto fraccionario", "0.01", "2.50", "2.5", nil},
		{"ruido de cliente dentro de tolerancia", "0.01", "2.4999999999", "2.5", nil},
		{"justo en la tolerancia", "0.01", "2.50001", "2.5", nil},
		{"fuera de tolerancia", "0.01", "2.50002", "", domain.ErrInvalidStep},
		{"medio paso", "0.01", "0.015", "", domain.ErrInvalidStep},
		{"menor que el paso", "0.01", "0.004", "", domain.ErrInvalidStep},
		{"entero válido", "1", "3", "3", nil},
		{"entero con decimales", "1", "2.5", "", domain.ErrInvalidStep},
		{"paso de media docena", "0.5", "1.5", "1.5", nil},
		{"cero", "1", "0", "", domain.ErrNonPositiveQuantity},
		{"negativo", "1", "-2", "", domain.ErrNonPositiveQuantity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := inventory.ValidateQuantity(d(tt.step), d(tt.quantity))
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "error %v", err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(d(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestValidateQuantity_InvalidStepExponeElPaso(t *testing.T) {
	_, err := inventory.ValidateQuantity(d("0.01"), d("0.015"))

	var stepErr *domain.InvalidStepError
	require.ErrorAs(t, err, &stepErr)
	assert.True(t, stepErr.Step.Equal(d("0.01")))
	assert.True(t, stepErr.Quantity.Equal(d("0.015")))
}

func TestValidateStep(t *testing.T) {
	assert.NoError(t, inventory.ValidateStep(d("0.01")))
	assert.ErrorIs(t, inventory.ValidateStep(decimal.Zero), domain.ErrInvalidInput)
	assert.ErrorIs(t, inventory.ValidateStep(d("-1")), domain.ErrInvalidInput)

	// El almacenamiento conserva seis decimales: más precisión se rechaza en vez de redondearse.
	assert.NoError(t, inventory.ValidateStep(d("0.000001")))
	assert.NoError(t, inventory.ValidateStep(d("0.0100000000")))
	assert.ErrorIs(t, inventory.ValidateStep(d("0.0000015")), domain.ErrInvalidInput)
	assert.ErrorIs(t, inventory.ValidateStep(d("0.0000001")), domain.ErrInvalidInput)
}

func TestIsMultipleOf(t *testing.T) {
	assert.True(t, inventory.IsMultipleOf(d("0.5"), decimal.Zero))
	assert.True(t, inventory.IsMultipleOf(d("0.5"), d("7.5")))
	assert.False(t, inventory.IsMultipleOf(d("0.5"), d("7.25")))
}

func TestParseUnitYPasoPorDefecto(t *testing.T) {
	u, err := inventory.ParseUnit(" KG ")
	require.NoError(t, err)
	assert.Equal(t, inventory.UnitKg, u)
	assert.True(t, u.Fractional())
	assert.True(t, inventory.DefaultMinQuantity(u).Equal(d("0.01")))

	u, err = inventory.ParseUnit("box")
	require.NoError(t, err)
	assert.False(t, u.Fractional())
	assert.True(t, inventory.DefaultMinQuantity(u).Equal(d("1")))

	_, err = inventory.ParseUnit("barrel")
	assert.ErrorIs(t, err, domain.ErrUnknownUnit)
}
