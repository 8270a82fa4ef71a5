package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain"
)

func TestRegister_ConStockInicial(t *testing.T) {
	f := newFixture(t)
	rec := f.register(t, "HARINA", "KG", "5.00")

	assert.Equal(t, "kg", rec.Unit)
	assert.True(t, rec.MinQuantity.Equal(d("0.01")))
	assert.True(t, rec.Stock.Equal(d("5")))
	assert.Equal(t, int64(1), rec.Version)

	entries := f.entries(t, "HARINA")
	require.Len(t, entries, 1)
	assert.Equal(t, "initial", entries[0].Cause)
	assert.True(t, entries[0].PreviousStock.IsZero())
	assert.True(t, entries[0].NewStock.Equal(d("5")))
}

func TestRegister_SinStockInicialNoEscribeMovimientos(t *testing.T) {
	f := newFixture(t)
	rec := f.register(t, "CAJA", "box", "0")

	assert.True(t, rec.Stock.IsZero())
	assert.Empty(t, f.entries(t, "CAJA"))
}

func TestRegister_PasoExplicito(t *testing.T) {
	f := newFixture(t)
	step := d("0.5")
	rec, err := f.products.Register(context.Background(), inventory.RegisterProductInput{
		ProductID:    "QUESO",
		Unit:         "kg",
		MinQuantity:  &step,
		InitialStock: d("3.5"),
		ActorID:      testActor,
	})
	require.NoError(t, err)
	assert.True(t, rec.MinQuantity.Equal(step))

	_, err = f.adjust.Apply(context.Background(), adjustment("QUESO", "sale", "0.25"))
	assert.ErrorIs(t, err, domain.ErrInvalidStep)
}

func TestRegister_Errores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "CAJA", "box", "1")

	_, err := f.products.Register(ctx, inventory.RegisterProductInput{ProductID: "CAJA", Unit: "box", ActorID: testActor})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = f.products.Register(ctx, inventory.RegisterProductInput{ProductID: "X", Unit: "barrel", ActorID: testActor})
	assert.ErrorIs(t, err, domain.ErrUnknownUnit)

	_, err = f.products.Register(ctx, inventory.RegisterProductInput{ProductID: "X", Unit: "box", InitialStock: d("-1"), ActorID: testActor})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	zero := d("0")
	_, err = f.products.Register(ctx, inventory.RegisterProductInput{ProductID: "X", Unit: "box", MinQuantity: &zero, ActorID: testActor})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.products.Register(ctx, inventory.RegisterProductInput{ProductID: "", Unit: "box", ActorID: testActor})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	fine := d("0.0000015")
	_, err = f.products.Register(ctx, inventory.RegisterProductInput{ProductID: "X", Unit: "gram", MinQuantity: &fine, ActorID: testActor})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	rec, err := f.products.Get(ctx, "X")
	assert.Nil(t, rec)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestRegister_StockInicialInvalidoNoCreaElRegistro(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.products.Register(ctx, inventory.RegisterProductInput{
		ProductID:    "HARINA",
		Unit:         "kg",
		InitialStock: d("0.015"),
		ActorID:      testActor,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStep)

	_, err = f.products.Get(ctx, "HARINA")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestList_Paginado(t *testing.T) {
	f := newFixture(t)
	for _, id := range []string{"C", "A", "B"} {
		f.register(t, id, "piece", "1")
	}

	list, total, err := f.products.List(context.Background(), 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, list, 2)
	assert.Equal(t, "A", list[0].ProductID)
	assert.Equal(t, "B", list[1].ProductID)

	list, _, err = f.products.List(context.Background(), 2, 2)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "C", list[0].ProductID)
}

func TestUpdatePolicy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "HARINA", "kg", "7.5")

	whole := d("1")
	_, err := f.products.UpdatePolicy(ctx, inventory.UpdatePolicyInput{ProductID: "HARINA", Unit: "kg", MinQuantity: &whole})
	var stepErr *domain.InvalidStepError
	require.ErrorAs(t, err, &stepErr, "7.5 no es múltiplo de 1")

	half := d("0.5")
	rec, err := f.products.UpdatePolicy(ctx, inventory.UpdatePolicyInput{ProductID: "HARINA", Unit: "kg", MinQuantity: &half})
	require.NoError(t, err)
	assert.True(t, rec.MinQuantity.Equal(half))

	_, err = f.adjust.Apply(ctx, adjustment("HARINA", "sale", "0.25"))
	assert.ErrorIs(t, err, domain.ErrInvalidStep)
	_, err = f.adjust.Apply(ctx, adjustment("HARINA", "sale", "2.5"))
	require.NoError(t, err)

	entries := f.entries(t, "HARINA")
	require.Len(t, entries, 2)
	assert.True(t, entries[0].MinQuantity.Equal(d("0.01")), "el movimiento inicial conserva su paso")
	assert.True(t, entries[1].MinQuantity.Equal(half))

	_, err = f.products.UpdatePolicy(ctx, inventory.UpdatePolicyInput{ProductID: "NO", Unit: "kg"})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
