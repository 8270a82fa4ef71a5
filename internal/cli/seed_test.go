package cli_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/cli"
)

func TestParseSeedCSV_UTF8(t *testing.T) {
	in := "\ufeffproduct_id,unit,initial_stock\nHARINA,kg,12.50\nHUEVOS,dozen,\n"
	reqs, err := cli.ParseSeedCSV(strings.NewReader(in), cli.SeedOptions{})
	require.NoError(t, err)
	require.Len(t, reqs, 2)

	assert.Equal(t, "HARINA", reqs[0].ProductID)
	assert.Equal(t, "kg", reqs[0].Unit)
	assert.True(t, reqs[0].InitialStock.Equal(decimal.RequireFromString("12.5")))
	assert.Nil(t, reqs[0].MinQuantity)

	assert.Equal(t, "HUEVOS", reqs[1].ProductID)
	assert.True(t, reqs[1].InitialStock.IsZero())
}

func TestParseSeedCSV_Latin1ConPuntoYComa(t *testing.T) {
	// "PIÑA" en ISO-8859-1: Ñ = 0xD1.
	in := "product_id;unit;min_quantity;initial_stock\nPI\xd1A;kg;0,5;2,50\n"
	reqs, err := cli.ParseSeedCSV(strings.NewReader(in), cli.SeedOptions{Delimiter: ';', Encoding: "latin1"})
	require.NoError(t, err)
	require.Len(t, reqs, 1)

	assert.Equal(t, "PIÑA", reqs[0].ProductID)
	require.NotNil(t, reqs[0].MinQuantity)
	assert.True(t, reqs[0].MinQuantity.Equal(decimal.RequireFromString("0.5")))
	assert.True(t, reqs[0].InitialStock.Equal(decimal.RequireFromString("2.5")))
}

func TestParseSeedCSV_Errores(t *testing.T) {
	cases := []struct {
		name string
		in   string
		opts cli.SeedOptions
		want string
	}{
		{"vacío", "", cli.SeedOptions{}, "archivo vacío"},
		{"sin unidad", "product_id,initial_stock\nA,1\n", cli.SeedOptions{}, "falta la columna unit"},
		{"número inválido", "product_id,unit,initial_stock\nA,kg,1\nB,kg,abc\n", cli.SeedOptions{}, "línea 3: initial_stock"},
		{"producto vacío", "product_id,unit\n,kg\n", cli.SeedOptions{}, "línea 2: product_id vacío"},
		{"codificación", "product_id,unit\nA,kg\n", cli.SeedOptions{Encoding: "ebcdic"}, "codificación no soportada"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := cli.ParseSeedCSV(strings.NewReader(tc.in), tc.opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
