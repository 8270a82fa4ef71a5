package cli

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Columnas esperadas del CSV de carga inicial (en cualquier orden).
const (
	colProductID    = "product_id"
	colUnit         = "unit"
	colMinQuantity  = "min_quantity"
	colInitialStock = "initial_stock"
)

// SeedOptions formato del archivo de carga.
type SeedOptions struct {
	Delimiter rune   // ',' por defecto
	Encoding  string // utf-8 (defecto) | latin1
}

// ParseSeedCSV lee el CSV de alta de productos. La primera fila es el encabezado;
// min_quantity e initial_stock son opcionales.
func ParseSeedCSV(r io.Reader, opts SeedOptions) ([]dto.RegisterProductRequest, error) {
	switch strings.ToLower(opts.Encoding) {
	case "", "utf-8", "utf8":
	case "latin1", "iso-8859-1", "iso8859-1":
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	default:
		return nil, fmt.Errorf("codificación no soportada: %s", opts.Encoding)
	}

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("archivo vacío")
		}
		return nil, fmt.Errorf("leer encabezado: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, required := range []string{colProductID, colUnit} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("falta la columna %s", required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var out []dto.RegisterProductRequest
	line := 1
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		req := dto.RegisterProductRequest{
			ProductID:    field(row, colProductID),
			Unit:         field(row, colUnit),
			InitialStock: decimal.Zero,
		}
		if req.ProductID == "" {
			return nil, fmt.Errorf("línea %d: product_id vacío", line)
		}
		if s := field(row, colMinQuantity); s != "" {
			d, err := parseDecimal(s)
			if err != nil {
				return nil, fmt.Errorf("línea %d: min_quantity: %w", line, err)
			}
			req.MinQuantity = &d
		}
		if s := field(row, colInitialStock); s != "" {
			d, err := parseDecimal(s)
			if err != nil {
				return nil, fmt.Errorf("línea %d: initial_stock: %w", line, err)
			}
			req.InitialStock = d
		}
		out = append(out, req)
	}
	return out, nil
}

// parseDecimal acepta coma decimal ("2,50") además de punto.
func parseDecimal(s string) (decimal.Decimal, error) {
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	return decimal.NewFromString(s)
}
