package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/stock-ledger/internal/domain"
	inv "github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// AuditIssue inconsistencia encontrada al recorrer el libro.
type AuditIssue struct {
	EntryID string
	Message string
}

// VerificationReport resultado de reproducir el libro de un producto.
type VerificationReport struct {
	ProductID   string
	Entries     int
	Stock       decimal.Decimal // stock actual del registro
	LedgerStock decimal.Decimal // NewStock del último movimiento (0 si no hay)
	Consistent  bool
	Issues      []AuditIssue
}

// AuditUseCase verifica que el stock sea reproducible desde el libro.
type AuditUseCase struct {
	stockRepo repository.StockRepository
	entryRepo repository.LedgerEntryRepository
}

// NewAuditUseCase construye el caso de uso.
func NewAuditUseCase(stockRepo repository.StockRepository, entryRepo repository.LedgerEntryRepository) *AuditUseCase {
	return &AuditUseCase{stockRepo: stockRepo, entryRepo: entryRepo}
}

// Verify recorre los movimientos en orden cronológico y comprueba el invariante de cada uno,
// la continuidad de la cadena, el paso registrado y que el stock actual sea el último NewStock.
func (uc *AuditUseCase) Verify(ctx context.Context, productID string) (*VerificationReport, error) {
	productID = strings.TrimSpace(productID)
	rec, err := uc.stockRepo.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrProductNotFound
	}
	entries, err := uc.entryRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	report := &VerificationReport{
		ProductID:   productID,
		Entries:     len(entries),
		Stock:       rec.Stock,
		LedgerStock: decimal.Zero,
	}
	running := decimal.Zero
	for _, e := range entries {
		if err := e.CheckInvariant(); err != nil {
			report.Issues = append(report.Issues, AuditIssue{EntryID: e.ID, Message: err.Error()})
		}
		if !e.PreviousStock.Equal(running) {
			report.Issues = append(report.Issues, AuditIssue{
				EntryID: e.ID,
				Message: fmt.Sprintf("cadena rota: previo %s, esperado %s", e.PreviousStock, running),
			})
		}
		if !inv.IsMultipleOf(e.MinQuantity, e.Quantity()) {
			report.Issues = append(report.Issues, AuditIssue{
				EntryID: e.ID,
				Message: fmt.Sprintf("cantidad %s no es múltiplo del paso %s", e.Quantity(), e.MinQuantity),
			})
		}
		running = e.NewStock
	}
	report.LedgerStock = running
	if !rec.Stock.Equal(running) {
		report.Issues = append(report.Issues, AuditIssue{
			Message: fmt.Sprintf("stock %s difiere del libro %s", rec.Stock, running),
		})
	}
	report.Consistent = len(report.Issues) == 0
	return report, nil
}
