// Package cli herramienta de operación del libro de stock (ledgerctl).
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jhoicas/stock-ledger/internal/app"
	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-ledger/pkg/config"
	"github.com/jhoicas/stock-ledger/pkg/logger"
	"github.com/spf13/cobra"
)

// Options dependencias del comando raíz. Los campos nil usan los valores de producción.
type Options struct {
	Out   io.Writer
	Load  func() (*config.Config, error)
	Build func(ctx context.Context, cfg *config.Config, log *logger.Logger) (*app.Container, error)
}

type runtime struct {
	cfg       *config.Config
	log       *logger.Logger
	container *app.Container
	out       io.Writer
}

// NewRootCmd construye ledgerctl con sus subcomandos.
func NewRootCmd(opts Options) *cobra.Command {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Load == nil {
		opts.Load = config.Load
	}
	if opts.Build == nil {
		opts.Build = app.Build
	}
	rt := &runtime{out: opts.Out}

	var storage, logLevel string
	root := &cobra.Command{
		Use:           "ledgerctl",
		Short:         "Operación del libro de stock: migraciones, carga inicial y auditoría",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.Load()
			if err != nil {
				return err
			}
			if storage != "" {
				cfg.Storage = strings.ToLower(storage)
			}
			if logLevel != "" {
				cfg.App.LogLevel = logLevel
			}
			rt.cfg = cfg
			rt.log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
			rt.container, err = opts.Build(cmd.Context(), cfg, rt.log)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if rt.container != nil {
				rt.container.Close()
			}
		},
	}
	root.SetOut(opts.Out)
	root.PersistentFlags().StringVar(&storage, "storage", "", "almacenamiento: postgres|memory (por defecto STORAGE_DRIVER)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "nivel de log")

	root.AddCommand(
		newMigrateCmd(rt),
		newSeedCmd(rt),
		newVerifyCmd(rt),
		newHistoryCmd(rt),
	)
	return root
}

func newMigrateCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones pendientes de PostgreSQL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rt.container.Pool == nil {
				return errors.New("migrate requiere STORAGE_DRIVER=postgres")
			}
			applied, err := postgres.Migrate(cmd.Context(), rt.container.Pool)
			if err != nil {
				return err
			}
			for _, name := range applied {
				fmt.Fprintf(rt.out, "aplicada %s\n", name)
			}
			if len(applied) == 0 {
				fmt.Fprintln(rt.out, "sin migraciones pendientes")
			}
			return nil
		},
	}
}

func newSeedCmd(rt *runtime) *cobra.Command {
	var delimiter, encoding, actor string
	cmd := &cobra.Command{
		Use:   "seed <archivo.csv>",
		Short: "Registra productos y stock inicial desde un CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			opts := SeedOptions{Encoding: encoding}
			if delimiter != "" {
				opts.Delimiter = []rune(delimiter)[0]
			}
			reqs, err := ParseSeedCSV(f, opts)
			if err != nil {
				return err
			}

			created, skipped := 0, 0
			for _, req := range reqs {
				rec, err := rt.container.Products.RegisterFromRequest(cmd.Context(), actor, req)
				if errors.Is(err, domain.ErrDuplicate) {
					skipped++
					rt.log.Warn().Str("product_id", req.ProductID).Msg("producto ya registrado, se omite")
					continue
				}
				if err != nil {
					return fmt.Errorf("%s: %w", req.ProductID, err)
				}
				created++
				rt.log.Info().Str("product_id", rec.ProductID).Str("stock", rec.Stock.String()).Msg("producto registrado")
			}
			fmt.Fprintf(rt.out, "registrados %d, omitidos %d\n", created, skipped)
			return nil
		},
	}
	cmd.Flags().StringVar(&delimiter, "delimiter", ",", "separador de columnas")
	cmd.Flags().StringVar(&encoding, "encoding", "utf-8", "codificación del archivo: utf-8|latin1")
	cmd.Flags().StringVar(&actor, "actor", "ledgerctl", "actor registrado en los movimientos")
	return cmd
}

func newVerifyCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <productID>",
		Short: "Reproduce el libro de un producto y lo compara con su stock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := rt.container.Audit.Verify(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			issues := make([]dto.AuditIssueDTO, 0, len(report.Issues))
			for _, is := range report.Issues {
				issues = append(issues, dto.AuditIssueDTO{EntryID: is.EntryID, Message: is.Message})
			}
			if err := writeJSON(rt.out, dto.VerificationResponse{
				ProductID:   report.ProductID,
				Entries:     report.Entries,
				Stock:       report.Stock,
				LedgerStock: report.LedgerStock,
				Consistent:  report.Consistent,
				Issues:      issues,
			}); err != nil {
				return err
			}
			if !report.Consistent {
				return fmt.Errorf("libro inconsistente para %s", report.ProductID)
			}
			return nil
		},
	}
}

func newHistoryCmd(rt *runtime) *cobra.Command {
	var (
		q      inventory.HistoryQuery
		causes []string
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Consulta el historial de movimientos (JSON)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q.Causes = causes
			page, err := rt.container.History.Query(cmd.Context(), q)
			if err != nil {
				return err
			}
			return writeJSON(rt.out, dto.HistoryResponse{
				Entries:    dto.FromLedgerEntries(page.Entries),
				TotalCount: page.TotalCount,
				TotalPages: page.TotalPages,
				Page:       page.Page,
				PageSize:   page.PageSize,
			})
		},
	}
	cmd.Flags().StringVar(&q.ProductID, "product", "", "producto")
	cmd.Flags().StringSliceVar(&causes, "cause", nil, "causas (repetible o separadas por coma)")
	cmd.Flags().StringVar(&q.Reference, "reference", "", "referencia externa")
	cmd.Flags().StringVar(&q.SortField, "sort", "", "timestamp|quantity|product_id|cause")
	cmd.Flags().StringVar(&q.SortOrder, "order", "", "asc|desc")
	cmd.Flags().IntVar(&q.Page, "page", 1, "página")
	cmd.Flags().IntVar(&q.PageSize, "page-size", inventory.DefaultPageSize, "tamaño de página")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
