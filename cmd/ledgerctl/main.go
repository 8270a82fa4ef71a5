// ledgerctl aplica migraciones, carga el stock inicial y audita el libro.
//
// Uso:
//
//	go run ./cmd/ledgerctl migrate
//	go run ./cmd/ledgerctl seed productos.csv --encoding latin1 --delimiter ';'
//	go run ./cmd/ledgerctl verify SKU-001
//	go run ./cmd/ledgerctl history --product SKU-001 --cause sale,damaged
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/stock-ledger/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCmd(cli.Options{}).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
