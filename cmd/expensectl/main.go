package main

import (
	"os"

	"expense-manager/internal/cli"

	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
)

var version = "dev"

func main() {
	decimal.MarshalJSONWithoutQuotes = true

	if err := cli.NewApp(version).Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
