package main

import (
	"os"

	"github.com/evento-nomina/payroll-system/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
