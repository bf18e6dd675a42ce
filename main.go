// Package main provides the entry point for the txengine CLI application.
package main

import (
	"os"

	"finsignal/txengine/cmd/confirm"
	"finsignal/txengine/cmd/extract"
	"finsignal/txengine/cmd/reconcile"
	"finsignal/txengine/cmd/root"
	"finsignal/txengine/cmd/statement"
	"finsignal/txengine/cmd/sweep"
)

func main() {
	root.Cmd.AddCommand(extract.Cmd)
	root.Cmd.AddCommand(statement.Cmd)
	root.Cmd.AddCommand(reconcile.Cmd)
	root.Cmd.AddCommand(sweep.Cmd)
	root.Cmd.AddCommand(confirm.Cmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
