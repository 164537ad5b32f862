// Command autojournal works with auto-journal patterns outside the HTTP API:
// evaluating formulas, checking pattern files and importing them into the ledger.
// It also issues API tokens for operators.
package main

import (
	"github.com/alecthomas/kong"
)

var cli struct {
	Eval    EvalCmd    `cmd:"" help:"Evaluate one amount formula."`
	Check   CheckCmd   `cmd:"" help:"Validate pattern files and list the parameters each pattern reads."`
	Preview PreviewCmd `cmd:"" help:"Generate a journal entry from a pattern file without storing it."`
	Import  ImportCmd  `cmd:"" help:"Register the patterns of a file with the ledger database."`
	Token   TokenCmd   `cmd:"" help:"Issue a bearer token for the API using the configured secret."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("autojournal"),
		kong.Description("Auto-journal pattern tooling."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run())
}
