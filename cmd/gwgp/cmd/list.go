package cmd

import (
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/kotrzina/gas-wizard/pkg/gwgp"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Prints predictions of all cities.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		snapshot, err := scrape(cmd.Context())
		if err != nil {
			return err
		}

		renderTable(os.Stdout, snapshot)
		return nil
	},
}

func renderTable(out io.Writer, snapshot *gwgp.Snapshot) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetTitle(snapshot.DateInfo())
	t.AppendHeader(table.Row{"City", "Regular", "Δ", "Premium", "Δ", "Diesel", "Δ"})

	for _, city := range snapshot.Cities() {
		oil, _ := snapshot.Lookup(city)
		t.AppendRow(table.Row{
			city,
			oil.Regular.Value, oil.Regular.Change,
			oil.Premium.Value, oil.Premium.Change,
			oil.Diesel.Value, oil.Diesel.Change,
		})
	}

	t.AppendFooter(table.Row{"Cities", snapshot.Len()})
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	t.Render()
}
