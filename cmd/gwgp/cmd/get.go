package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kotrzina/gas-wizard/pkg/gwgp"
	"github.com/kotrzina/gas-wizard/pkg/hook"
)

var errNotFound = errors.New(hook.NotFoundReply)

func init() {
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <city>",
	Short: "Prints predictions of one city.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snapshot, err := scrape(cmd.Context())
		if err != nil {
			return err
		}

		return printCity(os.Stdout, snapshot, strings.Join(args, " "))
	},
}

func printCity(out io.Writer, snapshot *gwgp.Snapshot, city string) error {
	oil, found := snapshot.Lookup(city)
	if !found {
		return errNotFound
	}

	_, err := fmt.Fprintf(out, "%s\n%s\n", snapshot.DateInfo(), oil.String())
	return err
}
