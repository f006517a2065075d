package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/lepidus/oaswitchboard/ledger"
)

var (
	ledgerSubmission int64
	ledgerLimit      int
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Inspect the send ledger",
	Long:  `The ledger records every send attempt so that sent submissions are not sent twice.`,
}

var ledgerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded send attempts, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		db, err := ledger.Open(cfg.LedgerPath)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := db.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing ledger: %w", cerr)
			}
		}()

		entries, err := db.List(cmd.Context(), ledgerSubmission, ledgerLimit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No attempts recorded")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TIME\tSUBMISSION\tPROFILE\tSTATUS\tHTTP\tRECIPIENT\tERROR")
		for _, e := range entries {
			httpStatus := "-"
			if e.HTTPStatus != 0 {
				httpStatus = fmt.Sprint(e.HTTPStatus)
			}
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
				e.CreatedAt.Local().Format(time.DateTime),
				e.SubmissionID, e.Profile, e.Status, httpStatus, e.Recipient, truncate(e.Error, 60))
		}
		return w.Flush()
	},
}

func init() {
	ledgerCmd.AddCommand(ledgerListCmd)

	ledgerListCmd.Flags().Int64Var(&ledgerSubmission, "submission", 0, "Only list attempts for this submission")
	ledgerListCmd.Flags().IntVarP(&ledgerLimit, "limit", "n", 20, "Maximum attempts to list (0 for all)")
}
