package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lepidus/oaswitchboard/hub"
	"github.com/lepidus/oaswitchboard/message"
)

var validateVerbose bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check submissions without building messages",
	Long: `Parse submission snapshots and report, for each one, whether a P1-PIO
message can be built under the selected profile.

Missing mandatory data is an error. Malformed but present values, such
as a DOI with a resolver prefix or an unknown license, are warnings.

Input defaults to stdin.

Examples:
  oaswitchboard validate -i submission.json
  oaswitchboard validate -i fixtures.yaml --profile registry --verbose
  cat submission.json | oaswitchboard validate --format ojs`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	addInputFlags(validateCmd)
	validateCmd.Flags().BoolVarP(&validateVerbose, "verbose", "v", false, "Show detailed information")
}

func runValidate(cmd *cobra.Command, args []string) error {
	profile, err := loadProfile()
	if err != nil {
		return fmt.Errorf("loading profile: %w", err)
	}

	subs, err := readSubmissions(formatName, inputFile, stripHTML)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	envs, rejected, err := buildEnvelopes(subs, profile)
	if err != nil {
		return err
	}
	reportRejected(out, rejected)

	warnings := 0
	for _, s := range subs {
		found := hub.Check(s)
		warnings += len(found)
		if len(found) > 0 {
			fmt.Fprintf(out, "! Submission %d warnings:\n", s.ID)
			for _, w := range found {
				fmt.Fprintf(out, "    %s [%s]\n", w, w.Code)
			}
		}
	}

	if validateVerbose {
		for _, env := range envs {
			article := env.Article()
			fmt.Fprintf(out, "\n  Submission %d:\n", env.SubmissionID())
			fmt.Fprintf(out, "    Title: %s\n", truncate(article.Title, 60))
			fmt.Fprintf(out, "    DOI: %s\n", article.DOI)
			fmt.Fprintf(out, "    License: %s\n", article.VOR.License)
			fmt.Fprintf(out, "    Authors: %d\n", len(env.Authors()))
			fmt.Fprintf(out, "    Journal ID: %s\n", env.Journal().ID)
			if r := env.Recipient(); r != "" {
				fmt.Fprintf(out, "    Recipient: %s\n", r)
			}
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "Checked %d submissions with profile %s: %d valid, %d rejected, %d warnings\n",
		len(subs), profile.VersionedName(), len(envs), len(rejected), warnings)

	if len(rejected) > 0 {
		return fmt.Errorf("%d submissions rejected: %w", len(rejected), message.ErrIncompleteData)
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
