package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/lepidus/oaswitchboard/hub"
	"github.com/lepidus/oaswitchboard/mapping"
	"github.com/lepidus/oaswitchboard/message"
)

var (
	inputFile  string
	outputFile string
	formatName string
	stripHTML  bool
	pretty     bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build P1-PIO messages from submission snapshots",
	Long: `Build P1-PIO messages and write them as JSON, one message per line.

Submissions lacking mandatory data are reported on stderr and skipped;
the command fails if any submission was rejected.

Input defaults to stdin, output defaults to stdout. The input format is
detected from the file extension or content unless --format is given.

Examples:
  oaswitchboard build -i submission.json
  oaswitchboard build -i fixtures.yaml --profile registry --pretty
  cat submission.json | oaswitchboard build --format ojs -o message.json`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	addInputFlags(buildCmd)
	buildCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	buildCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
}

func addInputFlags(c *cobra.Command) {
	c.Flags().StringVarP(&inputFile, "input", "i", "", "Input file (default: stdin)")
	c.Flags().StringVarP(&formatName, "format", "f", "", "Input format (ojs, fixture; default: detect)")
	c.Flags().BoolVar(&stripHTML, "strip-html", true, "Strip HTML from titles")
}

func runBuild(cmd *cobra.Command, args []string) (err error) {
	profile, err := loadProfile()
	if err != nil {
		return fmt.Errorf("loading profile: %w", err)
	}

	subs, err := readSubmissions(formatName, inputFile, stripHTML)
	if err != nil {
		return err
	}

	var output io.Writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing output file: %w", cerr)
			}
		}()
		output = f
	}

	envs, rejected, err := buildEnvelopes(subs, profile)
	if err != nil {
		return err
	}
	reportRejected(os.Stderr, rejected)

	enc := json.NewEncoder(output)
	if pretty {
		enc.SetIndent("", "  ")
	}
	for _, env := range envs {
		if err := enc.Encode(env); err != nil {
			return fmt.Errorf("writing message: %w", err)
		}
	}

	fmt.Fprintf(os.Stderr, "Built %d of %d messages with profile %s\n", len(envs), len(subs), profile.VersionedName())
	if len(rejected) > 0 {
		return fmt.Errorf("%d submissions rejected: %w", len(rejected), message.ErrIncompleteData)
	}
	return nil
}

// buildEnvelopes builds a message for every submission, collecting the
// rejections. Any other construction error stops the build.
func buildEnvelopes(subs []*hub.Submission, p *mapping.Profile) ([]*message.Envelope, []*message.IncompleteDataError, error) {
	var envs []*message.Envelope
	var rejected []*message.IncompleteDataError
	for i, s := range subs {
		env, err := message.New(s, p)
		var incomplete *message.IncompleteDataError
		switch {
		case errors.As(err, &incomplete):
			rejected = append(rejected, incomplete)
		case err != nil:
			return nil, nil, fmt.Errorf("building message %d: %w", i+1, err)
		default:
			envs = append(envs, env)
		}
	}
	return envs, rejected, nil
}

func reportRejected(w io.Writer, rejected []*message.IncompleteDataError) {
	for _, r := range rejected {
		fmt.Fprintf(w, "✗ Submission %d lacks mandatory data:\n", r.SubmissionID)
		for _, d := range r.Diagnostics {
			fmt.Fprintf(w, "    %s\n", d)
		}
	}
}
