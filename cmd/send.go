package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sethgrid/pester"
	"github.com/spf13/cobra"

	"github.com/lepidus/oaswitchboard/ledger"
	"github.com/lepidus/oaswitchboard/mapping"
	"github.com/lepidus/oaswitchboard/message"
	"github.com/lepidus/oaswitchboard/settings"
	"github.com/lepidus/oaswitchboard/switchboard"
)

var (
	sendForce  bool
	sendDryRun bool
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send P1-PIO messages to the OA Switchboard",
	Long: `Build a P1-PIO message for every submission and send it to the OA
Switchboard.

Every submission is validated before any request is made; the command
stops without sending anything if one is rejected. Each attempt is
recorded in the send ledger, and submissions the ledger already lists
as sent are skipped unless --force is given.

Credentials come from the settings file or OASB_EMAIL and OASB_PASSWORD.

Examples:
  oaswitchboard send -i submission.json
  oaswitchboard send -i submissions.yaml --profile registry --dry-run
  OASB_BASE_URL=https://api.oaswitchboard.org/v2/ oaswitchboard send -i submission.json`,
	Args: cobra.NoArgs,
	RunE: runSend,
}

func init() {
	addInputFlags(sendCmd)
	sendCmd.Flags().BoolVar(&sendForce, "force", false, "Send even when the ledger lists the submission as sent")
	sendCmd.Flags().BoolVar(&sendDryRun, "dry-run", false, "Validate and authorize, but send nothing")
}

func runSend(cmd *cobra.Command, args []string) (err error) {
	ctx := cmd.Context()

	profile, err := loadProfile()
	if err != nil {
		return fmt.Errorf("loading profile: %w", err)
	}

	subs, err := readSubmissions(formatName, inputFile, stripHTML)
	if err != nil {
		return err
	}

	db, err := ledger.Open(cfg.LedgerPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing ledger: %w", cerr)
		}
	}()

	envs, rejected, err := buildEnvelopes(subs, profile)
	if err != nil {
		return err
	}
	if len(rejected) > 0 {
		reportRejected(cmd.ErrOrStderr(), rejected)
		for _, r := range rejected {
			recordAttempt(ctx, db, ledger.Entry{
				SubmissionID: r.SubmissionID,
				Profile:      profile.VersionedName(),
				Status:       ledger.StatusRejected,
				Error:        r.Error(),
			})
		}
		return fmt.Errorf("%d submissions rejected, nothing sent: %w", len(rejected), message.ErrIncompleteData)
	}

	pending, err := unsent(ctx, db, envs)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to send")
		return nil
	}

	if !cfg.HasCredentials() {
		return fmt.Errorf("%w: set email and password in %s or %sEMAIL and %sPASSWORD",
			switchboard.ErrMissingCredentials, settings.ConfigFile, settings.EnvPrefix, settings.EnvPrefix)
	}

	client := newSwitchboardClient(cfg)
	token, err := client.Authorize(ctx, cfg.Email, cfg.Password)
	if err != nil {
		return authorizeError(err)
	}

	failed := 0
	for _, env := range pending {
		if sendDryRun {
			fmt.Fprintf(cmd.OutOrStdout(), "- Submission %d would be sent to %q\n", env.SubmissionID(), env.Recipient())
			continue
		}
		if !sendOne(ctx, cmd, client, db, env, token, profile) {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d messages failed", failed, len(pending))
	}
	return nil
}

// authorizeError tells refused credentials apart from an unreachable API.
func authorizeError(err error) error {
	if switchboard.IsAuthError(err) {
		return fmt.Errorf("authorization refused, check the configured email and password: %w", err)
	}
	return fmt.Errorf("authorizing: %w", err)
}

// unsent drops envelopes the ledger already lists as sent, unless forced.
func unsent(ctx context.Context, db *ledger.DB, envs []*message.Envelope) ([]*message.Envelope, error) {
	if sendForce {
		return envs, nil
	}
	var pending []*message.Envelope
	for _, env := range envs {
		sent, err := db.Sent(ctx, env.SubmissionID())
		if err != nil {
			return nil, err
		}
		if sent {
			slog.Info("skipping submission already sent", "submission", env.SubmissionID())
			continue
		}
		pending = append(pending, env)
	}
	return pending, nil
}

func sendOne(ctx context.Context, cmd *cobra.Command, client *switchboard.Client, db *ledger.DB, env *message.Envelope, token string, profile *mapping.Profile) bool {
	entry := ledger.Entry{
		SubmissionID: env.SubmissionID(),
		Profile:      profile.VersionedName(),
		Recipient:    env.Recipient(),
		Status:       ledger.StatusSent,
	}

	status, err := client.SendMessage(ctx, env, token)
	entry.HTTPStatus = status
	if err != nil {
		entry.Status = ledger.StatusFailed
		entry.Error = err.Error()
		var apiErr *switchboard.APIError
		switch {
		case errors.As(err, &apiErr) && switchboard.IsRequirementsError(err):
			fmt.Fprintf(cmd.ErrOrStderr(), "✗ Submission %d refused (%d): %s\n", env.SubmissionID(), apiErr.StatusCode, apiErr.Body)
		default:
			fmt.Fprintf(cmd.ErrOrStderr(), "✗ Submission %d: %v\n", env.SubmissionID(), err)
		}
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Submission %d sent (%d)\n", env.SubmissionID(), status)
	}

	recordAttempt(ctx, db, entry)
	return err == nil
}

func recordAttempt(ctx context.Context, db *ledger.DB, e ledger.Entry) {
	if _, err := db.Record(ctx, e); err != nil {
		slog.Error("unable to record attempt", "submission", e.SubmissionID, "err", err)
	}
}

// newSwitchboardClient wires the retrying transport under the API client.
func newSwitchboardClient(c *settings.Config) *switchboard.Client {
	httpClient := pester.New()
	httpClient.Backoff = pester.ExponentialBackoff
	httpClient.MaxRetries = 1 + c.MaxRetries
	httpClient.RetryOnHTTP429 = true
	httpClient.Timeout = c.Timeout

	return switchboard.NewClient(
		switchboard.WithHTTPClient(httpClient),
		switchboard.WithBaseURL(c.BaseURL),
		switchboard.WithRateLimit(c.RateLimit),
		switchboard.WithLogger(slog.Default()),
	)
}
