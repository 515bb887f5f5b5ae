package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aprilio/claimscope/internal/intake"
	"github.com/aprilio/claimscope/internal/match"
	"github.com/aprilio/claimscope/internal/model"
	"github.com/spf13/cobra"
)

var (
	matchOwner     string
	matchCaseFile  string
	matchAge       int
	matchGender    string
	matchDisease   string
	matchTreatment string
	matchNotes     string
	matchTimeout   time.Duration
	matchOutJSON   string
)

// matchCmd represents the match command
var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match a patient's case against benefit and claim opportunities",
	Long: `Match runs the 4-stage search pipeline: case analysis first, then
government subsidies, corporate benefits, and policy claims in
parallel.

A failed search stage is reported by name rather than silently
dropped; results from the stages that succeeded are still written.

Example:
  claimscope match --owner alice --case-file case.txt --age 52 --gender female --disease "breast cancer"`,
	RunE: runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringVar(&matchOwner, "owner", "", "owner whose stored policy feeds the policy-claims stage")
	matchCmd.Flags().StringVar(&matchCaseFile, "case-file", "", "file with the free-text medical case content")
	matchCmd.Flags().IntVar(&matchAge, "age", 0, "patient age")
	matchCmd.Flags().StringVar(&matchGender, "gender", "", "patient gender")
	matchCmd.Flags().StringVar(&matchDisease, "disease", "", "known disease, if any")
	matchCmd.Flags().StringVar(&matchTreatment, "treatment", "", "current treatment, if any")
	matchCmd.Flags().StringVar(&matchNotes, "notes", "", "additional case notes")
	matchCmd.Flags().DurationVar(&matchTimeout, "timeout", 5*time.Minute, "overall matching timeout")
	matchCmd.Flags().StringVar(&matchOutJSON, "json", "", "write the full result to this path (default: stdout)")
	_ = matchCmd.MarkFlagRequired("case-file")
}

func runMatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), matchTimeout)
	defer cancel()

	cfg := buildConfig()
	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	in := intake.New(cfg.Intake)
	payload, err := in.FromFile(matchCaseFile)
	if err != nil {
		return fmt.Errorf("intake %s: %w", matchCaseFile, err)
	}

	req := match.Request{
		Profile: model.CaseProfile{
			Age:       matchAge,
			Gender:    matchGender,
			Disease:   matchDisease,
			Treatment: matchTreatment,
			Notes:     matchNotes,
		},
	}
	switch payload.Kind {
	case model.PayloadImage:
		req.CaseImage = payload.ImageBytes
	default:
		req.CaseText = payload.Text
	}

	// The policy-claims stage reads the owner's stored policy when one
	// exists; without it the stage still runs on the case alone.
	if matchOwner != "" {
		records := newStore(cfg)
		policy, found, err := records.Policy(matchOwner)
		if err != nil {
			return fmt.Errorf("load policy: %w", err)
		}
		if found {
			policyJSON, err := json.Marshal(policy)
			if err != nil {
				return fmt.Errorf("encode policy: %w", err)
			}
			req.PolicyText = string(policyJSON)
		}
	}

	matcher := match.NewMatcher(client, cfg, logger)
	result, runErr := matcher.Run(ctx, req)

	if err := writeMatchResult(result); err != nil {
		return err
	}

	if runErr != nil {
		var stageErr *match.StageError
		if errors.As(runErr, &stageErr) {
			fmt.Fprintf(os.Stderr, "some search stages failed; retry them individually:\n%v\n", runErr)
		}
		return runErr
	}
	return nil
}

func writeMatchResult(result *match.Result) error {
	out := os.Stdout
	if matchOutJSON != "" {
		f, err := os.Create(matchOutJSON)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}
