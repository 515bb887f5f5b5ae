package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aprilio/claimscope/internal/extract"
	"github.com/aprilio/claimscope/internal/intake"
	"github.com/aprilio/claimscope/internal/model"
	"github.com/spf13/cobra"
)

var (
	extractKind    string
	extractOwner   string
	extractTimeout time.Duration
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <file>...",
	Short: "Extract canonical records from uploaded documents",
	Long: `Extract runs each document through the inference provider and stores
the canonical record for its kind.

Extraction is total: a document the provider cannot read produces a
record of "To be completed" placeholders instead of an error, and the
rest of the batch continues.

Example:
  claimscope extract record.txt --kind medical --owner alice
  claimscope extract policy.png --kind policy --owner alice
  claimscope extract cert.jpg --kind diagnosis --owner alice`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&extractKind, "kind", "medical", "document kind (medical, policy, diagnosis)")
	extractCmd.Flags().StringVar(&extractOwner, "owner", "", "owner identifier the record is stored under")
	extractCmd.Flags().DurationVar(&extractTimeout, "timeout", 2*time.Minute, "overall extraction timeout")
	_ = extractCmd.MarkFlagRequired("owner")
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), extractTimeout)
	defer cancel()

	cfg := buildConfig()
	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	records := newStore(cfg)
	in := intake.New(cfg.Intake)

	for _, path := range args {
		payload, err := in.FromFile(path)
		if err != nil {
			// Intake rejections are real errors: the ceilings are the
			// contract with the rest of the pipeline.
			return fmt.Errorf("intake %s: %w", path, err)
		}

		switch extractKind {
		case "medical":
			record := extract.NewMedicalExtractor(client, logger).Extract(ctx, payload)
			if err := records.SaveMedicalRecord(extractOwner, record); err != nil {
				return fmt.Errorf("save record: %w", err)
			}
			reportExtraction(path, countMedicalPlaceholders(record))

		case "diagnosis":
			record := extract.NewDiagnosisExtractor(client, logger).Extract(ctx, payload)
			if err := records.SaveMedicalRecord(extractOwner, record); err != nil {
				return fmt.Errorf("save record: %w", err)
			}
			reportExtraction(path, countMedicalPlaceholders(record))

		case "policy":
			policy := extract.NewPolicyExtractor(client, logger).Extract(ctx, payload)
			if err := records.SavePolicy(extractOwner, policy); err != nil {
				return fmt.Errorf("save policy: %w", err)
			}
			reportExtraction(path, countPolicyPlaceholders(policy))

		default:
			return fmt.Errorf("unknown document kind: %s (supported: medical, policy, diagnosis)", extractKind)
		}
	}

	return nil
}

func reportExtraction(path string, placeholders int) {
	if placeholders == 0 {
		fmt.Fprintf(os.Stderr, "extracted %s\n", path)
		return
	}
	fmt.Fprintf(os.Stderr, "extracted %s (%d fields to be completed)\n", path, placeholders)
}

func countMedicalPlaceholders(r model.ExtractedMedicalRecord) int {
	count := 0
	for _, v := range []string{
		r.Hospital, r.Department, r.Doctor, r.VisitDate, r.Diagnosis,
		r.Symptoms, r.Treatment, r.Medications, r.IsFirstOccurrence,
	} {
		if model.IsPlaceholder(v) {
			count++
		}
	}
	return count
}

func countPolicyPlaceholders(p model.ExtractedInsurancePolicy) int {
	count := 0
	for _, v := range []string{
		p.Company, p.Type, p.Name, p.Number, p.StartDate, p.EndDate,
		p.InsuredName, p.Beneficiary, p.MaxClaimAmount, p.MaxClaimUnit,
	} {
		if model.IsPlaceholder(v) {
			count++
		}
	}
	return count
}
