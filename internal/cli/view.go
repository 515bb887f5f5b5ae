package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aprilio/claimscope/internal/resolve"
	"github.com/spf13/cobra"
)

var (
	viewOwner  string
	viewPolicy bool
)

// viewCmd represents the view command
var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Render the derived claim view of a stored record",
	Long: `View loads an owner's stored canonical record and derives the
read-time claim view: resolved entities with per-field confidence,
missing-field tracking, normalized coverage, and the estimated totals.

The claim success rate and estimated amounts are indicative,
completeness-based figures, not underwriting results.

Example:
  claimscope view --owner alice
  claimscope view --owner alice --policy`,
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)

	viewCmd.Flags().StringVar(&viewOwner, "owner", "", "owner identifier")
	viewCmd.Flags().BoolVar(&viewPolicy, "policy", false, "view the insurance policy instead of the medical record")
	_ = viewCmd.MarkFlagRequired("owner")
}

func runView(cmd *cobra.Command, args []string) error {
	cfg := buildConfig()
	records := newStore(cfg)

	var view any
	if viewPolicy {
		policy, found, err := records.Policy(viewOwner)
		if err != nil {
			return fmt.Errorf("load policy: %w", err)
		}
		if !found {
			return fmt.Errorf("no policy stored for owner %q", viewOwner)
		}
		view = resolve.PolicyView(policy)
	} else {
		record, found, err := records.MedicalRecord(viewOwner)
		if err != nil {
			return fmt.Errorf("load record: %w", err)
		}
		if !found {
			return fmt.Errorf("no medical record stored for owner %q", viewOwner)
		}
		view = resolve.MedicalView(record)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(view)
}
