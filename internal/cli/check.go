package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benjaminschreck/go-docpack/pkg/docpack"
)

type checkResult struct {
	File       string   `json:"file"`
	Consistent bool     `json:"consistent"`
	Violations []string `json:"violations,omitempty"`
}

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Verify a package's structural invariants",
	Long: `check verifies that every relationship targets an existing part and that
every part's content type resolves in the package's registry.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := docpack.OpenFile(args[0])
		if err != nil {
			return err
		}

		violations := doc.Package().CheckInvariants()
		result := checkResult{
			File:       args[0],
			Consistent: len(violations) == 0,
		}
		for _, v := range violations {
			result.Violations = append(result.Violations, v.String())
		}

		if jsonOutput {
			if err := outputJSON(result); err != nil {
				return err
			}
		} else if result.Consistent {
			successColor.Printf("%s: consistent\n", args[0])
		} else {
			fmt.Println(errorColor.Sprintf("%s: %d violations", args[0], len(violations)))
			for _, v := range result.Violations {
				fmt.Printf("  %s\n", v)
			}
		}

		if !result.Consistent {
			return fmt.Errorf("package is inconsistent")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
