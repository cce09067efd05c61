package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benjaminschreck/go-docpack/pkg/docpack"
)

var (
	stripOutput     string
	stripKeepMacros bool
)

var stripCmd = &cobra.Command{
	Use:   "strip <file>",
	Short: "Save a package, stripping its macro payload by default",
	Long: `strip saves a package under a new name. A macro-enabled document is
converted to the plain variant: the VBA payload parts, every relationship
referencing them, and the embedded control fragments are removed, and the
destination extension is corrected to match the resulting content type.

With --keep-macros the payload is preserved instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := docpack.OpenFile(args[0])
		if err != nil {
			return err
		}

		destination := stripOutput
		if destination == "" {
			destination = args[0]
		}

		finalName, err := doc.Save(destination, docpack.Bool(stripKeepMacros))
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(map[string]interface{}{
				"file":    finalName,
				"variant": doc.Variant().String(),
			})
		}

		if finalName != destination {
			fmt.Println(warnColor.Sprintf("extension corrected: %s", finalName))
		}
		successColor.Printf("saved %s (%s)\n", finalName, doc.Variant())
		return nil
	},
}

func init() {
	stripCmd.Flags().StringVarP(&stripOutput, "output", "o", "", "destination file (defaults to the input name)")
	stripCmd.Flags().BoolVar(&stripKeepMacros, "keep-macros", false, "preserve the macro payload")
	rootCmd.AddCommand(stripCmd)
}
