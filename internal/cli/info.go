package cli

import (
	"github.com/spf13/cobra"

	"github.com/benjaminschreck/go-docpack/pkg/docpack"
)

type infoResult struct {
	File          string `json:"file"`
	Variant       string `json:"variant"`
	ContentType   string `json:"content_type"`
	MainPart      string `json:"main_part"`
	Parts         int    `json:"parts"`
	Relationships int    `json:"relationships"`
	Violations    int    `json:"violations"`
}

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Show a package's variant, content type, and graph summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := docpack.OpenFile(args[0])
		if err != nil {
			return err
		}

		pkg := doc.Package()
		contentType, _ := pkg.Registry().Resolve(doc.MainPartName())

		relCount := 0
		for _, scope := range pkg.Scopes() {
			relCount += len(pkg.RelationshipsFrom(scope))
		}

		result := infoResult{
			File:          args[0],
			Variant:       doc.Variant().String(),
			ContentType:   contentType,
			MainPart:      doc.MainPartName(),
			Parts:         len(pkg.Parts()),
			Relationships: relCount,
			Violations:    len(pkg.CheckInvariants()),
		}

		if jsonOutput {
			return outputJSON(result)
		}

		printField("File", result.File)
		printField("Variant", result.Variant)
		printField("Content type", result.ContentType)
		printField("Main part", result.MainPart)
		printField("Parts", result.Parts)
		printField("Relationships", result.Relationships)
		if result.Violations > 0 {
			printField("Violations", warnColor.Sprint(result.Violations))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
