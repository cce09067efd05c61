package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benjaminschreck/go-docpack/pkg/docpack"
)

type partResult struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
}

var partsCmd = &cobra.Command{
	Use:   "parts <file>",
	Short: "List a package's parts and their content types",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := docpack.OpenFile(args[0])
		if err != nil {
			return err
		}

		var results []partResult
		for _, part := range doc.Package().Parts() {
			results = append(results, partResult{
				Name:        part.Name,
				ContentType: part.ContentType,
				Size:        len(part.Blob),
			})
		}

		if jsonOutput {
			return outputJSON(results)
		}

		for _, r := range results {
			fmt.Printf("%-40s %9d  %s\n", r.Name, r.Size, r.ContentType)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(partsCmd)
}
