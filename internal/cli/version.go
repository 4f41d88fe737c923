package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/janscope/annotator/internal/domain"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("annotator %s (model %s)\n", domain.ModelVersion, domain.ModelName)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
