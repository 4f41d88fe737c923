// Package cli wires the annotator commands: batch runs, the ops server
// and version info.
package cli

import (
	"github.com/spf13/cobra"
)

var cfgFile string

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "annotator",
	Short: "Annotation engine for Hindi social-media posts from Chhattisgarh",
	Long: `annotator enriches social-media posts in Hindi/Devanagari with an
event category, a resolved administrative location, extracted entities
and a calibrated review verdict.

Posts flow through keyword classification, rescue reclassification,
the multi-tier location resolver and the consensus scorer; batch runs
read JSONL and write annotated JSONL plus an aggregate-stats sidecar.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML; env vars override)")
}
