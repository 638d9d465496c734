package cmd

import (
	"github.com/spf13/cobra"
)

var outDir string

var rootCmd = &cobra.Command{
	Use:   "vixrpc",
	Short: "RPC interface compiler",
	Long: `vixrpc compiles RPC interface definitions into C bindings.

Commands:
  build    Compile a schema into a C header with msgpack plumbing
  check    Parse a schema and report its definitions
  inspect  Browse a parsed schema interactively
  log      Show recent builds
`,
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outDir, "out", "o", "out", "output directory for build artifacts")

	rootCmd.AddCommand(BuildCmd, CheckCmd, InspectCmd, LogCmd)
}
