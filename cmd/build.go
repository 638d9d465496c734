package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vixos/vixrpc/internal/compiler"
	"github.com/vixos/vixrpc/internal/history"
)

var buildName string

// build: compile a schema into a C header
var BuildCmd = &cobra.Command{
	Use:   "build [schema]",
	Short: "Compile a schema into a C header",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		srcPath := args[0]

		res, err := compiler.CompileAndWrite(srcPath, buildName, outDir)
		recordBuild(srcPath, res, err)
		if err != nil {
			return err
		}

		fmt.Printf("wrote %s (%d definitions)\n", res.OutFile, res.Table.Len())
		return nil
	},
}

func init() {
	BuildCmd.Flags().StringVarP(&buildName, "name", "n", "", "interface name (defaults to the schema filename)")
}

// recordBuild logs the run, successful or not, in the history store. Logging
// failures are reported but never fail the build itself.
func recordBuild(srcPath string, res *compiler.Result, buildErr error) {
	store, err := history.Open(filepath.Join(outDir, "builds.db"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: build log unavailable: %v\n", err)
		return
	}
	defer store.Close()

	b := history.Build{SchemaPath: srcPath, Name: buildName, OK: buildErr == nil}
	if buildErr != nil {
		b.Error = buildErr.Error()
		if src, err := os.ReadFile(srcPath); err == nil {
			b.SourceHash = history.HashSource(src)
		}
	} else {
		b.Name = res.Name
		b.SourceHash = history.HashSource(res.Source)
		b.DefCount = res.Table.Len()
	}

	if _, err := store.Record(b); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not record build: %v\n", err)
	}
}
