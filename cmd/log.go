package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vixos/vixrpc/internal/history"
)

var logLimit int

// log: show recent builds from the history store
var LogCmd = &cobra.Command{
	Use:   "log",
	Short: "Show recent builds",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.Open(filepath.Join(outDir, "builds.db"))
		if err != nil {
			return err
		}
		defer store.Close()

		builds, err := store.Recent(logLimit)
		if err != nil {
			return err
		}
		if len(builds) == 0 {
			fmt.Println("no builds recorded")
			return nil
		}

		for _, b := range builds {
			status := "ok"
			if !b.OK {
				status = "failed: " + b.Error
			}
			hash := b.SourceHash
			if len(hash) > 12 {
				hash = hash[:12]
			}
			fmt.Printf("%s  %-12s %-12s %3d defs  %s  %s\n",
				b.CreatedAt.Format("2006-01-02 15:04:05"), b.Name, hash, b.DefCount, b.SchemaPath, status)
		}
		return nil
	},
}

func init() {
	LogCmd.Flags().IntVarP(&logLimit, "limit", "l", 20, "maximum number of builds to show")
}
