package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vixos/vixrpc/internal/compiler"
	"github.com/vixos/vixrpc/internal/compiler/defs"
)

// check: parse a schema without generating anything
var CheckCmd = &cobra.Command{
	Use:   "check [schema]",
	Short: "Parse a schema and report its definitions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		table, err := compiler.ParseSchema(string(content))
		if err != nil {
			return err
		}

		var structs, enums, consts, unions, fns, signals int
		for _, name := range table.Names() {
			def, _ := table.Lookup(name)
			switch def.(type) {
			case *defs.Struct:
				structs++
			case *defs.Enum:
				enums++
			case *defs.Const:
				consts++
			case *defs.Union:
				unions++
			case *defs.Function:
				fns++
			case *defs.Signal:
				signals++
			}
		}

		fmt.Printf("%s: %d definitions (%d structs, %d enums, %d consts, %d unions, %d fns, %d signals)\n",
			args[0], table.Len(), structs, enums, consts, unions, fns, signals)
		return nil
	},
}
