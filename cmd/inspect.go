package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/vixos/vixrpc/internal/compiler"
	"github.com/vixos/vixrpc/internal/compiler/defs"
	"github.com/vixos/vixrpc/internal/compiler/types"
)

const historyFile = ".vixrpc_history"

// inspect: interactive schema browser
var InspectCmd = &cobra.Command{
	Use:   "inspect [schema]",
	Short: "Browse a parsed schema interactively",
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

		fmt.Printf("%s: %d definitions. Commands: list, show <name>, type <expr>, quit\n",
			args[0], table.Len())
		runInspect(table)
		return nil
	},
}

func runInspect(table *defs.Table) {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		input, err := ln.Prompt("schema> ")
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			return
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		ln.AppendHistory(input)

		verb, rest, _ := strings.Cut(input, " ")
		rest = strings.TrimSpace(rest)

		switch verb {
		case "quit", "exit", ":quit":
			return
		case "list":
			for _, name := range table.Names() {
				def, _ := table.Lookup(name)
				fmt.Printf("%-10s %s\n", defKind(def), name)
			}
		case "show":
			def, ok := table.Lookup(rest)
			if !ok {
				fmt.Printf("no definition %q\n", rest)
				continue
			}
			fmt.Print(formatDef(rest, def))
		case "type":
			expr, err := types.Resolve(rest)
			if err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Println(expr)
		default:
			fmt.Println("commands: list, show <name>, type <expr>, quit")
		}
	}
}

func defKind(def defs.Definition) string {
	switch def.(type) {
	case *defs.Struct:
		return "struct"
	case *defs.Enum:
		return "enum"
	case *defs.Const:
		return "const"
	case *defs.Union:
		return "union"
	case *defs.Function:
		return "fn"
	case *defs.Signal:
		return "signal"
	}
	return "?"
}

func formatDef(name string, def defs.Definition) string {
	var b strings.Builder
	switch d := def.(type) {
	case *defs.Struct:
		fmt.Fprintf(&b, "struct %s:\n", name)
		for _, f := range d.Fields {
			fmt.Fprintf(&b, "    %s: %s\n", f.Name, f.Type)
		}
	case *defs.Enum:
		fmt.Fprintf(&b, "enum %s:\n", name)
		for _, m := range d.Members {
			fmt.Fprintf(&b, "    %s = %s\n", m.Name, m.Value)
		}
	case *defs.Const:
		fmt.Fprintf(&b, "const %s = %s\n", name, d.Value)
	case *defs.Union:
		fmt.Fprintf(&b, "union %s = %s\n", name, strings.Join(d.Types, " | "))
	case *defs.Function:
		fmt.Fprintf(&b, "fn %s(%s) -> %s\n", name, formatParams(d.Params), d.Return)
	case *defs.Signal:
		fmt.Fprintf(&b, "signal %s(%s) -> %s\n", name, formatParams(d.Params), d.Return)
	}
	return b.String()
}

func formatParams(params []defs.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Name + ": " + p.Type
	}
	return strings.Join(parts, ", ")
}
