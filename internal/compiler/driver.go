// Package compiler wires the compilation stages together: read, lex, parse,
// emit, write.
package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/vixos/vixrpc/internal/compiler/defs"
	"github.com/vixos/vixrpc/internal/compiler/emitter"
	"github.com/vixos/vixrpc/internal/compiler/lexer"
	"github.com/vixos/vixrpc/internal/compiler/parser"
)

// Interface names become C identifier prefixes, so they are restricted
// before parsing begins.
var namePattern = regexp.MustCompile(`(?i)^[a-z_]+$`)

// Result describes one completed compile run.
type Result struct {
	Name    string // emitted interface name
	OutFile string // path of the written header
	Source  []byte // schema source as read
	Table   *defs.Table
}

// DeriveName returns the explicit name if given, otherwise the schema
// filename without its extension. The result must match ^[a-z_]+$
// (case-insensitive); a malformed name is a configuration error raised
// before any parsing happens.
func DeriveName(srcPath, explicit string) (string, error) {
	name := explicit
	if name == "" {
		base := filepath.Base(srcPath)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if !namePattern.MatchString(name) {
		return "", fmt.Errorf("invalid name %q: must match ^[a-z_]+$", name)
	}
	return name, nil
}

// ParseSchema lexes and parses a schema source into its definition table.
func ParseSchema(src string) (*defs.Table, error) {
	l := lexer.NewLexer(src)
	p := parser.NewParser(l)
	return p.ParseSchema()
}

// CompileAndWrite compiles srcPath into <outDir>/<name>.h. An empty name is
// derived from the filename.
func CompileAndWrite(srcPath, name, outDir string) (*Result, error) {
	name, err := DeriveName(srcPath, name)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(srcPath)
	if err != nil {
		return nil, err
	}

	table, err := ParseSchema(string(content))
	if err != nil {
		return nil, err
	}

	em := emitter.NewEmitter()
	header := em.Emit(name, table)

	outFile, err := writeOutput(header, name, outDir)
	if err != nil {
		return nil, err
	}

	return &Result{Name: name, OutFile: outFile, Source: content, Table: table}, nil
}

func writeOutput(header, name, outDir string) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	outFile := filepath.Join(outDir, name+".h")
	return outFile, os.WriteFile(outFile, []byte(header), 0o644)
}
