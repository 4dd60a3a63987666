package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	xmlview "github.com/cdileep23/go-xmlview"
	"github.com/cdileep23/go-xmlview/internal/fileutil"
)

// stdinArg names standard input as an input or output.
const stdinArg = "-"

// isRecordPath reports whether path holds a JSON record rather than bare XML.
func isRecordPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// readRecord loads the single input named in args: an XML file, a JSON
// record, or "-" for standard input.
func readRecord(args []string, asJSON bool, env *Environment) (xmlview.Record, error) {
	switch {
	case len(args) == 0:
		return xmlview.Record{}, fmt.Errorf("%w: pass a file, or - for stdin", ErrNoInput)
	case len(args) > 1:
		return xmlview.Record{}, fmt.Errorf("%w: expected one input, got %d", ErrTooManyArgs, len(args))
	}

	path := args[0]
	if path == stdinArg {
		return decodeInput(env.Stdin, "", asJSON)
	}
	return readRecordFile(path, asJSON)
}

// readRecordFile loads one input file. A .json extension implies asJSON.
func readRecordFile(path string, asJSON bool) (xmlview.Record, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided input path
	if err != nil {
		return xmlview.Record{}, fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	defer f.Close()
	return decodeInput(f, filepath.Base(path), asJSON || isRecordPath(path))
}

// decodeInput reads a JSON record or wraps bare XML named name.
func decodeInput(r io.Reader, name string, asJSON bool) (xmlview.Record, error) {
	if asJSON {
		return xmlview.DecodeRecord(r)
	}

	data, err := io.ReadAll(io.LimitReader(r, xmlview.MaxRecordSize+1))
	if err != nil {
		return xmlview.Record{}, fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	if len(data) > xmlview.MaxRecordSize {
		return xmlview.Record{}, fmt.Errorf("%w: input exceeds %d bytes", ErrReadInput, xmlview.MaxRecordSize)
	}
	return xmlview.RecordFromXML(name, string(data)), nil
}

// writeOutput writes data to path, or to stdout when path is "" or "-".
func writeOutput(path string, data []byte, env *Environment) error {
	if path == "" || path == stdinArg {
		_, err := env.Stdout.Write(data)
		return err
	}
	if err := fileutil.WriteFile(path, data); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}

// defaultOutputPath places name in dir, or in the working directory.
func defaultOutputPath(dir, name string) string {
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}
