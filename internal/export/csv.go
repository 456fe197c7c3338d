// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes search results to CSV and YAML query files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/pdiddy/rna/pkg/types"
)

// CSVHeader is the fixed column order of a CSV export.
var CSVHeader = []string{"id", "titre", "date de création", "commune", "département", "objet"}

// FileError reports an output path that could not be created or written.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// WriteCSV writes the header row and one row per record to w. Rows end in
// CRLF.
func WriteCSV(w io.Writer, records []types.Association) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{r.ID, r.Titre, r.DateCreation, r.Commune, r.Departement, r.Objet}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile creates (or truncates) path and writes records to it. The
// file is closed on every path, and a failed close is reported.
func WriteCSVFile(path string, records []types.Association) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return &FileError{Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &FileError{Path: path, Err: cerr}
		}
	}()

	if err := WriteCSV(f, records); err != nil {
		return &FileError{Path: path, Err: err}
	}
	return nil
}
