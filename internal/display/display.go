// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package display renders search results for the terminal.
package display

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/rna/pkg/types"
)

// Format selects how records are rendered.
type Format string

// Supported --format values.
const (
	FormatText  Format = "text"
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// ParseFormat validates a --format value. The empty string means text.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatText:
		return FormatText, nil
	case FormatTable, FormatJSON:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported format %q: use text, table, or json", s)
	}
}

// Separator is printed before each record in text output.
var Separator = strings.Repeat("=", 172)

// Header holds the page summary printed above the records. PerPage is the
// value the user asked for, not the one echoed by the API.
type Header struct {
	TotalResults int
	PerPage      int
	TotalPages   int
	Page         int
}

// WriteHeader prints the page summary.
func WriteHeader(w io.Writer, h Header) {
	fmt.Fprintf(w, "Nombre total de résultats : %d\n", h.TotalResults)
	fmt.Fprintf(w, "Nombre de résultats affichés par page : %d\n", h.PerPage)
	fmt.Fprintf(w, "Nombre total de pages : %d\n", h.TotalPages)
	fmt.Fprintf(w, "Affichage de la page n°%d\n", h.Page)
}

// WriteRecords prints each record as a separator line followed by one
// "key : value" line per field.
func WriteRecords(w io.Writer, records []types.Association) {
	for _, r := range records {
		fmt.Fprintln(w, Separator)
		for _, f := range r.Fields() {
			fmt.Fprintf(w, "%s : %s\n", f.Key, f.Value)
		}
	}
}

// WriteJSON writes records as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
