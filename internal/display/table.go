// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package display

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/pdiddy/rna/pkg/types"
)

// Long text columns are wrapped at these widths.
const (
	titreWidth = 40
	objetWidth = 60
)

// RenderTable returns records as a boxed table, one row per association.
func RenderTable(records []types.Association) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"#", "ID", "Titre", "Création", "Commune", "Dépt", "Objet"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, WidthMax: titreWidth, WidthMaxEnforcer: text.WrapSoft},
		{Number: 7, WidthMax: objetWidth, WidthMaxEnforcer: text.WrapSoft},
	})
	for i, r := range records {
		tw.AppendRow(table.Row{i + 1, r.ID, r.Titre, r.DateCreation, r.Commune, r.Departement, r.Objet})
	}
	return tw.Render()
}

// WriteTable writes the table form of records to w, followed by a newline.
func WriteTable(w io.Writer, records []types.Association) error {
	if _, err := io.WriteString(w, RenderTable(records)); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
