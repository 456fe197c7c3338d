// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the rna client.
package types

// Association is the simplified view of one RNA association record.
// Every field holds the string form of the value returned by the API.
type Association struct {
	// ID is the RNA identifier (e.g. "W751234567").
	ID string `json:"id" yaml:"id"`

	// Titre is the registered name of the association.
	Titre string `json:"titre" yaml:"titre"`

	// DateCreation is the declaration date as returned by the API.
	DateCreation string `json:"date_creation" yaml:"date_creation"`

	// Commune is the municipality of the association address.
	Commune string `json:"commune" yaml:"commune"`

	// Departement is the first two characters of the management postal code.
	Departement string `json:"département" yaml:"département"`

	// Objet is the declared purpose of the association.
	Objet string `json:"objet" yaml:"objet"`
}

// Field is a key/value pair used when an Association is printed field by field.
type Field struct {
	Key   string
	Value string
}

// Fields returns the six fields in display order.
func (a Association) Fields() []Field {
	return []Field{
		{"id", a.ID},
		{"titre", a.Titre},
		{"date_creation", a.DateCreation},
		{"commune", a.Commune},
		{"département", a.Departement},
		{"objet", a.Objet},
	}
}

// ParsedPage is one page of search results.
type ParsedPage struct {
	// TotalResults is the number of matches across all pages.
	TotalResults int `json:"total_results" yaml:"total_results"`

	// TotalPages is the page count reported by the API.
	TotalPages int `json:"total_pages" yaml:"total_pages"`

	// PerPage is the page size echoed by the API.
	PerPage int `json:"per_page" yaml:"per_page"`

	// Records holds the associations of this page in API order.
	Records []Association `json:"records" yaml:"records"`
}
