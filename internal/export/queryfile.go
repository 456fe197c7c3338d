// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/rna/pkg/types"
)

// QueryFile is the on-disk form of one fetched search page. Saved pages can
// be ingested into the archive later without querying the API again.
type QueryFile struct {
	Query   QueryParams         `yaml:"query"`
	Results []types.Association `yaml:"results"`
	Summary QuerySummary        `yaml:"summary"`
}

// QueryParams records the request that produced the results.
type QueryParams struct {
	Text    string `yaml:"text"`
	Page    int    `yaml:"page"`
	PerPage int    `yaml:"per_page"`
}

// QuerySummary records the counts reported by the API and when the page was fetched.
type QuerySummary struct {
	TotalResults int       `yaml:"total_results"`
	TotalPages   int       `yaml:"total_pages"`
	Returned     int       `yaml:"returned"`
	Timestamp    time.Time `yaml:"timestamp"`
}

// NewQueryFile builds a QueryFile for a fetched page.
func NewQueryFile(query string, page, perPage int, parsed types.ParsedPage, fetched time.Time) QueryFile {
	return QueryFile{
		Query: QueryParams{
			Text:    query,
			Page:    page,
			PerPage: perPage,
		},
		Results: parsed.Records,
		Summary: QuerySummary{
			TotalResults: parsed.TotalResults,
			TotalPages:   parsed.TotalPages,
			Returned:     len(parsed.Records),
			Timestamp:    fetched.UTC(),
		},
	}
}

// WriteQueryFile saves qf as YAML at path.
func WriteQueryFile(path string, qf QueryFile) error {
	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &FileError{Path: path, Err: err}
	}
	return nil
}

// ReadQueryFile loads a previously saved query file.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file %s: %w", path, err)
	}
	return &qf, nil
}
