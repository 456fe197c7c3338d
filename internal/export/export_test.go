// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/rna/pkg/types"
)

var sampleRecords = []types.Association{
	{ID: "W1", Titre: "Club A", DateCreation: "2000-01-01", Commune: "Paris", Departement: "75", Objet: "sport"},
	{ID: "W2", Titre: "Club, B", DateCreation: "2010-05-05", Commune: "Lyon", Departement: "69", Objet: "culture \"et\" loisirs\nsur deux lignes"},
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRecords))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, len(sampleRecords)+1)

	assert.Equal(t, []string{"id", "titre", "date de création", "commune", "département", "objet"}, rows[0])
	for i, r := range sampleRecords {
		assert.Equal(t, []string{r.ID, r.Titre, r.DateCreation, r.Commune, r.Departement, r.Objet}, rows[i+1])
	}
}

func TestWriteCSV_CRLF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRecords[:1]))
	assert.Equal(t, "id,titre,date de création,commune,département,objet\r\nW1,Club A,2000-01-01,Paris,75,sport\r\n", buf.String())
}

func TestWriteCSV_NoRecords(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, 1, strings.Count(buf.String(), "\r\n"))
}

func TestWriteCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteCSVFile(path, sampleRecords))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestWriteCSVFile_Unwritable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "out.csv")
	err := WriteCSVFile(path, sampleRecords)

	var fe *FileError
	require.True(t, errors.As(err, &fe), "got %v", err)
	assert.Equal(t, path, fe.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestQueryFile_RoundTrip(t *testing.T) {
	fetched := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	parsed := types.ParsedPage{TotalResults: 42, TotalPages: 3, PerPage: 20, Records: sampleRecords}
	qf := NewQueryFile("football", 2, 20, parsed, fetched)

	path := filepath.Join(t.TempDir(), "football.yaml")
	require.NoError(t, WriteQueryFile(path, qf))

	got, err := ReadQueryFile(path)
	require.NoError(t, err)
	assert.Equal(t, "football", got.Query.Text)
	assert.Equal(t, 2, got.Query.Page)
	assert.Equal(t, 20, got.Query.PerPage)
	assert.Equal(t, sampleRecords, got.Results)
	assert.Equal(t, 42, got.Summary.TotalResults)
	assert.Equal(t, 3, got.Summary.TotalPages)
	assert.Equal(t, 2, got.Summary.Returned)
	assert.True(t, fetched.Equal(got.Summary.Timestamp))
}

func TestQueryFile_UsesDepartementKey(t *testing.T) {
	qf := NewQueryFile("q", 1, 20, types.ParsedPage{Records: sampleRecords[:1]}, time.Now())
	path := filepath.Join(t.TempDir(), "q.yaml")
	require.NoError(t, WriteQueryFile(path, qf))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "département:")
	assert.Contains(t, string(data), `"75"`)
}

func TestReadQueryFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadQueryFile(filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("results: [unterminated"), 0o644))
	_, err = ReadQueryFile(bad)
	assert.ErrorContains(t, err, "parsing query file")
}
