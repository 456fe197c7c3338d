// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rna

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pdiddy/rna/pkg/types"
)

// Top-level keys of a full_text response.
const (
	keyTotalResults = "total_results"
	keyPerPage      = "per_page"
	keyTotalPages   = "total_pages"
	keyAssociation  = "association"
)

// Keys read from each association entry.
const (
	keyID           = "id"
	keyTitre        = "titre"
	keyDateCreation = "date_creation"
	keyCommune      = "adresse_libelle_commune"
	keyCodePostal   = "adresse_gestion_code_postal"
	keyObjet        = "objet"
)

// rawObject keeps values undecoded so that absent keys can be told apart
// from null or zero values.
type rawObject map[string]json.RawMessage

func (o rawObject) require(key string, index int) (json.RawMessage, error) {
	v, ok := o[key]
	if !ok {
		return nil, &MissingFieldError{Field: key, Index: index}
	}
	return v, nil
}

// Parse converts a raw full_text response body into a ParsedPage. It fails
// on the first missing key; no partial page is returned.
func Parse(data []byte) (types.ParsedPage, error) {
	var top rawObject
	if err := json.Unmarshal(data, &top); err != nil {
		return types.ParsedPage{}, &DecodeError{Err: err}
	}
	if top == nil {
		return types.ParsedPage{}, &DecodeError{Err: fmt.Errorf("response is null, want an object")}
	}

	var page types.ParsedPage
	var err error
	if page.TotalResults, err = intField(top, keyTotalResults); err != nil {
		return types.ParsedPage{}, err
	}
	if page.PerPage, err = intField(top, keyPerPage); err != nil {
		return types.ParsedPage{}, err
	}
	// total_pages is trusted as reported; it is not recomputed from the counts.
	if page.TotalPages, err = intField(top, keyTotalPages); err != nil {
		return types.ParsedPage{}, err
	}

	rawList, err := top.require(keyAssociation, -1)
	if err != nil {
		return types.ParsedPage{}, err
	}
	var entries []rawObject
	if err := json.Unmarshal(rawList, &entries); err != nil {
		return types.ParsedPage{}, &DecodeError{Field: keyAssociation, Err: err}
	}

	page.Records = make([]types.Association, 0, len(entries))
	for i, entry := range entries {
		a, err := simplify(entry, i)
		if err != nil {
			return types.ParsedPage{}, err
		}
		page.Records = append(page.Records, a)
	}
	return page, nil
}

// ParseResponse reads r to the end and parses it.
func ParseResponse(r io.Reader) (types.ParsedPage, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return types.ParsedPage{}, &DecodeError{Err: fmt.Errorf("reading body: %w", err)}
	}
	return Parse(data)
}

// simplify projects one association entry onto the six consumed fields.
func simplify(entry rawObject, index int) (types.Association, error) {
	if entry == nil {
		return types.Association{}, &MissingFieldError{Field: keyID, Index: index}
	}

	values := make(map[string]string, 6)
	for _, key := range []string{keyID, keyTitre, keyDateCreation, keyCommune, keyCodePostal, keyObjet} {
		raw, err := entry.require(key, index)
		if err != nil {
			return types.Association{}, err
		}
		s, err := stringForm(raw)
		if err != nil {
			return types.Association{}, &DecodeError{Field: fmt.Sprintf("association[%d].%s", index, key), Err: err}
		}
		values[key] = s
	}

	return types.Association{
		ID:           values[keyID],
		Titre:        values[keyTitre],
		DateCreation: values[keyDateCreation],
		Commune:      values[keyCommune],
		Departement:  Departement(values[keyCodePostal]),
		Objet:        values[keyObjet],
	}, nil
}

// Departement returns the first two characters of a postal code. Shorter
// codes are returned unchanged.
func Departement(postalCode string) string {
	runes := []rune(postalCode)
	if len(runes) <= 2 {
		return postalCode
	}
	return string(runes[:2])
}

// stringForm renders a JSON scalar as text: strings unquoted, numbers and
// booleans as their literal, null as "". Objects and arrays keep their
// compact JSON text.
func stringForm(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		var buf bytes.Buffer
		if err := json.Compact(&buf, trimmed); err != nil {
			return "", err
		}
		return buf.String(), nil
	}
	return string(trimmed), nil
}

// intField reads a top-level integer that the API may send as a number or
// as a numeric string.
func intField(top rawObject, key string) (int, error) {
	raw, err := top.require(key, -1)
	if err != nil {
		return 0, err
	}
	n, err := coerceInt(raw)
	if err != nil {
		return 0, &DecodeError{Field: key, Err: err}
	}
	return n, nil
}

func coerceInt(raw json.RawMessage) (int, error) {
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return 0, err
	}

	switch t := v.(type) {
	case json.Number:
		if n, err := strconv.Atoi(t.String()); err == nil {
			return n, nil
		}
		f, err := t.Float64()
		if err != nil {
			return 0, err
		}
		if f >= float64(math.MaxInt) || f < float64(math.MinInt) {
			return 0, fmt.Errorf("%s is out of integer range", t)
		}
		return int(math.Trunc(f)), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, fmt.Errorf("%q is not an integer", t)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("unexpected JSON value %s", string(raw))
	}
}
