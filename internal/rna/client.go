// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rna queries the RNA (Registre National des Associations) full-text
// search API and parses its responses into simplified association records.
package rna

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/rna/internal/httputil"
	"github.com/pdiddy/rna/pkg/types"
)

// DefaultBaseURL is the RNA full-text search endpoint.
const DefaultBaseURL = "https://entreprise.data.gouv.fr/api/rna/v1/full_text"

const (
	// DefaultPage is the page requested when none is given.
	DefaultPage = 1
	// DefaultPerPage is the page size requested when none is given.
	DefaultPerPage = 20
	// documentedMaxPerPage is the largest page size the API documents. It is
	// not enforced here.
	documentedMaxPerPage = 100
)

// Client issues searches against the RNA API. Each call is one independent
// request; the client holds no per-search state.
type Client struct {
	HTTP      *http.Client
	BaseURL   string
	UserAgent string
	Logger    *slog.Logger
}

// NewClient returns a Client for cfg. A nil logger discards log output.
func NewClient(cfg types.ClientConfig, logger *slog.Logger) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		HTTP:      &http.Client{},
		BaseURL:   base,
		UserAgent: cfg.UserAgent,
		Logger:    logger,
	}
}

// Search fetches one page of associations matching query. page and perPage
// fall back to DefaultPage and DefaultPerPage when not positive.
func (c *Client) Search(ctx context.Context, query string, page, perPage int) (types.ParsedPage, error) {
	if page <= 0 {
		page = DefaultPage
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if perPage > documentedMaxPerPage {
		c.Logger.Debug("per_page above documented API maximum", "per_page", perPage, "max", documentedMaxPerPage)
	}

	reqURL, err := SearchURL(c.BaseURL, query, page, perPage)
	if err != nil {
		return types.ParsedPage{}, &NetworkError{URL: c.BaseURL, Err: err}
	}
	c.Logger.Debug("searching RNA", "url", reqURL)

	resp, err := httputil.Get(ctx, c.HTTP, reqURL, c.UserAgent)
	if err != nil {
		var se *httputil.StatusError
		if errors.As(err, &se) {
			return types.ParsedPage{}, &NetworkError{URL: reqURL, StatusCode: se.StatusCode, Err: err}
		}
		return types.ParsedPage{}, &NetworkError{URL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	parsed, err := ParseResponse(resp.Body)
	if err != nil {
		return types.ParsedPage{}, err
	}

	c.Logger.Info("RNA search complete",
		"query", query,
		"page", page,
		"total_results", parsed.TotalResults,
		"total_pages", parsed.TotalPages,
		"records", len(parsed.Records))
	return parsed, nil
}

// SearchURL builds {base}/{query}?page={page}&per_page={perPage}. The query is
// escaped as a single path segment and never cleaned or unescaped, so "%",
// "/" and ".." reach the API as typed.
func SearchURL(base, query string, page, perPage int) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	u.RawPath = strings.TrimSuffix(u.EscapedPath(), "/") + "/" + url.PathEscape(query)
	if u.Path, err = url.PathUnescape(u.RawPath); err != nil {
		return "", err
	}
	params := url.Values{
		"per_page": {strconv.Itoa(perPage)},
		"page":     {strconv.Itoa(page)},
	}
	u.RawQuery = params.Encode()
	return u.String(), nil
}
