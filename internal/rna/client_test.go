// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rna

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/rna/pkg/types"
)

const testPath = "/api/rna/v1/full_text"

func rnaTestServer(t *testing.T, statusCode int, body string, check func(r *http.Request)) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if check != nil {
			check(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(ts.Close)
	return ts, &calls
}

func testClient(ts *httptest.Server) *Client {
	c := NewClient(types.ClientConfig{BaseURL: ts.URL + testPath, UserAgent: "rna/test"}, nil)
	c.HTTP = ts.Client()
	return c
}

func TestClientSearch(t *testing.T) {
	var gotPath, gotPage, gotPerPage, gotUA string
	ts, calls := rnaTestServer(t, http.StatusOK, twoClubsJSON, func(r *http.Request) {
		gotPath = r.URL.Path
		gotPage = r.URL.Query().Get("page")
		gotPerPage = r.URL.Query().Get("per_page")
		gotUA = r.Header.Get("User-Agent")
	})

	page, err := testClient(ts).Search(context.Background(), "football association", 3, 50)
	require.NoError(t, err)

	assert.Equal(t, testPath+"/football association", gotPath)
	assert.Equal(t, "3", gotPage)
	assert.Equal(t, "50", gotPerPage)
	assert.Equal(t, "rna/test", gotUA)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))

	assert.Equal(t, 2, page.TotalResults)
	assert.Equal(t, 1, page.TotalPages)
	require.Len(t, page.Records, 2)
	assert.Equal(t, "75", page.Records[0].Departement)
}

func TestClientSearch_QueryReachesServerVerbatim(t *testing.T) {
	var gotPath string
	ts, _ := rnaTestServer(t, http.StatusOK, twoClubsJSON, func(r *http.Request) {
		gotPath = r.URL.Path
	})

	_, err := testClient(ts).Search(context.Background(), "100% sport", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, testPath+"/100% sport", gotPath)
}

func TestClientSearch_Defaults(t *testing.T) {
	var gotPage, gotPerPage string
	ts, _ := rnaTestServer(t, http.StatusOK, twoClubsJSON, func(r *http.Request) {
		gotPage = r.URL.Query().Get("page")
		gotPerPage = r.URL.Query().Get("per_page")
	})

	_, err := testClient(ts).Search(context.Background(), "chorale", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "1", gotPage)
	assert.Equal(t, "20", gotPerPage)
}

func TestClientSearch_PerPageNotCapped(t *testing.T) {
	var gotPerPage string
	ts, _ := rnaTestServer(t, http.StatusOK, twoClubsJSON, func(r *http.Request) {
		gotPerPage = r.URL.Query().Get("per_page")
	})

	_, err := testClient(ts).Search(context.Background(), "chorale", 1, 500)
	require.NoError(t, err)
	assert.Equal(t, "500", gotPerPage)
}

func TestClientSearch_HTTPError(t *testing.T) {
	ts, calls := rnaTestServer(t, http.StatusInternalServerError, `{"error":"boom"}`, nil)

	_, err := testClient(ts).Search(context.Background(), "chorale", 1, 20)
	var ne *NetworkError
	require.True(t, errors.As(err, &ne), "got %v", err)
	assert.Equal(t, http.StatusInternalServerError, ne.StatusCode)
	assert.Contains(t, err.Error(), "HTTP 500")
	assert.Equal(t, int32(1), atomic.LoadInt32(calls), "no retry")
}

func TestClientSearch_ConnectionRefused(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	c := testClient(ts)
	ts.Close()

	_, err := c.Search(context.Background(), "chorale", 1, 20)
	var ne *NetworkError
	require.True(t, errors.As(err, &ne), "got %v", err)
	assert.Equal(t, 0, ne.StatusCode)
}

func TestClientSearch_InvalidJSON(t *testing.T) {
	ts, _ := rnaTestServer(t, http.StatusOK, `<html>maintenance</html>`, nil)

	_, err := testClient(ts).Search(context.Background(), "chorale", 1, 20)
	var de *DecodeError
	assert.True(t, errors.As(err, &de), "got %v", err)
}

func TestClientSearch_MissingField(t *testing.T) {
	ts, _ := rnaTestServer(t, http.StatusOK, `{"total_results":1,"per_page":20,"association":[]}`, nil)

	_, err := testClient(ts).Search(context.Background(), "chorale", 1, 20)
	var mfe *MissingFieldError
	require.True(t, errors.As(err, &mfe), "got %v", err)
	assert.Equal(t, "total_pages", mfe.Field)
}

func TestClientSearch_ContextCancelled(t *testing.T) {
	ts, _ := rnaTestServer(t, http.StatusOK, twoClubsJSON, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testClient(ts).Search(ctx, "chorale", 1, 20)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewClient_DefaultBaseURL(t *testing.T) {
	c := NewClient(types.ClientConfig{}, nil)
	assert.Equal(t, DefaultBaseURL, c.BaseURL)
	assert.NotNil(t, c.Logger)
}

func TestSearchURL(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"single word", "chorale", DefaultBaseURL + "/chorale?page=2&per_page=10"},
		{"space escaped", "football club", DefaultBaseURL + "/football%20club?page=2&per_page=10"},
		{"accents kept as utf-8", "société", DefaultBaseURL + "/soci%C3%A9t%C3%A9?page=2&per_page=10"},
		{"bare percent", "100%", DefaultBaseURL + "/100%25?page=2&per_page=10"},
		{"percent sequence not decoded", "%41bc", DefaultBaseURL + "/%2541bc?page=2&per_page=10"},
		{"dot dot not cleaned", "..", DefaultBaseURL + "/..?page=2&per_page=10"},
		{"slash stays in segment", "a/../b", DefaultBaseURL + "/a%2F..%2Fb?page=2&per_page=10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SearchURL(DefaultBaseURL, tt.query, 2, 10)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
