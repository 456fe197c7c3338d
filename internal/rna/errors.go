// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rna

import "fmt"

// NetworkError reports a failed round trip: the request could not be sent,
// or the API answered with a non-2xx status.
type NetworkError struct {
	URL        string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("RNA API returned HTTP %d for %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("RNA API request %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// DecodeError reports a response body that is not valid JSON, or a field
// whose value cannot be read as an integer.
type DecodeError struct {
	Field string // empty when the whole body failed to decode
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("decoding RNA response field %q: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("decoding RNA response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// MissingFieldError reports a required key absent from the response.
// Index is the position in the association array, or -1 for a top-level key.
type MissingFieldError struct {
	Field string
	Index int
}

func (e *MissingFieldError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("RNA response: association[%d] is missing field %q", e.Index, e.Field)
	}
	return fmt.Sprintf("RNA response is missing field %q", e.Field)
}
