//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Search builds the CLI and runs one search against the live RNA API,
// e.g. RNA_QUERY=chorale mage search.
func Search() error {
	mg.Deps(Build)
	query := "chorale"
	if q := env("RNA_QUERY"); q != "" {
		query = q
	}
	return sh.RunV(binPath(), "search", query, "5", "1")
}
