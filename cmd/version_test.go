package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	origVersion, origGitCommit, origBuildDate := Version, GitCommit, BuildDate
	defer func() {
		Version, GitCommit, BuildDate = origVersion, origGitCommit, origBuildDate
	}()
	Version = "1.2.0"
	GitCommit = "abc123"
	BuildDate = "2026-10-19T12:00:00Z"

	output, err := execute(t, "", "version")

	require.NoError(t, err)
	for _, expected := range []string{
		"Event Finder",
		"Version:    1.2.0",
		"Git commit: abc123",
		"Build date: 2026-10-19T12:00:00Z",
		"Go version:",
		"Platform:",
	} {
		assert.Contains(t, output, expected)
	}
}
