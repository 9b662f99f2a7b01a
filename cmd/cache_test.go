package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheCommands_RequireRedis(t *testing.T) {
	useFixture(t)

	for _, args := range [][]string{{"cache", "list"}, {"cache", "clear"}, {"cache", "refresh"}} {
		_, err := execute(t, "", args...)

		assert.ErrorIs(t, err, errCacheDisabled)
	}
}
