package testdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func clearURLs(t *testing.T) {
	t.Setenv(EnvTestDBURL, "")
	t.Setenv(EnvDatabaseURL, "")
	t.Setenv(EnvAppDBURL, "")
}

func TestURLPrecedence(t *testing.T) {
	clearURLs(t)
	assert.Empty(t, URL())

	t.Setenv(EnvAppDBURL, "postgres://app")
	assert.Equal(t, "postgres://app", URL())

	t.Setenv(EnvDatabaseURL, "postgres://generic")
	assert.Equal(t, "postgres://generic", URL())

	t.Setenv(EnvTestDBURL, "postgres://test")
	assert.Equal(t, "postgres://test", URL())
}

func TestOpenSkipsWithoutURL(t *testing.T) {
	clearURLs(t)

	reached := false
	t.Run("inner", func(t *testing.T) {
		Open(t)
		reached = true
	})
	assert.False(t, reached)
}
