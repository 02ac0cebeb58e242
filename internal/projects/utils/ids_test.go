package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProjectID_Format(t *testing.T) {
	re := regexp.MustCompile(`^swot-\d{5}-\d{4}$`)
	for i := 0; i < 50; i++ {
		id, err := NewProjectID()
		require.NoError(t, err)
		assert.Regexp(t, re, id)
	}
}

func TestNewHash(t *testing.T) {
	h, err := NewHash(8)
	require.NoError(t, err)
	assert.Len(t, h, 8)
	assert.Regexp(t, `^[0-9A-Z]{8}$`, h)

	empty, err := NewHash(0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
