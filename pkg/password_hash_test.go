package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("dropshot-winner-2024")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, CheckPasswordHash("dropshot-winner-2024", hash))
	assert.False(t, CheckPasswordHash("dropshot-winner-2025", hash))
	assert.False(t, CheckPasswordHash("", hash))
}
