package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLevel(t *testing.T) {
	defer SetLevel("info")

	log := NewLogger("[test]")
	require.NotNil(t, log)

	require.NoError(t, SetLevel("debug"))
	assert.True(t, IsDebug())

	require.NoError(t, SetLevel("Warning"))
	assert.False(t, IsDebug())

	assert.Error(t, SetLevel("chatty"))
}
