package parameters

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestNewFromConfigString(t *testing.T) {
	params, err := NewFromConfigString("board_size=21, queen_to_move ,name=a=b")
	require.NoError(t, err)
	assert.Equal(t, Params{"board_size": "21", "queen_to_move": "", "name": "a=b"}, params)

	params, err = NewFromConfigString("  ")
	require.NoError(t, err)
	assert.Empty(t, params)

	_, err = NewFromConfigString("a=1,,b")
	require.Error(t, err)
	_, err = NewFromConfigString("a=1,a=2")
	require.Error(t, err)
}

func TestPopParamOr(t *testing.T) {
	params, err := NewFromConfigString("size=21,flag,off=false,name=x")
	require.NoError(t, err)

	size, err := PopParamOr(params, "size", 35)
	require.NoError(t, err)
	assert.Equal(t, 21, size)

	missing, err := PopParamOr(params, "missing", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, missing)

	flag, err := PopParamOr(params, "flag", false)
	require.NoError(t, err)
	assert.True(t, flag)

	off, err := PopParamOr(params, "off", true)
	require.NoError(t, err)
	assert.False(t, off)

	require.Error(t, params.CheckEmpty())
	name, err := PopParamOr(params, "name", "")
	require.NoError(t, err)
	assert.Equal(t, "x", name)
	require.NoError(t, params.CheckEmpty())
}

func TestGetParamOrErrors(t *testing.T) {
	params := Params{"size": "big", "flag": "maybe"}
	_, err := GetParamOr(params, "size", 0)
	require.Error(t, err)
	_, err = GetParamOr(params, "flag", false)
	require.Error(t, err)
	// Failed parses don't remove the key.
	_, err = PopParamOr(params, "size", 0)
	require.Error(t, err)
	assert.Contains(t, params, "size")
}
