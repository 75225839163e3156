package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMicroAlgosToAlgo(t *testing.T) {
	assert.Equal(t, "0.001000", MicroAlgosToAlgo(1000))
	assert.Equal(t, "0.000000", MicroAlgosToAlgo(0))
	assert.Equal(t, "12.345678", MicroAlgosToAlgo(12345678))
}

func TestAlgoToMicroAlgos(t *testing.T) {
	v, err := AlgoToMicroAlgos("0.001")
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), v)

	v, err = AlgoToMicroAlgos("3")
	require.NoError(t, err)
	assert.Equal(t, uint64(3_000_000), v)

	v, err = AlgoToMicroAlgos("1.123456")
	require.NoError(t, err)
	assert.Equal(t, uint64(1_123_456), v)

	// precision below one microAlgo is refused, not truncated
	_, err = AlgoToMicroAlgos("1.1234567")
	require.Error(t, err)
	_, err = AlgoToMicroAlgos("0.0000001")
	require.Error(t, err)

	_, err = AlgoToMicroAlgos(".")
	require.Error(t, err)

	_, err = AlgoToMicroAlgos("")
	require.Error(t, err)

	_, err = AlgoToMicroAlgos("1.2.3")
	require.Error(t, err)
}
