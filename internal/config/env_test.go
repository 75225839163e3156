package config

import (
	"testing"

	"github.com/AlexZinkM/asset-minter/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("KEYSTORE_FILE_PATH", "/tmp/wallet.cwt")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "testnet", c.Network)
	assert.Equal(t, uint64(4), c.ConfirmationRounds)
	assert.Equal(t, 60, c.ConfirmationTimeoutSeconds)
	assert.Equal(t, "0.01", c.MaxFeeAlgo)

	url, err := c.AlgodURL(model.NetworkMainnet)
	require.NoError(t, err)
	assert.Equal(t, "https://mainnet-api.algonode.cloud", url)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Run("unknown network", func(t *testing.T) {
		t.Setenv("KEYSTORE_FILE_PATH", "/tmp/wallet.cwt")
		t.Setenv("NETWORK", "devnet")

		_, err := Load()
		require.Error(t, err)
		assert.Equal(t, model.KindInvalidNetwork, model.KindOf(err))
	})

	t.Run("zero confirmation rounds", func(t *testing.T) {
		t.Setenv("KEYSTORE_FILE_PATH", "/tmp/wallet.cwt")
		t.Setenv("CONFIRMATION_ROUNDS", "0")

		_, err := Load()
		require.Error(t, err)
	})

	t.Run("bad fee cap", func(t *testing.T) {
		t.Setenv("KEYSTORE_FILE_PATH", "/tmp/wallet.cwt")
		t.Setenv("MAX_FEE_ALGO", "lots")

		_, err := Load()
		require.Error(t, err)
	})

	t.Run("zero fee cap", func(t *testing.T) {
		t.Setenv("KEYSTORE_FILE_PATH", "/tmp/wallet.cwt")
		t.Setenv("MAX_FEE_ALGO", "0")

		_, err := Load()
		require.ErrorContains(t, err, "MAX_FEE_ALGO must be greater than 0")
	})

	t.Run("fee cap below one microAlgo", func(t *testing.T) {
		t.Setenv("KEYSTORE_FILE_PATH", "/tmp/wallet.cwt")
		t.Setenv("MAX_FEE_ALGO", "0.0000001")

		_, err := Load()
		require.Error(t, err)
	})

	t.Run("no wallet provider", func(t *testing.T) {
		t.Setenv("KEYSTORE_FILE_PATH", "")
		t.Setenv("REMOTE_SIGNER_URL", "")

		_, err := Load()
		require.Error(t, err)
	})
}

func TestInitAndGetters(t *testing.T) {
	t.Setenv("REMOTE_SIGNER_URL", "http://localhost:9000")
	t.Setenv("NETWORK", "BetaNet")
	t.Setenv("PORT", "9090")
	t.Setenv("MAX_FEE_ALGO", "0.5")

	require.NoError(t, Init())
	assert.Equal(t, "9090", GetPort())
	assert.Equal(t, model.NetworkBetanet, GetNetwork())
	assert.Empty(t, GetKeystoreFilePath())
	assert.Equal(t, uint64(500_000), GetMaxFee())
}

func TestPasswordCopies(t *testing.T) {
	SetPassword([]byte("secret"))

	got, err := GetKeystorePasswordBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("secret"), got)

	clear(got)
	again, err := GetKeystorePasswordBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("secret"), again)
}
