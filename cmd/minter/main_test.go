package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AlexZinkM/asset-minter/internal/model"
	"github.com/AlexZinkM/asset-minter/minter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	logger, err := newLogger("debug")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	_, err = newLogger("loud")
	require.Error(t, err)
}

func TestKeystoreAddressesCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.cwt")
	addresses, err := minter.GenerateKeystore(path, model.NetworkTestnet, 2, []byte("pw"), model.KDFParams{N: 1 << 4, R: 8, P: 1})
	require.NoError(t, err)

	cmd := newKeystoreCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"addresses", "--file", path})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, addresses, strings.Fields(out.String()))
}

func TestKeystoreGenerateRejectsUnknownNetwork(t *testing.T) {
	cmd := newKeystoreCmd()
	cmd.SetArgs([]string{"generate", "--network", "devnet", "--file", filepath.Join(t.TempDir(), "w.cwt")})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.Execute()
	require.ErrorIs(t, err, model.ErrInvalidNetwork)
}
