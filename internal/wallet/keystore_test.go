package wallet

import (
	"context"
	"crypto/ed25519"
	"errors"
	"path/filepath"
	"testing"

	"github.com/AlexZinkM/asset-minter/internal/crypto"
	"github.com/AlexZinkM/asset-minter/internal/model"

	"github.com/algorand/go-algorand-sdk/v2/encoding/msgpack"
	"github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeKeystore(t *testing.T, n int) (string, []string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "wallet.cwt")
	data := &model.WalletData{}
	var accounts []model.KeystoreAccount
	var addresses []string
	for i := 0; i < n; i++ {
		key, err := solana.NewRandomPrivateKey()
		require.NoError(t, err)
		address := types.Address(key.PublicKey()).String()
		data.PrivateKeys = append(data.PrivateKeys, []byte(key))
		accounts = append(accounts, model.KeystoreAccount{Address: address})
		addresses = append(addresses, address)
	}

	kdf := model.KDFParams{N: 1 << 4, R: 8, P: 1}
	require.NoError(t, crypto.EncryptKeystore(path, "testnet", accounts, data, []byte("pw"), kdf))
	return path, addresses
}

func staticPassword(pw string) func() ([]byte, error) {
	return func() ([]byte, error) { return []byte(pw), nil }
}

func TestKeystoreProviderConnect(t *testing.T) {
	path, addresses := writeKeystore(t, 2)
	p := NewKeystoreProvider(path, staticPassword("pw"))

	accounts, err := p.Connect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, addresses, accounts)

	require.NoError(t, p.SetActiveAccount(context.Background(), addresses[1]))
	require.Error(t, p.SetActiveAccount(context.Background(), "OTHER"))
}

func TestKeystoreProviderWrongPassword(t *testing.T) {
	path, _ := writeKeystore(t, 1)

	_, err := NewKeystoreProvider(path, staticPassword("bad")).Connect(context.Background())
	require.ErrorIs(t, err, crypto.ErrInvalidPassword)

	noPassword := errors.New("password not set")
	_, err = NewKeystoreProvider(path, func() ([]byte, error) { return nil, noPassword }).Connect(context.Background())
	require.ErrorIs(t, err, noPassword)
}

func TestKeystoreSignerSignsAlgorandTransaction(t *testing.T) {
	path, addresses := writeKeystore(t, 1)
	p := NewKeystoreProvider(path, staticPassword("pw"))
	_, err := p.Connect(context.Background())
	require.NoError(t, err)

	sender, err := types.DecodeAddress(addresses[0])
	require.NoError(t, err)
	txn := types.Transaction{
		Type: types.PaymentTx,
		Header: types.Header{
			Sender:     sender,
			Fee:        1000,
			FirstValid: 1,
			LastValid:  100,
		},
	}

	signed, err := p.Signer(addresses[0]).SignTransaction(context.Background(), txn)
	require.NoError(t, err)

	var stx types.SignedTxn
	require.NoError(t, msgpack.Decode(signed, &stx))
	assert.Equal(t, types.Address{}, stx.AuthAddr)

	payload := append([]byte("TX"), msgpack.Encode(txn)...)
	assert.True(t, ed25519.Verify(ed25519.PublicKey(sender[:]), payload, stx.Sig[:]))
}

func TestKeystoreSignerLockedAfterDisconnect(t *testing.T) {
	path, addresses := writeKeystore(t, 1)
	p := NewKeystoreProvider(path, staticPassword("pw"))
	_, err := p.Connect(context.Background())
	require.NoError(t, err)
	require.NoError(t, p.Disconnect(context.Background()))

	_, err = p.Signer(addresses[0]).SignTransaction(context.Background(), types.Transaction{})
	require.ErrorIs(t, err, errKeystoreLocked)
}
