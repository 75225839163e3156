package wallet

import (
	"context"
	"crypto/ed25519"
	"errors"
	"fmt"
	"sync"

	"github.com/AlexZinkM/asset-minter/internal/crypto"

	"github.com/algorand/go-algorand-sdk/v2/encoding/msgpack"
	"github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/gagliardetto/solana-go"
)

const (
	KeystoreProviderID   = "keystore"
	keystoreProviderName = "Local Keystore"
)

// txnSignPrefix is the domain separator Algorand prepends to signed transaction bytes
var txnSignPrefix = []byte("TX")

var errKeystoreLocked = errors.New("keystore is locked: connect the wallet first")

// KeystoreProvider is a local wallet backed by an encrypted .cwt keystore.
// Keys are decrypted on Connect and wiped on Disconnect.
type KeystoreProvider struct {
	filePath string
	password func() ([]byte, error)

	mu       sync.RWMutex
	accounts []string
	keys     map[string]solana.PrivateKey
}

// NewKeystoreProvider creates a provider for the keystore at filePath.
// password is called on every Connect; the returned slice is zeroed after use.
func NewKeystoreProvider(filePath string, password func() ([]byte, error)) *KeystoreProvider {
	return &KeystoreProvider{filePath: filePath, password: password}
}

func (p *KeystoreProvider) ID() string   { return KeystoreProviderID }
func (p *KeystoreProvider) Name() string { return keystoreProviderName }

func (p *KeystoreProvider) Connect(ctx context.Context) ([]string, error) {
	password, err := p.password()
	if err != nil {
		return nil, err
	}
	defer clear(password)

	file, data, err := crypto.DecryptKeystore(p.filePath, password)
	if err != nil {
		return nil, fmt.Errorf("failed to unlock keystore: %w", err)
	}

	keys := make(map[string]solana.PrivateKey, len(data.PrivateKeys))
	accounts := make([]string, 0, len(data.PrivateKeys))
	for i, raw := range data.PrivateKeys {
		if len(raw) != ed25519.PrivateKeySize {
			wipeKeys(keys)
			return nil, fmt.Errorf("keystore account %d: invalid key length %d", i, len(raw))
		}
		key := solana.PrivateKey(raw)
		address := types.Address(key.PublicKey()).String()
		if address != file.Accounts[i].Address {
			wipeKeys(keys)
			clear(raw)
			return nil, fmt.Errorf("keystore account %d: key does not match address %s", i, file.Accounts[i].Address)
		}
		keys[address] = key
		accounts = append(accounts, address)
	}

	p.mu.Lock()
	wipeKeys(p.keys)
	p.keys = keys
	p.accounts = accounts
	p.mu.Unlock()

	return accounts, nil
}

func (p *KeystoreProvider) Disconnect(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	wipeKeys(p.keys)
	p.keys = nil
	p.accounts = nil
	return nil
}

func (p *KeystoreProvider) SetActiveAccount(ctx context.Context, address string) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if _, ok := p.keys[address]; !ok {
		return fmt.Errorf("account %s is not in the keystore", address)
	}
	return nil
}

func (p *KeystoreProvider) Signer(address string) Signer {
	return &keystoreSigner{provider: p, address: address}
}

type keystoreSigner struct {
	provider *KeystoreProvider
	address  string
}

// SignTransaction signs txn with the account key. A sender other than the
// account is treated as rekeyed to it.
func (s *keystoreSigner) SignTransaction(ctx context.Context, txn types.Transaction) ([]byte, error) {
	s.provider.mu.RLock()
	key, ok := s.provider.keys[s.address]
	if !ok {
		s.provider.mu.RUnlock()
		return nil, errKeystoreLocked
	}
	payload := append(append([]byte{}, txnSignPrefix...), msgpack.Encode(txn)...)
	sig, err := key.Sign(payload)
	signer := types.Address(key.PublicKey())
	s.provider.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	stx := types.SignedTxn{
		Sig: types.Signature(sig),
		Txn: txn,
	}
	if txn.Sender != signer {
		stx.AuthAddr = signer
	}
	return msgpack.Encode(stx), nil
}

func wipeKeys(keys map[string]solana.PrivateKey) {
	for _, k := range keys {
		clear(k)
	}
}
