package model

// KeystoreFile represents the encrypted keystore file structure
type KeystoreFile struct {
	Network    string            `json:"network"`
	Accounts   []KeystoreAccount `json:"accounts"`
	KDF        *KDFParams        `json:"kdf,omitempty"`
	Salt       string            `json:"salt"`
	Nonce      string            `json:"nonce"`
	CipherText string            `json:"cipherText"`
}

// KeystoreAccount is the public part of one keystore account
type KeystoreAccount struct {
	Address string `json:"address"`
	QR      string `json:"QR"`
}

// KDFParams are the scrypt parameters used to derive the file key
type KDFParams struct {
	N int `json:"n"`
	R int `json:"r"`
	P int `json:"p"`
}

// WalletData represents decrypted keystore data
type WalletData struct {
	PrivateKeys [][]byte `json:"privateKeys"` // 64-byte ed25519 keys (stored as base64 in JSON)
	CreatedAt   string   `json:"createdAt"`
}

// Addresses returns the account addresses in file order.
func (f *KeystoreFile) Addresses() []string {
	out := make([]string, len(f.Accounts))
	for i, a := range f.Accounts {
		out[i] = a.Address
	}
	return out
}
