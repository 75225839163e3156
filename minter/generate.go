package minter

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AlexZinkM/asset-minter/internal/crypto"
	"github.com/AlexZinkM/asset-minter/internal/model"

	"github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/gagliardetto/solana-go"
	"github.com/skip2/go-qrcode"
)

// FileExistsError is an error when file already exists and is not empty
type FileExistsError struct {
	Path string
}

func (e *FileExistsError) Error() string {
	return fmt.Sprintf("file %s is not empty", e.Path)
}

// IsFileExistsError checks if error is FileExistsError
func IsFileExistsError(err error) bool {
	var target *FileExistsError
	return errors.As(err, &target)
}

// GenerateKeystore creates count new Algorand accounts and saves them to a new .cwt keystore.
// Returns the generated addresses on success.
// password must be []byte for security (caller should zero it after use)
func GenerateKeystore(filePath string, network model.Network, count int, password []byte, kdf model.KDFParams) (addresses []string, err error) {
	if filepath.Ext(filePath) != crypto.FileExtension {
		return nil, fmt.Errorf("file must have %s extension", crypto.FileExtension)
	}
	if !network.Valid() {
		return nil, model.Errorf(model.KindInvalidNetwork, "unknown network %q", network)
	}
	if count < 1 {
		return nil, errors.New("at least one account is required")
	}
	if len(password) == 0 {
		return nil, errors.New("password cannot be empty")
	}

	if fileInfo, err := os.Stat(filePath); err == nil && fileInfo.Size() > 0 {
		return nil, &FileExistsError{Path: filePath}
	}

	walletData := &model.WalletData{CreatedAt: time.Now().Format(time.RFC3339)}
	defer func() {
		for _, k := range walletData.PrivateKeys {
			clear(k)
		}
	}()

	accounts := make([]model.KeystoreAccount, 0, count)
	for i := 0; i < count; i++ {
		key, err := solana.NewRandomPrivateKey()
		if err != nil {
			return nil, fmt.Errorf("failed to generate key: %w", err)
		}
		walletData.PrivateKeys = append(walletData.PrivateKeys, key)

		address := types.Address(key.PublicKey()).String()
		qrCode, err := generateQRCode(address)
		if err != nil {
			return nil, fmt.Errorf("failed to generate QR code: %w", err)
		}

		accounts = append(accounts, model.KeystoreAccount{Address: address, QR: qrCode})
		addresses = append(addresses, address)
	}

	if err := crypto.EncryptKeystore(filePath, network.String(), accounts, walletData, password, kdf); err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, &FileExistsError{Path: filePath}
		}
		return nil, fmt.Errorf("failed to encrypt keystore: %w", err)
	}

	return addresses, nil
}

// generateQRCode generates QR code of address in base64
func generateQRCode(address string) (string, error) {
	qr, err := qrcode.New(address, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}

	png, err := qr.PNG(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}

	return base64.StdEncoding.EncodeToString(png), nil
}
