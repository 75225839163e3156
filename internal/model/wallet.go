package model

// ConnectionStatus is the connection state of a wallet.
type ConnectionStatus string

const (
	StatusDisconnected ConnectionStatus = "disconnected"
	StatusConnected    ConnectionStatus = "connected"
)

// AccountRef is an account exposed by a wallet.
type AccountRef struct {
	Address  string `json:"address"`
	WalletID string `json:"walletId"`
}

// WalletHandle is a snapshot of a known wallet.
type WalletHandle struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Status        ConnectionStatus `json:"status"`
	Active        bool             `json:"active"`
	Accounts      []AccountRef     `json:"accounts"`
	ActiveAccount string           `json:"activeAccount,omitempty"`
}

// Connected reports whether the wallet is connected.
func (w WalletHandle) Connected() bool {
	return w.Status == StatusConnected
}

// HasAccount reports whether address belongs to the wallet.
func (w WalletHandle) HasAccount(address string) bool {
	for _, a := range w.Accounts {
		if a.Address == address {
			return true
		}
	}
	return false
}
