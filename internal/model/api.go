package model

// NetworkRequest represents request for POST /session/network
type NetworkRequest struct {
	Network string `json:"network"`
}

// WalletRequest represents request for POST /wallets/{connect,disconnect,activate}
type WalletRequest struct {
	WalletID string `json:"walletId"`
}

// AccountRequest represents request for POST /wallets/account
type AccountRequest struct {
	WalletID string `json:"walletId"`
	Address  string `json:"address"`
}

// AssetRequest represents request for POST /assets
type AssetRequest = RawAssetParams

// StatusResponse represents response for GET /session/status and POST /assets
type StatusResponse struct {
	Network   Network           `json:"network"`
	Networks  []Network         `json:"networks"`
	Wallets   []WalletHandle    `json:"wallets"`
	Phase     Phase             `json:"phase"`
	Message   string            `json:"message,omitempty"`
	ErrorKind ErrorKind         `json:"errorKind,omitempty"`
	Result    *SubmissionResult `json:"result,omitempty"`
	// Details is the transaction detail view of Result.
	Details *TransactionDetails `json:"details,omitempty"`
}

// TransactionDetails is the result detail shown after a successful mint
type TransactionDetails struct {
	TransactionID  string `json:"transactionId"`
	AssetIndex     uint64 `json:"assetIndex"`
	ConfirmedRound uint64 `json:"confirmedRound"`
}

// NewTransactionDetails returns the display form of a result, or nil if there is none.
func NewTransactionDetails(r *SubmissionResult) *TransactionDetails {
	if r == nil || len(r.TransactionIDs) == 0 {
		return nil
	}
	return &TransactionDetails{
		TransactionID:  r.TransactionIDs[0],
		AssetIndex:     r.AssetIndex,
		ConfirmedRound: r.ConfirmedRound,
	}
}

// WalletsResponse represents response for GET /wallets
type WalletsResponse struct {
	Wallets []WalletHandle `json:"wallets"`
}
