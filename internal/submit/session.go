package submit

import (
	"context"

	"github.com/AlexZinkM/asset-minter/internal/model"

	"github.com/algorand/go-algorand-sdk/v2/types"
)

// Ledger is the subset of the algod API the submitter needs.
type Ledger interface {
	SuggestedParams(ctx context.Context) (types.SuggestedParams, error)
	SendRawTransaction(ctx context.Context, signedTxn []byte) (string, error)
	PendingTransactionInfo(ctx context.Context, txID string) (model.TransactionInfo, error)
	Status(ctx context.Context) (uint64, error)
	StatusAfterBlock(ctx context.Context, round uint64) (uint64, error)
}

// Signer signs a transaction on behalf of an account and returns the encoded signed transaction.
type Signer interface {
	SignTransaction(ctx context.Context, txn types.Transaction) ([]byte, error)
}

// Builder constructs the unsigned asset-creation transaction.
type Builder interface {
	BuildAssetCreate(sender string, params model.AssetCreationParams, suggested types.SuggestedParams) (types.Transaction, error)
}

// ParamsValidator turns raw input into creation parameters.
type ParamsValidator interface {
	Validate(raw model.RawAssetParams) (model.AssetCreationParams, error)
}

// Session is the active account a submission runs against.
type Session struct {
	Network  model.Network
	WalletID string
	Sender   string
	Signer   Signer
	Ledger   Ledger
}
