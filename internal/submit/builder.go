package submit

import (
	"fmt"

	"github.com/AlexZinkM/asset-minter/internal/model"

	"github.com/algorand/go-algorand-sdk/v2/transaction"
	"github.com/algorand/go-algorand-sdk/v2/types"
)

// AlgorandBuilder builds asset-creation transactions with the Algorand SDK.
// No manager, reserve, freeze or clawback address is set.
type AlgorandBuilder struct{}

func (AlgorandBuilder) BuildAssetCreate(sender string, params model.AssetCreationParams, suggested types.SuggestedParams) (types.Transaction, error) {
	txn, err := transaction.MakeAssetCreateTxn(
		sender,
		nil,
		suggested,
		params.Total,
		params.Decimals,
		params.DefaultFrozen,
		"", "", "", "",
		params.UnitName,
		params.Name,
		"",
		"",
	)
	if err != nil {
		return types.Transaction{}, fmt.Errorf("failed to build asset create transaction: %w", err)
	}
	return txn, nil
}
