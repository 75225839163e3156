package client

import (
	"context"
	"fmt"

	"github.com/AlexZinkM/asset-minter/internal/model"

	"github.com/algorand/go-algorand-sdk/v2/client/v2/algod"
	"github.com/algorand/go-algorand-sdk/v2/types"
)

// AlgodClient is a ledger client for working with an Algorand node
type AlgodClient struct {
	algodClient *algod.Client
	network     model.Network
	url         string
}

// NewAlgodClient creates a new algod client for the given endpoint.
func NewAlgodClient(network model.Network, url, token string) (*AlgodClient, error) {
	c, err := algod.MakeClient(url, token)
	if err != nil {
		return nil, fmt.Errorf("failed to create algod client for %s: %w", network, err)
	}

	return &AlgodClient{
		algodClient: c,
		network:     network,
		url:         url,
	}, nil
}

// Network returns the network the client talks to
func (c *AlgodClient) Network() model.Network {
	return c.network
}

// SuggestedParams gets the current transaction parameters (fee, validity window, genesis)
func (c *AlgodClient) SuggestedParams(ctx context.Context) (types.SuggestedParams, error) {
	params, err := c.algodClient.SuggestedParams().Do(ctx)
	if err != nil {
		return types.SuggestedParams{}, fmt.Errorf("failed to get suggested params: %w", err)
	}
	return params, nil
}

// SendRawTransaction submits a signed msgpack-encoded transaction and returns its id
func (c *AlgodClient) SendRawTransaction(ctx context.Context, signedTxn []byte) (string, error) {
	txID, err := c.algodClient.SendRawTransaction(signedTxn).Do(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to send transaction: %w", err)
	}
	return txID, nil
}

// PendingTransactionInfo gets the pool/confirmation status of a transaction
func (c *AlgodClient) PendingTransactionInfo(ctx context.Context, txID string) (model.TransactionInfo, error) {
	info, _, err := c.algodClient.PendingTransactionInformation(txID).Do(ctx)
	if err != nil {
		return model.TransactionInfo{}, fmt.Errorf("failed to get pending transaction %s: %w", txID, err)
	}
	return model.TransactionInfo{
		ConfirmedRound: info.ConfirmedRound,
		AssetIndex:     info.AssetIndex,
		PoolError:      info.PoolError,
	}, nil
}

// Status returns the last round seen by the node
func (c *AlgodClient) Status(ctx context.Context) (uint64, error) {
	status, err := c.algodClient.Status().Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get node status: %w", err)
	}
	return status.LastRound, nil
}

// StatusAfterBlock waits until the node has passed round and returns its last round
func (c *AlgodClient) StatusAfterBlock(ctx context.Context, round uint64) (uint64, error) {
	status, err := c.algodClient.StatusAfterBlock(round).Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to wait for block %d: %w", round, err)
	}
	return status.LastRound, nil
}
