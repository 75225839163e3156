package submit

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/AlexZinkM/asset-minter/internal/model"

	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/types"
)

var testSender = crypto.GenerateAccount().Address.String()

type fakeLedger struct {
	paramsErr error
	sendErr   error
	statusErr error

	// pending returns the info for the n-th lookup, starting at 1
	pending func(n int) (model.TransactionInfo, error)
	// afterBlock overrides StatusAfterBlock when set
	afterBlock func(ctx context.Context, round uint64) (uint64, error)

	paramsCalls     atomic.Int32
	sendCalls       atomic.Int32
	pendingCalls    atomic.Int32
	afterBlockCalls atomic.Int32
}

func (l *fakeLedger) SuggestedParams(ctx context.Context) (types.SuggestedParams, error) {
	l.paramsCalls.Add(1)
	if l.paramsErr != nil {
		return types.SuggestedParams{}, l.paramsErr
	}
	return types.SuggestedParams{
		FirstRoundValid: 1000,
		LastRoundValid:  2000,
		GenesisID:       "testnet-v1.0",
		GenesisHash:     make([]byte, 32),
		MinFee:          1000,
	}, nil
}

func (l *fakeLedger) SendRawTransaction(ctx context.Context, signedTxn []byte) (string, error) {
	l.sendCalls.Add(1)
	if l.sendErr != nil {
		return "", l.sendErr
	}
	return "TXID", nil
}

func (l *fakeLedger) PendingTransactionInfo(ctx context.Context, txID string) (model.TransactionInfo, error) {
	n := int(l.pendingCalls.Add(1))
	if l.pending == nil {
		return model.TransactionInfo{}, nil
	}
	return l.pending(n)
}

func (l *fakeLedger) Status(ctx context.Context) (uint64, error) {
	if l.statusErr != nil {
		return 0, l.statusErr
	}
	return 1000, nil
}

func (l *fakeLedger) StatusAfterBlock(ctx context.Context, round uint64) (uint64, error) {
	l.afterBlockCalls.Add(1)
	if l.afterBlock != nil {
		return l.afterBlock(ctx, round)
	}
	return round + 1, nil
}

func (l *fakeLedger) calls() int32 {
	return l.paramsCalls.Load() + l.sendCalls.Load() + l.pendingCalls.Load() + l.afterBlockCalls.Load()
}

type fakeSigner struct {
	err     error
	block   chan struct{}
	entered chan struct{}
	calls   atomic.Int32
	once    sync.Once
}

func (s *fakeSigner) SignTransaction(ctx context.Context, txn types.Transaction) ([]byte, error) {
	s.calls.Add(1)
	if s.entered != nil {
		s.once.Do(func() { close(s.entered) })
	}
	if s.block != nil {
		<-s.block
	}
	if s.err != nil {
		return nil, s.err
	}
	return []byte("signed"), nil
}

var errRejected = errors.New("user rejected")

func confirmedAt(n int) func(int) (model.TransactionInfo, error) {
	return func(call int) (model.TransactionInfo, error) {
		if call < n {
			return model.TransactionInfo{}, nil
		}
		return model.TransactionInfo{ConfirmedRound: 1002, AssetIndex: 7777}, nil
	}
}

type failingBuilder struct{ err error }

func (b failingBuilder) BuildAssetCreate(sender string, params model.AssetCreationParams, suggested types.SuggestedParams) (types.Transaction, error) {
	return types.Transaction{}, b.err
}

// fixedValidator accepts any input and returns params
type fixedValidator struct {
	params model.AssetCreationParams
	calls  atomic.Int32
}

func (v *fixedValidator) Validate(raw model.RawAssetParams) (model.AssetCreationParams, error) {
	v.calls.Add(1)
	return v.params, nil
}
