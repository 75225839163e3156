package submit

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/AlexZinkM/asset-minter/internal/asset"
	"github.com/AlexZinkM/asset-minter/internal/common"
	"github.com/AlexZinkM/asset-minter/internal/model"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

const (
	// DefaultConfirmationRounds matches the wait used by algosdk's waitForConfirmation callers
	DefaultConfirmationRounds  = 4
	DefaultConfirmationTimeout = time.Minute
)

// Submitter runs asset-creation attempts: validate, build, sign, send, confirm.
// Only one attempt runs at a time; a concurrent call is rejected.
type Submitter struct {
	validator ParamsValidator
	builder   Builder
	logger    *zap.Logger
	rounds    uint64
	timeout   time.Duration
	maxFee    uint64 // microAlgos, 0 means no cap
	inFlight  *semaphore.Weighted
	running   atomic.Bool
}

// Option configures a Submitter
type Option func(*Submitter)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Submitter) { s.logger = logger }
}

func WithBuilder(b Builder) Option {
	return func(s *Submitter) { s.builder = b }
}

func WithValidator(v ParamsValidator) Option {
	return func(s *Submitter) { s.validator = v }
}

// WithConfirmationRounds sets how many rounds to wait for confirmation.
func WithConfirmationRounds(rounds uint64) Option {
	return func(s *Submitter) {
		if rounds > 0 {
			s.rounds = rounds
		}
	}
}

// WithConfirmationTimeout bounds the confirmation wait in wall-clock time.
func WithConfirmationTimeout(d time.Duration) Option {
	return func(s *Submitter) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithMaxFee refuses to sign transactions whose fee exceeds maxFee microAlgos. Zero disables the cap.
func WithMaxFee(maxFee uint64) Option {
	return func(s *Submitter) { s.maxFee = maxFee }
}

// NewSubmitter creates a Submitter
func NewSubmitter(opts ...Option) *Submitter {
	s := &Submitter{
		validator: asset.NewValidator(),
		builder:   AlgorandBuilder{},
		logger:    zap.NewNop(),
		rounds:    DefaultConfirmationRounds,
		timeout:   DefaultConfirmationTimeout,
		inFlight:  semaphore.NewWeighted(1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit runs one attempt and returns its terminal state. Every state the attempt
// enters is passed to publish in order, the terminal one last.
// The returned error is non-nil only when the attempt was rejected because another
// one is in flight; publish is not called in that case.
func (s *Submitter) Submit(ctx context.Context, session Session, raw model.RawAssetParams, publish func(model.SubmissionState)) (model.SubmissionState, error) {
	if !s.inFlight.TryAcquire(1) {
		return model.SubmissionState{}, model.ErrSubmissionInProgress
	}
	s.running.Store(true)
	defer func() {
		s.running.Store(false)
		s.inFlight.Release(1)
	}()

	if publish == nil {
		publish = func(model.SubmissionState) {}
	}

	state := s.run(ctx, session, raw, publish)
	publish(state)

	if state.Phase == model.PhaseFailed {
		s.logger.Warn("asset creation failed",
			zap.String("kind", string(state.Kind())),
			zap.String("network", session.Network.String()),
			zap.String("sender", session.Sender),
			zap.Error(state.Err),
		)
	} else {
		s.logger.Info("asset created",
			zap.String("network", session.Network.String()),
			zap.Strings("txIds", state.Result.TransactionIDs),
			zap.Uint64("assetIndex", state.Result.AssetIndex),
			zap.Uint64("confirmedRound", state.Result.ConfirmedRound),
		)
	}
	return state, nil
}

// InFlight reports whether an attempt is running.
func (s *Submitter) InFlight() bool {
	return s.running.Load()
}

func (s *Submitter) run(ctx context.Context, session Session, raw model.RawAssetParams, publish func(model.SubmissionState)) model.SubmissionState {
	publish(model.SubmissionState{Phase: model.PhaseValidating})
	params, err := s.validator.Validate(raw)
	if err != nil {
		return model.Failed(err)
	}

	if session.Sender == "" || session.Signer == nil {
		return model.Failed(model.ErrNoActiveAccount)
	}
	if session.Ledger == nil {
		return model.Failed(model.Errorf(model.KindNetworkParamsError, "no ledger client for network %q", session.Network))
	}

	publish(model.SubmissionState{Phase: model.PhaseSubmitting})

	suggested, err := session.Ledger.SuggestedParams(ctx)
	if err != nil {
		return model.Failed(model.NewError(model.KindNetworkParamsError, err))
	}

	txn, err := s.builder.BuildAssetCreate(session.Sender, params, suggested)
	if err != nil {
		return model.Failed(model.NewError(model.KindTransactionBuildError, err))
	}
	fee := uint64(txn.Fee)
	if s.maxFee > 0 && fee > s.maxFee {
		return model.Failed(model.Errorf(model.KindTransactionBuildError, "fee %s ALGO exceeds the %s ALGO cap",
			common.MicroAlgosToAlgo(fee), common.MicroAlgosToAlgo(s.maxFee)))
	}
	s.logger.Debug("asset create transaction built",
		zap.String("sender", session.Sender),
		zap.String("fee", common.MicroAlgosToAlgo(fee)),
		zap.Uint64("firstValid", uint64(txn.FirstValid)),
		zap.Uint64("lastValid", uint64(txn.LastValid)),
	)

	signed, err := session.Signer.SignTransaction(ctx, txn)
	if err != nil {
		return model.Failed(model.NewError(model.KindSigningRejected, err))
	}

	txID, err := session.Ledger.SendRawTransaction(ctx, signed)
	if err != nil {
		return model.Failed(model.NewError(model.KindSubmissionError, err))
	}

	publish(model.SubmissionState{Phase: model.PhaseAwaitingConfirmation})

	info, err := s.waitForConfirmation(ctx, session.Ledger, txID)
	if err != nil {
		return model.Failed(err)
	}

	return model.Succeeded(model.SubmissionResult{
		TransactionIDs: []string{txID},
		AssetIndex:     info.AssetIndex,
		ConfirmedRound: info.ConfirmedRound,
	})
}

// waitForConfirmation polls the pending pool for at most s.rounds rounds after the
// current one. A pool error fails fast; pending lookups that fail are retried next round.
func (s *Submitter) waitForConfirmation(ctx context.Context, ledger Ledger, txID string) (model.TransactionInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	lastRound, err := ledger.Status(ctx)
	if err != nil {
		return model.TransactionInfo{}, model.NewError(model.KindConfirmationTimeout, fmt.Errorf("failed to get node status: %w", err))
	}

	startRound := lastRound + 1
	for current := startRound; current < startRound+s.rounds; current++ {
		info, err := ledger.PendingTransactionInfo(ctx, txID)
		if err == nil {
			if info.ConfirmedRound > 0 {
				return info, nil
			}
			if info.PoolError != "" {
				return model.TransactionInfo{}, model.Errorf(model.KindSubmissionError, "transaction %s rejected by pool: %s", txID, info.PoolError)
			}
		} else if ctxErr := ctx.Err(); ctxErr != nil {
			return model.TransactionInfo{}, model.NewError(model.KindConfirmationTimeout, errors.Join(ctxErr, err))
		} else {
			s.logger.Debug("pending transaction lookup failed", zap.String("txId", txID), zap.Error(err))
		}

		if _, err := ledger.StatusAfterBlock(ctx, current); err != nil {
			return model.TransactionInfo{}, model.NewError(model.KindConfirmationTimeout, fmt.Errorf("failed waiting for round %d: %w", current, err))
		}
	}

	return model.TransactionInfo{}, model.Errorf(model.KindConfirmationTimeout, "transaction %s not confirmed after %d rounds", txID, s.rounds)
}
