package minter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/AlexZinkM/asset-minter/internal/model"
	"github.com/AlexZinkM/asset-minter/internal/submit"
	"github.com/AlexZinkM/asset-minter/internal/wallet"

	"go.uber.org/zap"
)

const (
	msgMinting = "Minting..."
	msgCreated = "Asset Created With ID: %d"
	msgFailed  = "Failed to Mint Token"
)

// LedgerSource resolves the ledger client of a network
type LedgerSource interface {
	For(network model.Network) (submit.Ledger, error)
}

// Minter is the single entry point of the minting workflow: wallet session,
// network selection and asset submission.
type Minter struct {
	wallets   *wallet.Manager
	submitter *submit.Submitter
	ledgers   LedgerSource
	logger    *zap.Logger

	mu    sync.RWMutex
	state model.SubmissionState
}

// New creates a Minter
func New(wallets *wallet.Manager, submitter *submit.Submitter, ledgers LedgerSource, logger *zap.Logger) *Minter {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Minter{
		wallets:   wallets,
		submitter: submitter,
		ledgers:   ledgers,
		logger:    logger,
		state:     model.IdleState(),
	}
	// provider-driven switches obey the same in-flight guard
	wallets.SetNetworkSwitcher(m.switchNetwork)
	return m
}

// SelectNetwork switches the target network. It is refused while a submission is in flight.
func (m *Minter) SelectNetwork(name string) (changed bool, err error) {
	network, err := model.ParseNetwork(name)
	if err != nil {
		return false, err
	}
	return m.switchNetwork(network)
}

func (m *Minter) switchNetwork(network model.Network) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Phase.InFlight() {
		return false, model.ErrSubmissionInProgress
	}
	return m.wallets.SetNetwork(network)
}

func (m *Minter) ConnectWallet(ctx context.Context, walletID string) error {
	return m.wallets.Connect(ctx, walletID)
}

func (m *Minter) DisconnectWallet(ctx context.Context, walletID string) error {
	return m.wallets.Disconnect(ctx, walletID)
}

func (m *Minter) ActivateWallet(walletID string) error {
	return m.wallets.Activate(walletID)
}

func (m *Minter) SelectAccount(ctx context.Context, walletID, address string) error {
	return m.wallets.SelectAccount(ctx, walletID, address)
}

// Wallets returns the wallet snapshot
func (m *Minter) Wallets() []model.WalletHandle {
	return m.wallets.ListWallets()
}

// SubmitAssetCreation runs one asset-creation attempt against the active account and
// the selected network, and returns its terminal state. The attempt replaces any
// previous state. The error is non-nil only if another attempt is in flight.
func (m *Minter) SubmitAssetCreation(ctx context.Context, raw model.RawAssetParams) (model.SubmissionState, error) {
	m.mu.Lock()
	if m.state.Phase.InFlight() {
		m.mu.Unlock()
		return model.SubmissionState{}, model.ErrSubmissionInProgress
	}

	session, err := m.session()
	if err != nil {
		m.state = model.Failed(err)
		m.mu.Unlock()
		m.logger.Warn("asset creation refused", zap.String("kind", string(model.KindOf(err))), zap.Error(err))
		return m.state, nil
	}
	m.state = model.SubmissionState{Phase: model.PhaseValidating}
	m.mu.Unlock()

	state, err := m.submitter.Submit(ctx, session, raw, m.publish)
	if err != nil {
		// another submitter user got there first
		m.mu.Lock()
		m.state = model.IdleState()
		m.mu.Unlock()
		return model.SubmissionState{}, err
	}
	return state, nil
}

// session resolves the active account and the ledger of the selected network. Caller holds m.mu.
func (m *Minter) session() (submit.Session, error) {
	account, err := m.wallets.ActiveAccount()
	if err != nil {
		return submit.Session{}, err
	}

	network := m.wallets.Network()
	ledger, err := m.ledgers.For(network)
	if err != nil {
		return submit.Session{}, fmt.Errorf("failed to get ledger for %s: %w", network, err)
	}

	return submit.Session{
		Network:  network,
		WalletID: account.WalletID,
		Sender:   account.Address,
		Signer:   account.Signer,
		Ledger:   ledger,
	}, nil
}

func (m *Minter) publish(state model.SubmissionState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state
}

// State returns the current submission state
func (m *Minter) State() model.SubmissionState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := m.state
	s.Result = s.Result.Clone()
	return s
}

// DismissResult returns a finished submission to idle.
func (m *Minter) DismissResult() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Phase.InFlight() {
		return model.ErrSubmissionInProgress
	}
	m.state = model.IdleState()
	return nil
}

// Status returns everything the presentation shell displays.
func (m *Minter) Status() model.StatusResponse {
	state := m.State()

	resp := model.StatusResponse{
		Network:  m.wallets.Network(),
		Networks: model.Networks,
		Wallets:  m.wallets.ListWallets(),
		Phase:    state.Phase,
		Message:  Message(state),
		Result:   state.Result,
		Details:  model.NewTransactionDetails(state.Result),
	}
	if state.Phase == model.PhaseFailed {
		resp.ErrorKind = state.Kind()
	}
	return resp
}

// Message is the user-facing text for a submission state. Failures other than
// invalid input collapse into one generic message.
func Message(state model.SubmissionState) string {
	switch {
	case state.Phase.InFlight():
		return msgMinting
	case state.Phase == model.PhaseSucceeded && state.Result != nil:
		return fmt.Sprintf(msgCreated, state.Result.AssetIndex)
	case state.Phase == model.PhaseFailed:
		var e *model.Error
		if errors.As(state.Err, &e) && e.Kind.IsValidation() && e.Err != nil {
			return capitalize(e.Err.Error())
		}
		return msgFailed
	}
	return ""
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
