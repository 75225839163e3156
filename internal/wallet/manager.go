package wallet

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/AlexZinkM/asset-minter/internal/model"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// EventKind is the kind of a session event.
type EventKind string

const (
	EventWalletConnected    EventKind = "wallet_connected"
	EventWalletDisconnected EventKind = "wallet_disconnected"
	EventWalletActivated    EventKind = "wallet_activated"
	EventAccountSelected    EventKind = "account_selected"
	EventAccountsChanged    EventKind = "accounts_changed"
	EventNetworkChanged     EventKind = "network_changed"
)

// Event is a change of the session snapshot.
type Event struct {
	Kind     EventKind
	WalletID string
	Address  string
	Network  model.Network
}

// Account is the active account together with its signer.
type Account struct {
	WalletID string
	Address  string
	Signer   Signer
}

type walletState struct {
	provider      Provider
	status        model.ConnectionStatus
	connecting    bool
	accounts      []string
	activeAccount string

	// set by Disconnect while connecting; the pending Connect tears down instead
	disconnectPending bool
}

// Manager tracks wallets, the active wallet and account, and the selected network.
type Manager struct {
	mu        sync.RWMutex
	registry  *Registry
	wallets   map[string]*walletState
	active    string
	network   model.Network
	listeners []func(Event)
	switcher  func(model.Network) (bool, error)
	logger    *zap.Logger
}

// NewManager creates a Manager over the registry's providers, all disconnected.
func NewManager(registry *Registry, network model.Network, logger *zap.Logger) (*Manager, error) {
	if !network.Valid() {
		return nil, model.Errorf(model.KindInvalidNetwork, "unknown network %q", network)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Manager{
		registry: registry,
		wallets:  make(map[string]*walletState),
		network:  network,
		logger:   logger,
	}
	for _, p := range registry.Providers() {
		m.wallets[p.ID()] = &walletState{provider: p, status: model.StatusDisconnected}
	}
	return m, nil
}

// Subscribe registers fn to be called for every session event.
// fn is called without the manager lock held.
func (m *Manager) Subscribe(fn func(Event)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// SetNetworkSwitcher routes network changes reported by providers through fn
// instead of SetNetwork, so the caller can refuse them.
func (m *Manager) SetNetworkSwitcher(fn func(model.Network) (bool, error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.switcher = fn
}

// ListWallets returns a snapshot of all wallets in registration order.
func (m *Manager) ListWallets() []model.WalletHandle {
	m.mu.RLock()
	defer m.mu.RUnlock()

	providers := m.registry.Providers()
	out := make([]model.WalletHandle, 0, len(providers))
	for _, p := range providers {
		w := m.wallets[p.ID()]
		h := model.WalletHandle{
			ID:            p.ID(),
			Name:          p.Name(),
			Status:        w.status,
			Active:        m.active == p.ID(),
			Accounts:      make([]model.AccountRef, len(w.accounts)),
			ActiveAccount: w.activeAccount,
		}
		for i, a := range w.accounts {
			h.Accounts[i] = model.AccountRef{Address: a, WalletID: p.ID()}
		}
		out = append(out, h)
	}
	return out
}

// Connect connects the wallet. The first account becomes the wallet's active account
// and the wallet becomes active if no other wallet is.
func (m *Manager) Connect(ctx context.Context, walletID string) error {
	m.mu.Lock()
	w, ok := m.wallets[walletID]
	if !ok {
		m.mu.Unlock()
		return model.Errorf(model.KindUnknownWallet, "unknown wallet %q", walletID)
	}
	if w.status == model.StatusConnected || w.connecting {
		m.mu.Unlock()
		return model.ErrAlreadyConnected
	}
	w.connecting = true
	m.mu.Unlock()

	accounts, err := w.provider.Connect(ctx)
	if err == nil && len(accounts) == 0 {
		err = fmt.Errorf("wallet %s exposed no accounts", walletID)
	}

	m.mu.Lock()
	w.connecting = false
	cancelled := w.disconnectPending
	w.disconnectPending = false
	if err != nil {
		m.mu.Unlock()
		m.logger.Warn("wallet connection failed", zap.String("walletId", walletID), zap.Error(err))
		return model.NewError(model.KindConnectionError, err)
	}
	if cancelled {
		m.mu.Unlock()
		if derr := w.provider.Disconnect(ctx); derr != nil {
			m.logger.Warn("wallet disconnect failed", zap.String("walletId", walletID), zap.Error(derr))
		}
		return model.Errorf(model.KindConnectionError, "wallet %s was disconnected while connecting", walletID)
	}
	events := m.connectedLocked(walletID, w, accounts)
	m.mu.Unlock()

	m.emit(events...)
	return nil
}

func (m *Manager) connectedLocked(walletID string, w *walletState, accounts []string) []Event {
	w.status = model.StatusConnected
	w.accounts = slices.Clone(accounts)
	w.activeAccount = accounts[0]

	events := []Event{{Kind: EventWalletConnected, WalletID: walletID, Address: w.activeAccount}}
	if m.active == "" {
		m.active = walletID
		events = append(events, Event{Kind: EventWalletActivated, WalletID: walletID, Address: w.activeAccount})
	}
	return events
}

// Disconnect disconnects the wallet. It is idempotent, and local state is cleared
// even when the provider fails to tear down its side. A wallet that is still
// connecting is torn down by the pending Connect once the provider returns.
func (m *Manager) Disconnect(ctx context.Context, walletID string) error {
	m.mu.Lock()
	w, ok := m.wallets[walletID]
	if !ok {
		m.mu.Unlock()
		return model.Errorf(model.KindUnknownWallet, "unknown wallet %q", walletID)
	}
	if w.connecting {
		w.disconnectPending = true
		m.mu.Unlock()
		m.logger.Debug("disconnect requested while connecting", zap.String("walletId", walletID))
		return nil
	}
	connected := w.status == model.StatusConnected
	m.mu.Unlock()

	if !connected {
		return nil
	}

	providerErr := w.provider.Disconnect(ctx)

	m.mu.Lock()
	events := m.disconnectedLocked(walletID, w)
	m.mu.Unlock()
	m.emit(events...)

	if providerErr != nil {
		m.logger.Warn("wallet disconnect failed", zap.String("walletId", walletID), zap.Error(providerErr))
		return model.NewError(model.KindConnectionError, providerErr)
	}
	return nil
}

func (m *Manager) disconnectedLocked(walletID string, w *walletState) []Event {
	if w.status == model.StatusDisconnected {
		return nil
	}
	w.status = model.StatusDisconnected
	w.accounts = nil
	w.activeAccount = ""
	if m.active == walletID {
		m.active = ""
	}
	return []Event{{Kind: EventWalletDisconnected, WalletID: walletID}}
}

// Activate makes the wallet the active one. The wallet must be connected.
func (m *Manager) Activate(walletID string) error {
	m.mu.Lock()
	w, ok := m.wallets[walletID]
	if !ok {
		m.mu.Unlock()
		return model.Errorf(model.KindUnknownWallet, "unknown wallet %q", walletID)
	}
	if w.status != model.StatusConnected {
		m.mu.Unlock()
		return model.ErrNotConnected
	}
	if m.active == walletID {
		m.mu.Unlock()
		return nil
	}
	m.active = walletID
	ev := Event{Kind: EventWalletActivated, WalletID: walletID, Address: w.activeAccount}
	m.mu.Unlock()

	m.emit(ev)
	return nil
}

// SelectAccount sets the wallet's active account. address must be one of its accounts.
func (m *Manager) SelectAccount(ctx context.Context, walletID, address string) error {
	m.mu.RLock()
	w, ok := m.wallets[walletID]
	if !ok {
		m.mu.RUnlock()
		return model.Errorf(model.KindUnknownWallet, "unknown wallet %q", walletID)
	}
	if w.status != model.StatusConnected {
		m.mu.RUnlock()
		return model.ErrNotConnected
	}
	if !slices.Contains(w.accounts, address) {
		m.mu.RUnlock()
		return model.NewError(model.KindUnknownAccount, fmt.Errorf("account %s does not belong to wallet %s", address, walletID))
	}
	m.mu.RUnlock()

	if err := w.provider.SetActiveAccount(ctx, address); err != nil {
		return model.NewError(model.KindConnectionError, err)
	}

	m.mu.Lock()
	// the account list may have changed while the provider was called
	if w.status != model.StatusConnected || !slices.Contains(w.accounts, address) {
		m.mu.Unlock()
		return model.NewError(model.KindUnknownAccount, fmt.Errorf("account %s does not belong to wallet %s", address, walletID))
	}
	w.activeAccount = address
	m.mu.Unlock()

	m.emit(Event{Kind: EventAccountSelected, WalletID: walletID, Address: address})
	return nil
}

// SetNetwork switches the selected network. Selecting the current network is a
// no-op that emits no event; changed reports whether anything changed.
func (m *Manager) SetNetwork(network model.Network) (changed bool, err error) {
	if !network.Valid() {
		return false, model.Errorf(model.KindInvalidNetwork, "unknown network %q", network)
	}

	m.mu.Lock()
	if m.network == network {
		m.mu.Unlock()
		return false, nil
	}
	m.network = network
	m.mu.Unlock()

	m.emit(Event{Kind: EventNetworkChanged, Network: network})
	return true, nil
}

// Network returns the selected network.
func (m *Manager) Network() model.Network {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.network
}

// ActiveAccount returns the active wallet's active account and its signer.
func (m *Manager) ActiveAccount() (Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.active == "" {
		return Account{}, model.ErrNoActiveAccount
	}
	w := m.wallets[m.active]
	if w.status != model.StatusConnected || w.activeAccount == "" {
		return Account{}, model.ErrNoActiveAccount
	}
	return Account{
		WalletID: m.active,
		Address:  w.activeAccount,
		Signer:   w.provider.Signer(w.activeAccount),
	}, nil
}

// HandleProviderEvent reconciles a provider notification into the snapshot.
func (m *Manager) HandleProviderEvent(ev ProviderEvent) {
	if ev.Kind == ProviderNetworkChanged {
		m.mu.RLock()
		switchNetwork := m.switcher
		m.mu.RUnlock()
		if switchNetwork == nil {
			switchNetwork = m.SetNetwork
		}
		if _, err := switchNetwork(ev.Network); err != nil {
			m.logger.Warn("ignoring network change", zap.String("walletId", ev.WalletID), zap.Error(err))
		}
		return
	}

	m.mu.Lock()
	w, ok := m.wallets[ev.WalletID]
	if !ok {
		m.mu.Unlock()
		m.logger.Warn("event from unknown wallet", zap.String("walletId", ev.WalletID))
		return
	}

	var events []Event
	switch ev.Kind {
	case ProviderConnected:
		if len(ev.Accounts) > 0 {
			if w.status == model.StatusConnected {
				events = m.accountsChangedLocked(ev.WalletID, w, ev.Accounts)
			} else {
				events = m.connectedLocked(ev.WalletID, w, ev.Accounts)
			}
		}
	case ProviderDisconnected:
		events = m.disconnectedLocked(ev.WalletID, w)
	case ProviderAccountsChanged:
		if w.status != model.StatusConnected {
			break
		}
		if len(ev.Accounts) == 0 {
			events = m.disconnectedLocked(ev.WalletID, w)
		} else {
			events = m.accountsChangedLocked(ev.WalletID, w, ev.Accounts)
		}
	}
	m.mu.Unlock()

	m.emit(events...)
}

func (m *Manager) accountsChangedLocked(walletID string, w *walletState, accounts []string) []Event {
	if slices.Equal(w.accounts, accounts) {
		return nil
	}
	w.accounts = slices.Clone(accounts)
	if !slices.Contains(w.accounts, w.activeAccount) {
		w.activeAccount = w.accounts[0]
	}
	return []Event{{Kind: EventAccountsChanged, WalletID: walletID, Address: w.activeAccount}}
}

// Run watches every provider that pushes notifications and reconciles them
// until ctx is done.
func (m *Manager) Run(ctx context.Context) error {
	events := make(chan ProviderEvent)
	g, gctx := errgroup.WithContext(ctx)

	for _, p := range m.registry.Providers() {
		n, ok := p.(Notifier)
		if !ok {
			continue
		}
		id := p.ID()
		g.Go(func() error {
			if err := n.Watch(gctx, events); err != nil {
				return fmt.Errorf("failed to watch wallet %s: %w", id, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case ev := <-events:
				m.HandleProviderEvent(ev)
			}
		}
	})

	return g.Wait()
}

func (m *Manager) emit(events ...Event) {
	if len(events) == 0 {
		return
	}
	m.mu.RLock()
	listeners := slices.Clone(m.listeners)
	m.mu.RUnlock()

	for _, ev := range events {
		m.logger.Debug("session event",
			zap.String("kind", string(ev.Kind)),
			zap.String("walletId", ev.WalletID),
			zap.String("network", ev.Network.String()),
		)
		for _, fn := range listeners {
			fn(ev)
		}
	}
}
