package wallet

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/AlexZinkM/asset-minter/internal/model"

	"github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeProvider struct {
	id            string
	accounts      []string
	connectErr    error
	disconnectErr error
	setErr        error

	// Connect closes connectEntered, then waits on connectBlock when set
	connectBlock   chan struct{}
	connectEntered chan struct{}

	connectCalls    atomic.Int32
	disconnectCalls atomic.Int32
	mu              sync.Mutex
	selected        string
	events          []ProviderEvent
}

func (p *fakeProvider) ID() string   { return p.id }
func (p *fakeProvider) Name() string { return "Fake " + p.id }

func (p *fakeProvider) Connect(ctx context.Context) ([]string, error) {
	p.connectCalls.Add(1)
	if p.connectEntered != nil {
		close(p.connectEntered)
	}
	if p.connectBlock != nil {
		<-p.connectBlock
	}
	return p.accounts, p.connectErr
}

func (p *fakeProvider) Disconnect(ctx context.Context) error {
	p.disconnectCalls.Add(1)
	return p.disconnectErr
}

func (p *fakeProvider) SetActiveAccount(ctx context.Context, address string) error {
	if p.setErr != nil {
		return p.setErr
	}
	p.mu.Lock()
	p.selected = address
	p.mu.Unlock()
	return nil
}

func (p *fakeProvider) Signer(address string) Signer { return fakeSigner(address) }

// Watch replays the configured events, then blocks.
func (p *fakeProvider) Watch(ctx context.Context, out chan<- ProviderEvent) error {
	for _, ev := range p.events {
		select {
		case out <- ev:
		case <-ctx.Done():
			return nil
		}
	}
	<-ctx.Done()
	return nil
}

type fakeSigner string

func (s fakeSigner) SignTransaction(ctx context.Context, txn types.Transaction) ([]byte, error) {
	return []byte(s), nil
}

type eventLog struct {
	mu     sync.Mutex
	events []Event
}

func (l *eventLog) add(ev Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
}

func (l *eventLog) kinds() []EventKind {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]EventKind, len(l.events))
	for i, ev := range l.events {
		out[i] = ev.Kind
	}
	return out
}

func newTestManager(t *testing.T, providers ...Provider) (*Manager, *eventLog) {
	t.Helper()

	registry, err := NewRegistry(providers...)
	require.NoError(t, err)

	m, err := NewManager(registry, model.NetworkTestnet, zaptest.NewLogger(t))
	require.NoError(t, err)

	log := &eventLog{}
	m.Subscribe(log.add)
	return m, log
}

func handle(t *testing.T, m *Manager, id string) model.WalletHandle {
	t.Helper()
	for _, h := range m.ListWallets() {
		if h.ID == id {
			return h
		}
	}
	t.Fatalf("wallet %s not listed", id)
	return model.WalletHandle{}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	_, err := NewRegistry(&fakeProvider{id: "a"}, &fakeProvider{id: "a"})
	require.Error(t, err)
}

func TestManagerListWallets(t *testing.T) {
	m, _ := newTestManager(t, &fakeProvider{id: "b"}, &fakeProvider{id: "a"})

	wallets := m.ListWallets()
	require.Len(t, wallets, 2)
	assert.Equal(t, "b", wallets[0].ID)
	assert.Equal(t, "a", wallets[1].ID)
	for _, w := range wallets {
		assert.Equal(t, model.StatusDisconnected, w.Status)
		assert.False(t, w.Active)
		assert.Empty(t, w.Accounts)
	}
}

func TestManagerConnect(t *testing.T) {
	a := &fakeProvider{id: "a", accounts: []string{"A1", "A2"}}
	b := &fakeProvider{id: "b", accounts: []string{"B1"}}
	m, log := newTestManager(t, a, b)
	ctx := context.Background()

	require.NoError(t, m.Connect(ctx, "a"))
	h := handle(t, m, "a")
	assert.True(t, h.Connected())
	assert.True(t, h.Active)
	assert.Equal(t, "A1", h.ActiveAccount)
	assert.Equal(t, []model.AccountRef{{Address: "A1", WalletID: "a"}, {Address: "A2", WalletID: "a"}}, h.Accounts)
	assert.Equal(t, []EventKind{EventWalletConnected, EventWalletActivated}, log.kinds())

	// a second wallet does not steal the active slot
	require.NoError(t, m.Connect(ctx, "b"))
	assert.False(t, handle(t, m, "b").Active)
	assert.True(t, handle(t, m, "a").Active)

	err := m.Connect(ctx, "a")
	require.ErrorIs(t, err, model.ErrAlreadyConnected)
	assert.Equal(t, int32(1), a.connectCalls.Load())

	err = m.Connect(ctx, "nope")
	require.ErrorIs(t, err, model.ErrUnknownWallet)
}

func TestManagerConnectFailure(t *testing.T) {
	cause := errors.New("user rejected")
	m, log := newTestManager(t, &fakeProvider{id: "a", connectErr: cause}, &fakeProvider{id: "b"})

	err := m.Connect(context.Background(), "a")
	assert.Equal(t, model.KindConnectionError, model.KindOf(err))
	assert.ErrorIs(t, err, cause)
	assert.False(t, handle(t, m, "a").Connected())
	assert.Empty(t, log.kinds())

	// no accounts is a failed connection too
	err = m.Connect(context.Background(), "b")
	assert.Equal(t, model.KindConnectionError, model.KindOf(err))
}

func TestManagerDisconnect(t *testing.T) {
	a := &fakeProvider{id: "a", accounts: []string{"A1"}}
	m, log := newTestManager(t, a)
	ctx := context.Background()

	require.NoError(t, m.Disconnect(ctx, "a"))
	assert.Empty(t, log.kinds())

	require.NoError(t, m.Connect(ctx, "a"))
	require.NoError(t, m.Disconnect(ctx, "a"))
	require.NoError(t, m.Disconnect(ctx, "a"))

	h := handle(t, m, "a")
	assert.False(t, h.Connected())
	assert.False(t, h.Active)
	assert.Empty(t, h.Accounts)
	assert.Equal(t, []EventKind{EventWalletConnected, EventWalletActivated, EventWalletDisconnected}, log.kinds())

	_, err := m.ActiveAccount()
	require.ErrorIs(t, err, model.ErrNoActiveAccount)
}

func TestManagerDisconnectWhileConnecting(t *testing.T) {
	a := &fakeProvider{id: "a", accounts: []string{"A1"}, connectBlock: make(chan struct{}), connectEntered: make(chan struct{})}
	m, log := newTestManager(t, a)
	ctx := context.Background()

	connected := make(chan error)
	go func() { connected <- m.Connect(ctx, "a") }()
	<-a.connectEntered

	require.NoError(t, m.Disconnect(ctx, "a"))
	require.ErrorIs(t, m.Connect(ctx, "a"), model.ErrAlreadyConnected)

	close(a.connectBlock)
	err := <-connected
	assert.Equal(t, model.KindConnectionError, model.KindOf(err))

	h := handle(t, m, "a")
	assert.Equal(t, model.StatusDisconnected, h.Status)
	assert.False(t, h.Active)
	assert.Empty(t, h.Accounts)
	assert.Equal(t, int32(1), a.disconnectCalls.Load())
	assert.Empty(t, log.kinds())

	_, err = m.ActiveAccount()
	require.ErrorIs(t, err, model.ErrNoActiveAccount)

	// the wallet can be connected again afterwards
	a.connectBlock, a.connectEntered = nil, nil
	require.NoError(t, m.Connect(ctx, "a"))
	assert.True(t, handle(t, m, "a").Connected())
}

func TestManagerDisconnectClearsStateOnProviderFailure(t *testing.T) {
	a := &fakeProvider{id: "a", accounts: []string{"A1"}, disconnectErr: errors.New("gone")}
	m, _ := newTestManager(t, a)

	require.NoError(t, m.Connect(context.Background(), "a"))
	err := m.Disconnect(context.Background(), "a")
	assert.Equal(t, model.KindConnectionError, model.KindOf(err))
	assert.False(t, handle(t, m, "a").Connected())
}

func TestManagerActivate(t *testing.T) {
	m, log := newTestManager(t,
		&fakeProvider{id: "a", accounts: []string{"A1"}},
		&fakeProvider{id: "b", accounts: []string{"B1"}},
		&fakeProvider{id: "c", accounts: []string{"C1"}},
	)
	ctx := context.Background()
	require.NoError(t, m.Connect(ctx, "a"))
	require.NoError(t, m.Connect(ctx, "b"))

	err := m.Activate("c")
	require.ErrorIs(t, err, model.ErrNotConnected)
	assert.True(t, handle(t, m, "a").Active, "previous active wallet unchanged")

	require.NoError(t, m.Activate("b"))
	active := 0
	for _, w := range m.ListWallets() {
		if w.Active {
			active++
			assert.Equal(t, "b", w.ID)
		}
	}
	assert.Equal(t, 1, active)

	acct, err := m.ActiveAccount()
	require.NoError(t, err)
	assert.Equal(t, "b", acct.WalletID)
	assert.Equal(t, "B1", acct.Address)
	assert.NotNil(t, acct.Signer)

	require.ErrorIs(t, m.Activate("zzz"), model.ErrUnknownWallet)
	assert.Equal(t, EventWalletActivated, log.kinds()[len(log.kinds())-1])
}

func TestManagerSelectAccount(t *testing.T) {
	a := &fakeProvider{id: "a", accounts: []string{"A1", "A2"}}
	m, log := newTestManager(t, a)
	ctx := context.Background()

	require.ErrorIs(t, m.SelectAccount(ctx, "a", "A1"), model.ErrNotConnected)
	require.NoError(t, m.Connect(ctx, "a"))

	err := m.SelectAccount(ctx, "a", "X9")
	require.ErrorIs(t, err, model.ErrUnknownAccount)
	assert.Equal(t, "A1", handle(t, m, "a").ActiveAccount)

	require.NoError(t, m.SelectAccount(ctx, "a", "A2"))
	assert.Equal(t, "A2", handle(t, m, "a").ActiveAccount)
	assert.Equal(t, "A2", a.selected)
	assert.Equal(t, EventAccountSelected, log.kinds()[len(log.kinds())-1])

	a.setErr = errors.New("signer offline")
	err = m.SelectAccount(ctx, "a", "A1")
	assert.Equal(t, model.KindConnectionError, model.KindOf(err))
	assert.Equal(t, "A2", handle(t, m, "a").ActiveAccount)
}

func TestManagerSetNetwork(t *testing.T) {
	m, log := newTestManager(t, &fakeProvider{id: "a"})

	changed, err := m.SetNetwork(model.NetworkTestnet)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Empty(t, log.kinds())

	changed, err = m.SetNetwork(model.NetworkMainnet)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, model.NetworkMainnet, m.Network())
	assert.Equal(t, []EventKind{EventNetworkChanged}, log.kinds())

	_, err = m.SetNetwork("devnet")
	require.ErrorIs(t, err, model.ErrInvalidNetwork)
	assert.Equal(t, model.NetworkMainnet, m.Network())
}

func TestManagerHandleProviderEvent(t *testing.T) {
	m, log := newTestManager(t, &fakeProvider{id: "a", accounts: []string{"A1"}})

	m.HandleProviderEvent(ProviderEvent{WalletID: "a", Kind: ProviderConnected, Accounts: []string{"A1", "A2"}})
	h := handle(t, m, "a")
	assert.True(t, h.Connected())
	assert.True(t, h.Active)

	require.NoError(t, m.SelectAccount(context.Background(), "a", "A2"))

	m.HandleProviderEvent(ProviderEvent{WalletID: "a", Kind: ProviderAccountsChanged, Accounts: []string{"A3", "A1"}})
	h = handle(t, m, "a")
	assert.Equal(t, "A3", h.ActiveAccount, "removed active account falls back to the first")
	assert.Len(t, h.Accounts, 2)

	m.HandleProviderEvent(ProviderEvent{WalletID: "a", Kind: ProviderAccountsChanged, Accounts: []string{"A3", "A1"}})
	m.HandleProviderEvent(ProviderEvent{Kind: ProviderNetworkChanged, Network: model.NetworkBetanet})
	assert.Equal(t, model.NetworkBetanet, m.Network())

	m.HandleProviderEvent(ProviderEvent{WalletID: "a", Kind: ProviderDisconnected})
	assert.False(t, handle(t, m, "a").Connected())

	m.HandleProviderEvent(ProviderEvent{WalletID: "unknown", Kind: ProviderDisconnected})

	assert.Equal(t, []EventKind{
		EventWalletConnected,
		EventWalletActivated,
		EventAccountSelected,
		EventAccountsChanged,
		EventNetworkChanged,
		EventWalletDisconnected,
	}, log.kinds())
}

func TestManagerRunReconcilesNotifications(t *testing.T) {
	a := &fakeProvider{id: "a", events: []ProviderEvent{
		{WalletID: "a", Kind: ProviderConnected, Accounts: []string{"A1"}},
		{WalletID: "a", Kind: ProviderNetworkChanged, Network: model.NetworkMainnet},
	}}
	m, _ := newTestManager(t, a)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- m.Run(ctx) }()

	require.Eventually(t, func() bool {
		return handle(t, m, "a").Connected() && m.Network() == model.NetworkMainnet
	}, time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
