package wallet

import (
	"context"
	"fmt"

	"github.com/AlexZinkM/asset-minter/internal/model"

	"github.com/algorand/go-algorand-sdk/v2/types"
)

// Signer signs transactions for one account and returns the msgpack-encoded signed transaction.
type Signer interface {
	SignTransaction(ctx context.Context, txn types.Transaction) ([]byte, error)
}

// Provider is a wallet able to expose accounts and sign for them.
type Provider interface {
	ID() string
	Name() string
	// Connect establishes the connection and returns the exposed accounts in order.
	Connect(ctx context.Context) ([]string, error)
	Disconnect(ctx context.Context) error
	SetActiveAccount(ctx context.Context, address string) error
	Signer(address string) Signer
}

// ProviderEventKind is the kind of a provider notification.
type ProviderEventKind string

const (
	ProviderConnected       ProviderEventKind = "connected"
	ProviderDisconnected    ProviderEventKind = "disconnected"
	ProviderAccountsChanged ProviderEventKind = "accounts_changed"
	ProviderNetworkChanged  ProviderEventKind = "network_changed"
)

// ProviderEvent is a change reported by a provider outside an explicit call.
type ProviderEvent struct {
	WalletID string
	Kind     ProviderEventKind
	Accounts []string
	Network  model.Network
}

// Notifier is implemented by providers that push change notifications.
// Watch sends events to out until ctx is done.
type Notifier interface {
	Watch(ctx context.Context, out chan<- ProviderEvent) error
}

// Registry holds the available providers in registration order.
type Registry struct {
	providers []Provider
	byID      map[string]Provider
}

// NewRegistry creates a registry; provider ids must be unique.
func NewRegistry(providers ...Provider) (*Registry, error) {
	r := &Registry{byID: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		if _, ok := r.byID[p.ID()]; ok {
			return nil, fmt.Errorf("duplicate wallet provider id %q", p.ID())
		}
		r.byID[p.ID()] = p
		r.providers = append(r.providers, p)
	}
	return r, nil
}

// Providers returns the providers in registration order.
func (r *Registry) Providers() []Provider {
	out := make([]Provider, len(r.providers))
	copy(out, r.providers)
	return out
}

// Get returns the provider with the given id.
func (r *Registry) Get(id string) (Provider, bool) {
	p, ok := r.byID[id]
	return p, ok
}
