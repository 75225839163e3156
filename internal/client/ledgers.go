package client

import (
	"sync"

	"github.com/AlexZinkM/asset-minter/internal/model"
	"github.com/AlexZinkM/asset-minter/internal/submit"
)

// Ledgers lazily creates and caches one algod client per network.
type Ledgers struct {
	mu        sync.Mutex
	endpoints map[model.Network]string
	token     string
	clients   map[model.Network]*AlgodClient
}

// NewLedgers returns a cache over the given per-network algod endpoints.
func NewLedgers(endpoints map[model.Network]string, token string) *Ledgers {
	return &Ledgers{
		endpoints: endpoints,
		token:     token,
		clients:   make(map[model.Network]*AlgodClient),
	}
}

// For returns the ledger client of network.
func (l *Ledgers) For(network model.Network) (submit.Ledger, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if c, ok := l.clients[network]; ok {
		return c, nil
	}

	url, ok := l.endpoints[network]
	if !ok || url == "" {
		return nil, model.Errorf(model.KindInvalidNetwork, "no algod endpoint for network %q", network)
	}

	c, err := NewAlgodClient(network, url, l.token)
	if err != nil {
		return nil, model.NewError(model.KindNetworkParamsError, err)
	}
	l.clients[network] = c
	return c, nil
}
