package wallet

import (
	"context"
	"fmt"
	"time"

	"github.com/AlexZinkM/asset-minter/internal/client"
	"github.com/AlexZinkM/asset-minter/internal/common"
	"github.com/AlexZinkM/asset-minter/internal/model"

	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/encoding/msgpack"
	"github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	RemoteProviderID = "remote"

	eventsDialWaitTime  = 2 * time.Second
	eventsReconnectWait = 10 * time.Second
)

// SignerAPI is the remote signer protocol as seen by RemoteProvider.
type SignerAPI interface {
	Connect(ctx context.Context) ([]string, error)
	Disconnect(ctx context.Context) error
	SetAccount(ctx context.Context, address string) error
	Sign(ctx context.Context, address string, txn []byte) ([]byte, error)
	DialEvents(ctx context.Context) (*websocket.Conn, error)
}

// RemoteProvider is a wallet living in an external signer daemon.
type RemoteProvider struct {
	name      string
	api       SignerAPI
	logger    *zap.Logger
	reconnect time.Duration
}

// NewRemoteProvider creates a provider talking to the signer through api.
func NewRemoteProvider(name string, api SignerAPI, logger *zap.Logger) *RemoteProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RemoteProvider{name: name, api: api, logger: logger, reconnect: eventsReconnectWait}
}

func (p *RemoteProvider) ID() string   { return RemoteProviderID }
func (p *RemoteProvider) Name() string { return p.name }

func (p *RemoteProvider) Connect(ctx context.Context) ([]string, error) {
	return p.api.Connect(ctx)
}

func (p *RemoteProvider) Disconnect(ctx context.Context) error {
	return p.api.Disconnect(ctx)
}

func (p *RemoteProvider) SetActiveAccount(ctx context.Context, address string) error {
	return p.api.SetAccount(ctx, address)
}

func (p *RemoteProvider) Signer(address string) Signer {
	return &remoteSigner{api: p.api, address: address}
}

// Watch follows the signer's event stream, reconnecting when it drops, until ctx is done.
func (p *RemoteProvider) Watch(ctx context.Context, out chan<- ProviderEvent) error {
	for {
		conn, err := common.ExecuteWithRetry(ctx, p.api.DialEvents,
			common.WithRetryWaitTime(eventsDialWaitTime),
			common.WithIsRetryableError(func(err error) bool {
				return !common.IsContextDoneErr(err)
			}),
		)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			p.logger.Warn("signer event stream unavailable", zap.Error(err))
		} else {
			p.readEvents(ctx, conn, out)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(p.reconnect):
		}
	}
}

func (p *RemoteProvider) readEvents(ctx context.Context, conn *websocket.Conn, out chan<- ProviderEvent) {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}
		conn.Close()
	}()

	for {
		var msg client.SignerEvent
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() == nil {
				p.logger.Info("signer event stream closed", zap.Error(err))
			}
			return
		}

		ev, err := p.toProviderEvent(msg)
		if err != nil {
			p.logger.Warn("ignoring signer event", zap.String("type", msg.Type), zap.Error(err))
			continue
		}

		select {
		case out <- ev:
		case <-ctx.Done():
			return
		}
	}
}

func (p *RemoteProvider) toProviderEvent(msg client.SignerEvent) (ProviderEvent, error) {
	ev := ProviderEvent{WalletID: p.ID(), Accounts: msg.Accounts}
	switch ProviderEventKind(msg.Type) {
	case ProviderConnected:
		ev.Kind = ProviderConnected
	case ProviderDisconnected:
		ev.Kind = ProviderDisconnected
	case ProviderAccountsChanged:
		ev.Kind = ProviderAccountsChanged
	case ProviderNetworkChanged:
		network, err := model.ParseNetwork(msg.Network)
		if err != nil {
			return ProviderEvent{}, err
		}
		ev.Kind = ProviderNetworkChanged
		ev.Network = network
	default:
		return ProviderEvent{}, fmt.Errorf("unknown event type %q", msg.Type)
	}
	return ev, nil
}

type remoteSigner struct {
	api     SignerAPI
	address string
}

// SignTransaction has the signer sign txn and checks that the returned signed
// transaction wraps txn and not something else.
func (s *remoteSigner) SignTransaction(ctx context.Context, txn types.Transaction) ([]byte, error) {
	signed, err := s.api.Sign(ctx, s.address, msgpack.Encode(txn))
	if err != nil {
		return nil, err
	}

	var stx types.SignedTxn
	if err := msgpack.Decode(signed, &stx); err != nil {
		return nil, fmt.Errorf("failed to decode signed transaction: %w", err)
	}
	if got, want := crypto.GetTxID(stx.Txn), crypto.GetTxID(txn); got != want {
		return nil, fmt.Errorf("remote signer returned transaction %s, expected %s", got, want)
	}
	return signed, nil
}
