package client

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/AlexZinkM/asset-minter/internal/model"

	"github.com/go-resty/resty/v2"
	"github.com/gorilla/websocket"
)

const signerTimeout = 2 * time.Minute // the user confirms signing on the signer side

// ErrSignerRejected is returned when the remote signer refuses a request (HTTP 403).
var ErrSignerRejected = errors.New("request rejected by remote signer")

// SignerEvent is a notification pushed by the remote signer on its event stream
type SignerEvent struct {
	Type     string   `json:"type"`
	Accounts []string `json:"accounts,omitempty"`
	Network  string   `json:"network,omitempty"`
}

type accountsResponse struct {
	Accounts []string `json:"accounts"`
}

type accountRequest struct {
	Address string `json:"address"`
}

type signRequest struct {
	Address string `json:"address"`
	Txn     string `json:"txn"`
}

type signResponse struct {
	SignedTxn string `json:"signedTxn"`
}

// SignerClient is a client for an external signer daemon
type SignerClient struct {
	restClient *resty.Client
	baseURL    string
}

// NewSignerClient creates a new remote signer client
func NewSignerClient(baseURL string) *SignerClient {
	baseURL = strings.TrimRight(baseURL, "/")
	return &SignerClient{
		restClient: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(signerTimeout).
			SetHeader("Content-Type", "application/json"),
		baseURL: baseURL,
	}
}

// Connect asks the signer for access and returns the exposed accounts
func (c *SignerClient) Connect(ctx context.Context) ([]string, error) {
	var out accountsResponse
	if err := c.post(ctx, "/v1/connect", nil, &out); err != nil {
		return nil, err
	}
	if len(out.Accounts) == 0 {
		return nil, errors.New("remote signer exposed no accounts")
	}
	return out.Accounts, nil
}

// Disconnect ends the session with the signer
func (c *SignerClient) Disconnect(ctx context.Context) error {
	return c.post(ctx, "/v1/disconnect", nil, nil)
}

// SetAccount tells the signer which account is active
func (c *SignerClient) SetAccount(ctx context.Context, address string) error {
	return c.post(ctx, "/v1/account", accountRequest{Address: address}, nil)
}

// Sign sends an encoded unsigned transaction and returns the signed bytes
func (c *SignerClient) Sign(ctx context.Context, address string, txn []byte) ([]byte, error) {
	var out signResponse
	req := signRequest{Address: address, Txn: base64.StdEncoding.EncodeToString(txn)}
	if err := c.post(ctx, "/v1/sign", req, &out); err != nil {
		return nil, err
	}

	signed, err := base64.StdEncoding.DecodeString(out.SignedTxn)
	if err != nil {
		return nil, fmt.Errorf("failed to decode signed transaction: %w", err)
	}
	if len(signed) == 0 {
		return nil, errors.New("remote signer returned an empty transaction")
	}
	return signed, nil
}

// DialEvents opens the signer's websocket event stream
func (c *SignerClient) DialEvents(ctx context.Context) (*websocket.Conn, error) {
	u, err := url.Parse(c.baseURL + "/v1/events")
	if err != nil {
		return nil, fmt.Errorf("invalid signer url: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to dial signer events: %w", err)
	}
	return conn, nil
}

func (c *SignerClient) post(ctx context.Context, path string, body, result any) error {
	var errResp model.ErrorResponse

	req := c.restClient.R().
		SetContext(ctx).
		SetError(&errResp).
		ForceContentType("application/json")
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Post(path)
	if resp != nil && resp.StatusCode() == http.StatusForbidden {
		return ErrSignerRejected
	}
	if err != nil {
		return fmt.Errorf("failed to call signer %s: %w", path, err)
	}
	if resp.IsError() {
		if errResp.Error != "" {
			return fmt.Errorf("signer %s: status %d: %s", path, resp.StatusCode(), errResp.Error)
		}
		return fmt.Errorf("signer %s: status %d", path, resp.StatusCode())
	}
	return nil
}
