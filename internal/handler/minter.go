package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/AlexZinkM/asset-minter/internal/model"

	"go.uber.org/zap"
)

// Session is the minting workflow exposed over HTTP
type Session interface {
	SelectNetwork(network string) (bool, error)
	ConnectWallet(ctx context.Context, walletID string) error
	DisconnectWallet(ctx context.Context, walletID string) error
	ActivateWallet(walletID string) error
	SelectAccount(ctx context.Context, walletID, address string) error
	Wallets() []model.WalletHandle
	SubmitAssetCreation(ctx context.Context, raw model.RawAssetParams) (model.SubmissionState, error)
	DismissResult() error
	Status() model.StatusResponse
}

// MinterHandler holds the session served by the HTTP API
type MinterHandler struct {
	session Session
	logger  *zap.Logger
}

// NewMinterHandler creates a new MinterHandler
func NewMinterHandler(session Session, logger *zap.Logger) *MinterHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MinterHandler{session: session, logger: logger}
}

// Status handles GET /session/status
// @Summary      Get session status
// @Description  Returns the selected network, wallets and the state of the last asset submission
// @Tags         session
// @Produce      json
// @Success      200  {object}  model.StatusResponse
// @Router       /session/status [get]
func (h *MinterHandler) Status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, h.session.Status())
}

// SelectNetwork handles POST /session/network
// @Summary      Select network
// @Description  Switches the target network (betanet, testnet, mainnet). Selecting the current network changes nothing
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        request  body      model.NetworkRequest  true  "Network"
// @Success      200      {object}  model.StatusResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Router       /session/network [post]
func (h *MinterHandler) SelectNetwork(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.NetworkRequest
	if !decode(w, r, &req) {
		return
	}

	if _, err := h.session.SelectNetwork(req.Network); err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.session.Status())
}

// Wallets handles GET /wallets
// @Summary      List wallets
// @Description  Lists the available wallets with their connection state and accounts
// @Tags         wallets
// @Produce      json
// @Success      200  {object}  model.WalletsResponse
// @Router       /wallets [get]
func (h *MinterHandler) Wallets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, model.WalletsResponse{Wallets: h.session.Wallets()})
}

// Connect handles POST /wallets/connect
// @Summary      Connect wallet
// @Tags         wallets
// @Accept       json
// @Produce      json
// @Param        request  body      model.WalletRequest  true  "Wallet"
// @Success      200      {object}  model.WalletsResponse
// @Failure      404      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Failure      502      {object}  model.ErrorResponse
// @Router       /wallets/connect [post]
func (h *MinterHandler) Connect(w http.ResponseWriter, r *http.Request) {
	h.walletAction(w, r, func(req model.WalletRequest) error {
		return h.session.ConnectWallet(r.Context(), req.WalletID)
	})
}

// Disconnect handles POST /wallets/disconnect
// @Summary      Disconnect wallet
// @Tags         wallets
// @Accept       json
// @Produce      json
// @Param        request  body      model.WalletRequest  true  "Wallet"
// @Success      200      {object}  model.WalletsResponse
// @Failure      404      {object}  model.ErrorResponse
// @Router       /wallets/disconnect [post]
func (h *MinterHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	h.walletAction(w, r, func(req model.WalletRequest) error {
		return h.session.DisconnectWallet(r.Context(), req.WalletID)
	})
}

// Activate handles POST /wallets/activate
// @Summary      Activate wallet
// @Description  Makes a connected wallet the active one
// @Tags         wallets
// @Accept       json
// @Produce      json
// @Param        request  body      model.WalletRequest  true  "Wallet"
// @Success      200      {object}  model.WalletsResponse
// @Failure      409      {object}  model.ErrorResponse
// @Router       /wallets/activate [post]
func (h *MinterHandler) Activate(w http.ResponseWriter, r *http.Request) {
	h.walletAction(w, r, func(req model.WalletRequest) error {
		return h.session.ActivateWallet(req.WalletID)
	})
}

func (h *MinterHandler) walletAction(w http.ResponseWriter, r *http.Request, action func(model.WalletRequest) error) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.WalletRequest
	if !decode(w, r, &req) {
		return
	}

	if err := action(req); err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.WalletsResponse{Wallets: h.session.Wallets()})
}

// SelectAccount handles POST /wallets/account
// @Summary      Select account
// @Description  Sets the active account of a wallet
// @Tags         wallets
// @Accept       json
// @Produce      json
// @Param        request  body      model.AccountRequest  true  "Account"
// @Success      200      {object}  model.WalletsResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /wallets/account [post]
func (h *MinterHandler) SelectAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.AccountRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.session.SelectAccount(r.Context(), req.WalletID, req.Address); err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.WalletsResponse{Wallets: h.session.Wallets()})
}

// CreateAsset handles POST /assets
// @Summary      Create asset
// @Description  Validates the form, signs the asset creation with the active account, submits it and waits for confirmation.
// @Description  A failed attempt is reported in the returned status, not as an HTTP error
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        request  body      model.AssetRequest  true  "Asset"
// @Success      200      {object}  model.StatusResponse
// @Failure      409      {object}  model.ErrorResponse
// @Router       /assets [post]
func (h *MinterHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.AssetRequest
	if !decode(w, r, &req) {
		return
	}

	// a started submission is not cancelled when the client goes away
	if _, err := h.session.SubmitAssetCreation(context.WithoutCancel(r.Context()), req); err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.session.Status())
}

// DismissResult handles POST /assets/dismiss
// @Summary      Dismiss result
// @Description  Returns a finished submission to idle
// @Tags         assets
// @Produce      json
// @Success      200  {object}  model.StatusResponse
// @Failure      409  {object}  model.ErrorResponse
// @Router       /assets/dismiss [post]
func (h *MinterHandler) DismissResult(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	if err := h.session.DismissResult(); err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.session.Status())
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return false
	}
	return true
}

func (h *MinterHandler) writeError(w http.ResponseWriter, err error) {
	kind := model.KindOf(err)
	status := StatusCode(kind)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("kind", string(kind)), zap.Error(err))
	}
	writeJSON(w, status, model.ErrorResponse{Error: err.Error(), Code: string(kind)})
}

// StatusCode maps an error kind to the HTTP status returned for it.
func StatusCode(kind model.ErrorKind) int {
	if kind.IsValidation() {
		return http.StatusUnprocessableEntity
	}
	switch kind {
	case model.KindUnknownWallet:
		return http.StatusNotFound
	case model.KindUnknownAccount, model.KindInvalidNetwork:
		return http.StatusBadRequest
	case model.KindAlreadyConnected, model.KindNotConnected, model.KindNoActiveAccount, model.KindSubmissionInProgress:
		return http.StatusConflict
	case model.KindConnectionError, model.KindNetworkParamsError:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
