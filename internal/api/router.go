package api

import (
	"net/http"

	_ "github.com/AlexZinkM/asset-minter/docs"
	"github.com/AlexZinkM/asset-minter/internal/handler"

	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRouter sets up router with handlers
func SetupRouter(minterHandler *handler.MinterHandler) http.Handler {
	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Session endpoints
	mux.HandleFunc("/session/status", minterHandler.Status)
	mux.HandleFunc("/session/network", minterHandler.SelectNetwork)

	// Wallet endpoints
	mux.HandleFunc("/wallets", minterHandler.Wallets)
	mux.HandleFunc("/wallets/connect", minterHandler.Connect)
	mux.HandleFunc("/wallets/disconnect", minterHandler.Disconnect)
	mux.HandleFunc("/wallets/activate", minterHandler.Activate)
	mux.HandleFunc("/wallets/account", minterHandler.SelectAccount)

	// Asset endpoints
	mux.HandleFunc("/assets", minterHandler.CreateAsset)
	mux.HandleFunc("/assets/dismiss", minterHandler.DismissResult)

	return mux
}
