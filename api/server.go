package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/tokenforge/forge-engine/api/handlers"
)

func Serve(
	ctx context.Context,
	addr string,
	quoteHandler *handlers.QuoteHandler,
	swapHandler *handlers.SwapHandler,
	treasuryHandler *handlers.TreasuryHandler,
) {
	r := mux.NewRouter()
	r.HandleFunc("/v1/chains/{chainId:[0-9]+}/quotes", quoteHandler.HandleQuote).Methods("POST")
	r.HandleFunc("/v1/chains/{chainId:[0-9]+}/swaps", swapHandler.HandleSwap).Methods("POST")
	r.HandleFunc("/v1/chains/{chainId:[0-9]+}/swaps/status", swapHandler.HandleStatus).Methods("GET")
	r.HandleFunc("/v1/chains/{chainId:[0-9]+}/swaps/resume", swapHandler.HandleResume).Methods("POST")
	r.HandleFunc("/v1/chains/{chainId:[0-9]+}/swaps/reset", swapHandler.HandleReset).Methods("POST")
	r.HandleFunc("/v1/chains/{chainId:[0-9]+}/mines", treasuryHandler.HandleMine).Methods("POST")
	r.HandleFunc("/v1/chains/{chainId:[0-9]+}/buys", treasuryHandler.HandleBuy).Methods("POST")
	r.HandleFunc("/v1/chains/{chainId:[0-9]+}/launches", treasuryHandler.HandleLaunch).Methods("POST")

	server := &http.Server{
		Addr:        addr,
		Handler:     r,
		ReadTimeout: time.Second * 10,
	}
	go func() {
		log.Info().Msgf("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := server.Shutdown(shutdownCtx)
	if err != nil {
		log.Err(err).Msgf("Error shutting down server")
	} else {
		log.Info().Msgf("Server shut down gracefully.")
	}
}
