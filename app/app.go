// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package app

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	evmClient "github.com/sygmaprotocol/sygma-core/chains/evm/client"
	"github.com/sygmaprotocol/sygma-core/observability"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/tokenforge/forge-engine/api"
	"github.com/tokenforge/forge-engine/api/handlers"
	"github.com/tokenforge/forge-engine/chains/evm"
	"github.com/tokenforge/forge-engine/chains/evm/calls/contracts"
	"github.com/tokenforge/forge-engine/chains/evm/executor"
	"github.com/tokenforge/forge-engine/config"
	"github.com/tokenforge/forge-engine/health"
	"github.com/tokenforge/forge-engine/metrics"
	"github.com/tokenforge/forge-engine/price"
	"github.com/tokenforge/forge-engine/protocol/kyber"
	"github.com/tokenforge/forge-engine/settlement"
	"github.com/tokenforge/forge-engine/slippage"
)

var Version string

func Run() error {
	var err error

	configFlag := viper.GetString(config.ConfigFlagName)

	var configuration *config.Config
	if strings.ToLower(configFlag) == "env" {
		configuration, err = config.GetConfigFromENV(nil)
		panicOnError(err)
	} else {
		configuration, err = config.GetConfigFromFile(configFlag, nil)
		panicOnError(err)
	}

	logLevel, err := zerolog.ParseLevel(configuration.EngineConfig.LogLevel)
	panicOnError(err)
	observability.ConfigureLogger(logLevel, os.Stdout)

	log.Info().Msg("Successfully loaded configuration")

	go health.StartHealthEndpoint(configuration.EngineConfig.HealthPort)

	mp, err := observability.InitMetricProvider(context.Background(), configuration.EngineConfig.OpenTelemetryCollectorURL)
	panicOnError(err)
	defer func() {
		if err := mp.Shutdown(context.Background()); err != nil {
			log.Error().Msgf("Error shutting down meter provider: %v", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := metric.WithAttributes(
		attribute.String("env", configuration.EngineConfig.Env),
		attribute.String("engineid", configuration.EngineConfig.Id),
		attribute.String("version", Version),
	)
	engineMetrics, err := metrics.NewEngineMetrics(ctx, mp.Meter("engine-metric-provider"), opts)
	panicOnError(err)

	marketAPI := price.NewCoinmarketcapAPI(
		configuration.EngineConfig.CoinmarketcapConfig.Url,
		configuration.EngineConfig.CoinmarketcapConfig.ApiKey)

	tokenStore := config.TokenStore{
		Tokens: make(map[uint64]map[string]config.TokenConfig),
	}
	quoters := make(map[uint64]handlers.Quoter)
	estimators := make(map[uint64]handlers.ImpactEstimator)
	swapExecutors := make(map[uint64]handlers.Executor)
	mineExecutors := make(map[uint64]handlers.Executor)
	buyExecutors := make(map[uint64]handlers.Executor)
	launchExecutors := make(map[uint64]handlers.Executor)
	treasuries := make(map[uint64]handlers.TreasuryCaller)
	reconcilers := make([]*settlement.Reconciler, 0)

	for _, chainConfig := range configuration.ChainConfigs {
		switch chainConfig["type"] {
		case "evm":
			{
				cfg, err := evm.NewEVMConfig(chainConfig)
				panicOnError(err)
				chainID := *cfg.GeneralChainConfig.Id

				tokenStore.Tokens[chainID] = cfg.Tokens
				tokenStore.NativeSymbol = cfg.NativeSymbol

				client, err := evmClient.NewEVMClient(cfg.GeneralChainConfig.Endpoint, nil)
				panicOnError(err)
				rpcClient, err := rpc.Dial(cfg.GeneralChainConfig.Endpoint)
				panicOnError(err)

				treasury := contracts.NewTreasuryContract(client, cfg.Treasury)
				priceCache := price.NewTokenPriceCache(ctx, chainID, tokenStore, marketAPI, treasury)

				aggregator := configuration.EngineConfig.AggregatorConfig
				quoters[chainID] = kyber.NewAPI(
					aggregator.Url,
					cfg.GeneralChainConfig.Name,
					aggregator.ClientID,
					aggregator.FeeBps,
					aggregator.FeeReceiver)
				estimators[chainID] = slippage.NewEstimator(priceCache)

				provider := executor.NewWalletProvider(
					rpcClient,
					cfg.Wallet,
					new(big.Int).SetUint64(chainID),
					time.Duration(cfg.GeneralChainConfig.Blocktime)*time.Second)
				negotiator := executor.NewNegotiator(provider)
				allowances := evm.NewAllowanceReader(client)

				tasks := append(
					priceRefreshTasks(priceCache, cfg.Tokens),
					balanceRefreshTask(client, cfg.Wallet, cfg.Tokens),
				)
				tradeReconciler := settlement.NewReconciler(ctx, settlement.TradeSchedule, tasks...)
				auctionReconciler := settlement.NewReconciler(ctx, settlement.AuctionSchedule, tasks...)
				reconcilers = append(reconcilers, tradeReconciler, auctionReconciler)

				// every action gets its own executor so a pending swap never
				// blocks a mine or launch on the same chain
				swapExecutors[chainID] = executor.NewBatchExecutor(cfg.Wallet, negotiator, tradeReconciler, allowances, engineMetrics)
				mineExecutors[chainID] = executor.NewBatchExecutor(cfg.Wallet, negotiator, tradeReconciler, allowances, engineMetrics)
				buyExecutors[chainID] = executor.NewBatchExecutor(cfg.Wallet, negotiator, auctionReconciler, allowances, engineMetrics)
				launchExecutors[chainID] = executor.NewBatchExecutor(cfg.Wallet, negotiator, tradeReconciler, allowances, engineMetrics)
				treasuries[chainID] = treasury
			}
		default:
			panic(fmt.Errorf("type '%s' not recognized", chainConfig["type"]))
		}
	}
	defer func() {
		for _, r := range reconcilers {
			r.Close()
		}
	}()

	quoteHandler := handlers.NewQuoteHandler(quoters, estimators, &tokenStore)
	swapHandler := handlers.NewSwapHandler(quoters, swapExecutors, estimators, &tokenStore)
	treasuryHandler := handlers.NewTreasuryHandler(treasuries, mineExecutors, buyExecutors, launchExecutors)
	go api.Serve(ctx, configuration.EngineConfig.ApiAddr, quoteHandler, swapHandler, treasuryHandler)

	sysErr := make(chan os.Signal, 1)
	signal.Notify(sysErr,
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGHUP,
		syscall.SIGQUIT)

	log.Info().Msgf("Started engine: %s with PID: %d. Version: v%s", configuration.EngineConfig.Id, os.Getpid(), Version)

	sig := <-sysErr
	log.Info().Msgf("terminating got ` [%v] signal", sig)
	return nil
}

// priceRefreshTasks re-resolves the USD price of every configured token so
// settlement polling observes post-trade prices instead of stale cache hits.
func priceRefreshTasks(cache *price.TokenPriceCache, tokens map[string]config.TokenConfig) []settlement.RefreshFunc {
	tasks := make([]settlement.RefreshFunc, 0, len(tokens))
	for _, token := range tokens {
		address := token.Address
		tasks = append(tasks, func(ctx context.Context) error {
			return cache.Refresh(ctx, address)
		})
	}
	return tasks
}

// balanceRefreshTask re-reads the engine wallet's balance for every configured
// token after a settlement and logs the post-trade state.
func balanceRefreshTask(client evmClient.Client, wallet common.Address, tokens map[string]config.TokenConfig) settlement.RefreshFunc {
	return func(ctx context.Context) error {
		for symbol, token := range tokens {
			balance, err := contracts.NewERC20Contract(client, token.Address).BalanceOf(wallet)
			if err != nil {
				return fmt.Errorf("failed to refresh %s balance: %w", symbol, err)
			}

			log.Debug().Msgf("Wallet %s holds %s %s after settlement", wallet.Hex(), balance.String(), symbol)
		}
		return nil
	}
}

func panicOnError(err error) {
	if err != nil {
		panic(err)
	}
}
