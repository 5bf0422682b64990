package slippage

import (
	"context"
	"math"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/constraints"

	"github.com/tokenforge/forge-engine/protocol/kyber"
)

const (
	MinToleranceBps = 200
	MaxToleranceBps = 4900

	// bufferPct absorbs price movement between quote and execution. Applied
	// after rounding the impact up so that impacts just under a whole
	// percentage point are never under-buffered.
	bufferPct = 2
)

type PriceSource interface {
	TokenPriceUSD(ctx context.Context, token common.Address) (float64, error)
}

type Trade struct {
	TokenIn          common.Address
	TokenOut         common.Address
	AmountIn         *big.Int
	TokenInDecimals  uint8
	TokenOutDecimals uint8
}

type Estimate struct {
	// ImpactPct is nil when no impact could be computed.
	ImpactPct    *float64
	ToleranceBps uint32
}

// Estimator derives the price impact and an auto-selected slippage tolerance
// for a trade. None of the engine's flows expose a manual slippage control, so
// the tolerance returned here is what gets encoded into the build quote.
type Estimator struct {
	prices PriceSource
}

func NewEstimator(prices PriceSource) *Estimator {
	return &Estimator{
		prices: prices,
	}
}

// Estimate prefers the USD values reported by the aggregator and falls back to
// a locally computed amount*referencePriceUsd estimate when the aggregator did
// not report them, which is common for newly launched, illiquid tokens.
func (e *Estimator) Estimate(ctx context.Context, quote *kyber.PriceQuote, trade Trade) Estimate {
	if quote == nil || trade.AmountIn == nil || trade.AmountIn.Sign() == 0 {
		return Estimate{ToleranceBps: MinToleranceBps}
	}

	inputUsd := e.usdValue(ctx, quote.SellAmountUsd, trade.TokenIn, quote.SellAmount, trade.TokenInDecimals)
	outputUsd := e.usdValue(ctx, quote.BuyAmountUsd, trade.TokenOut, quote.BuyAmount, trade.TokenOutDecimals)
	if inputUsd <= 0 {
		return Estimate{ToleranceBps: MinToleranceBps}
	}

	impact := math.Max(0, (inputUsd-outputUsd)/inputUsd*100)
	tolerancePct := clamp(
		uint32(math.Ceil(impact))+bufferPct,
		MinToleranceBps/100,
		MaxToleranceBps/100,
	)

	return Estimate{
		ImpactPct:    &impact,
		ToleranceBps: tolerancePct * 100,
	}
}

func (e *Estimator) usdValue(
	ctx context.Context,
	reported *float64,
	token common.Address,
	amount *big.Int,
	decimals uint8,
) float64 {
	if reported != nil {
		return *reported
	}
	if amount == nil {
		return 0
	}

	price, err := e.prices.TokenPriceUSD(ctx, token)
	if err != nil {
		log.Warn().Msgf("Failed resolving reference price for %s: %s", token.Hex(), err)
		return 0
	}

	value, _ := new(big.Float).Quo(
		new(big.Float).Mul(big.NewFloat(price), new(big.Float).SetInt(amount)),
		new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)),
	).Float64()
	return value
}

func clamp[T constraints.Ordered](v T, min T, max T) T {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
