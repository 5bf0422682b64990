package price

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jellydator/ttlcache/v3"
	"github.com/rs/zerolog/log"

	"github.com/tokenforge/forge-engine/config"
)

const (
	// PRICE_TTL is the freshness window for cached USD prices. Settlement
	// refreshes and quote polling happen on a faster cadence than this, so a
	// short fixed TTL keeps read quota bounded.
	PRICE_TTL = time.Minute
)

type MarketPricer interface {
	TokenPrice(ctx context.Context, symbol string) (float64, error)
}

// QuotedPricer exposes the on-chain mining price of a token, denominated in
// the chain's native asset.
type QuotedPricer interface {
	MiningPrice(token common.Address) (*big.Int, error)
}

// TokenPriceCache resolves token USD prices with a fixed freshness window.
// A live market price is preferred; for newly launched tokens without market
// listings it falls back to the on-chain mining price converted through the
// native asset's USD price.
type TokenPriceCache struct {
	cache *ttlcache.Cache[common.Address, float64]

	chainID uint64
	tokens  config.TokenStore
	market  MarketPricer
	quoted  QuotedPricer
}

func NewTokenPriceCache(
	ctx context.Context,
	chainID uint64,
	tokens config.TokenStore,
	market MarketPricer,
	quoted QuotedPricer,
) *TokenPriceCache {
	cache := ttlcache.New(
		ttlcache.WithTTL[common.Address, float64](PRICE_TTL),
	)

	c := &TokenPriceCache{
		cache:   cache,
		chainID: chainID,
		tokens:  tokens,
		market:  market,
		quoted:  quoted,
	}

	go cache.Start()
	go func() {
		<-ctx.Done()
		cache.Stop()
	}()
	return c
}

func (c *TokenPriceCache) TokenPriceUSD(ctx context.Context, token common.Address) (float64, error) {
	if item := c.cache.Get(token); item != nil {
		return item.Value(), nil
	}

	price, err := c.marketPrice(ctx, token)
	if err != nil {
		log.Debug().Msgf("No market price for %s, falling back to quoted price: %s", token.Hex(), err)
		price, err = c.quotedPrice(ctx, token)
		if err != nil {
			return 0, err
		}
	}

	c.cache.Set(token, price, ttlcache.DefaultTTL)
	return price, nil
}

func (c *TokenPriceCache) marketPrice(ctx context.Context, token common.Address) (float64, error) {
	symbol, _, err := c.tokens.ConfigByAddress(c.chainID, token)
	if err != nil {
		return 0, err
	}

	return c.market.TokenPrice(ctx, symbol)
}

// quotedPrice derives a USD estimate from the on-chain mining price: unit
// price in native asset times the native asset's USD price.
func (c *TokenPriceCache) quotedPrice(ctx context.Context, token common.Address) (float64, error) {
	unitPrice, err := c.quoted.MiningPrice(token)
	if err != nil {
		return 0, fmt.Errorf("no quoted price for %s: %w", token.Hex(), err)
	}

	native, err := c.tokens.NativeConfig(c.chainID)
	if err != nil {
		return 0, err
	}
	nativeUsd, err := c.TokenPriceUSD(ctx, native.Address)
	if err != nil {
		return 0, err
	}

	price, _ := new(big.Float).Quo(
		new(big.Float).Mul(big.NewFloat(nativeUsd), new(big.Float).SetInt(unitPrice)),
		new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(native.Decimals)), nil)),
	).Float64()
	return price, nil
}

// Refresh drops any cached price for the token and resolves it anew.
func (c *TokenPriceCache) Refresh(ctx context.Context, token common.Address) error {
	c.cache.Delete(token)
	_, err := c.TokenPriceUSD(ctx, token)
	return err
}
