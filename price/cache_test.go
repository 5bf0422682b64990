package price_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/suite"

	"github.com/tokenforge/forge-engine/config"
	"github.com/tokenforge/forge-engine/price"
)

var (
	nativeAddress = common.HexToAddress("0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE")
	donutAddress  = common.HexToAddress("0x1886a1eb051c10f20C7386576A6a0716B20B2734")
)

type fakeMarket struct {
	prices map[string]float64
	calls  int
}

func (m *fakeMarket) TokenPrice(ctx context.Context, symbol string) (float64, error) {
	m.calls++
	p, ok := m.prices[symbol]
	if !ok {
		return 0, errors.New("symbol not listed")
	}
	return p, nil
}

type fakeQuoted struct {
	prices map[common.Address]*big.Int
}

func (q *fakeQuoted) MiningPrice(token common.Address) (*big.Int, error) {
	p, ok := q.prices[token]
	if !ok {
		return nil, errors.New("token not mineable")
	}
	return p, nil
}

type TokenPriceCacheTestSuite struct {
	suite.Suite

	market *fakeMarket
	quoted *fakeQuoted
	cache  *price.TokenPriceCache
	cancel context.CancelFunc
}

func TestRunTokenPriceCacheTestSuite(t *testing.T) {
	suite.Run(t, new(TokenPriceCacheTestSuite))
}

func (s *TokenPriceCacheTestSuite) SetupTest() {
	s.market = &fakeMarket{
		prices: map[string]float64{
			"ETH": 2500,
		},
	}
	s.quoted = &fakeQuoted{
		prices: map[common.Address]*big.Int{
			// 0.0002 ETH per unit
			donutAddress: big.NewInt(200000000000000),
		},
	}

	tokens := config.TokenStore{
		Tokens: map[uint64]map[string]config.TokenConfig{
			8453: {
				"ETH":   {Address: nativeAddress, Decimals: 18},
				"DONUT": {Address: donutAddress, Decimals: 18},
			},
		},
		NativeSymbol: "ETH",
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.cache = price.NewTokenPriceCache(ctx, 8453, tokens, s.market, s.quoted)
}

func (s *TokenPriceCacheTestSuite) TearDownTest() {
	s.cancel()
}

func (s *TokenPriceCacheTestSuite) Test_TokenPriceUSD_MarketPrice() {
	p, err := s.cache.TokenPriceUSD(context.Background(), nativeAddress)

	s.Nil(err)
	s.Equal(2500.0, p)
}

func (s *TokenPriceCacheTestSuite) Test_TokenPriceUSD_CachedWithinWindow() {
	_, err := s.cache.TokenPriceUSD(context.Background(), nativeAddress)
	s.Nil(err)
	_, err = s.cache.TokenPriceUSD(context.Background(), nativeAddress)
	s.Nil(err)

	s.Equal(1, s.market.calls)
}

func (s *TokenPriceCacheTestSuite) Test_TokenPriceUSD_QuotedFallback() {
	p, err := s.cache.TokenPriceUSD(context.Background(), donutAddress)

	s.Nil(err)
	// 0.0002 ETH * $2500 = $0.50
	s.InDelta(0.5, p, 0.0001)
}

func (s *TokenPriceCacheTestSuite) Test_TokenPriceUSD_NoPriceAnywhere() {
	unknown := common.HexToAddress("0x9a26F5433671751C3276a065f57e5a02D2817973")

	_, err := s.cache.TokenPriceUSD(context.Background(), unknown)

	s.NotNil(err)
}
