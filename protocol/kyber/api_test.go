package kyber_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math/big"
	"net/http"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tokenforge/forge-engine/protocol/kyber"
	mock_kyber "github.com/tokenforge/forge-engine/protocol/kyber/mock"
)

// roundTripperFunc allows mocking HTTP transport
type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

var (
	tokenA      = common.HexToAddress("0x9a26F5433671751C3276a065f57e5a02D2817973")
	tokenB      = common.HexToAddress("0x1886a1eb051c10f20C7386576A6a0716B20B2734")
	feeReceiver = common.HexToAddress("0x1886a1eb051c10f20C7386576A6a0716B20B2734")
	taker       = common.HexToAddress("0x6C8A0c210C4C097270FA5df9b799d79A6887b11A")
)

func newAPI(transport http.RoundTripper) *kyber.API {
	api := kyber.NewAPI("https://aggregator.test", "base", "forge", 100, feeReceiver)
	api.HTTPClient = &http.Client{Transport: transport}
	return api
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
		Header:     make(http.Header),
	}
}

func Test_GetPrice_ZeroAmountShortCircuits(t *testing.T) {
	api := newAPI(roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		t.Fatalf("unexpected network call to %s", req.URL)
		return nil, nil
	}))

	quote, err := api.GetPrice(context.Background(), kyber.PriceRequest{
		TokenIn:  tokenA,
		TokenOut: tokenB,
		AmountIn: big.NewInt(0),
	})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if quote.SellAmount.Sign() != 0 || quote.BuyAmount.Sign() != 0 {
		t.Fatalf("expected zero quote, got %+v", quote)
	}
}

func Test_GetPrice_FeeDirection(t *testing.T) {
	tests := []struct {
		name            string
		tokenIn         common.Address
		tokenOut        common.Address
		wantChargeFeeBy string
	}{
		{
			name:            "native input charges fee on input",
			tokenIn:         kyber.NativeAsset,
			tokenOut:        tokenA,
			wantChargeFeeBy: "currency_in",
		},
		{
			name:            "native output charges fee on output",
			tokenIn:         tokenA,
			tokenOut:        kyber.NativeAsset,
			wantChargeFeeBy: "currency_out",
		},
		{
			name:            "token to token sends no fee params",
			tokenIn:         tokenA,
			tokenOut:        tokenB,
			wantChargeFeeBy: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gotQuery map[string][]string
			api := newAPI(roundTripperFunc(func(req *http.Request) (*http.Response, error) {
				gotQuery = req.URL.Query()
				return jsonResponse(http.StatusOK, mock_kyber.RouteMockResponse), nil
			}))

			_, err := api.GetPrice(context.Background(), kyber.PriceRequest{
				TokenIn:  tc.tokenIn,
				TokenOut: tc.tokenOut,
				AmountIn: big.NewInt(1e18),
			})
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}

			chargeFeeBy := ""
			if v, ok := gotQuery["chargeFeeBy"]; ok {
				chargeFeeBy = v[0]
			}
			if chargeFeeBy != tc.wantChargeFeeBy {
				t.Fatalf("expected chargeFeeBy %q, got %q", tc.wantChargeFeeBy, chargeFeeBy)
			}
			if tc.wantChargeFeeBy == "" {
				if _, ok := gotQuery["feeAmount"]; ok {
					t.Fatalf("expected no feeAmount param, got %v", gotQuery["feeAmount"])
				}
			} else {
				if gotQuery["feeAmount"][0] != "100" {
					t.Fatalf("expected feeAmount 100, got %v", gotQuery["feeAmount"])
				}
			}
		})
	}
}

func Test_GetPrice_Responses(t *testing.T) {
	tests := []struct {
		name         string
		mockResponse string
		statusCode   int
		mockError    error
		wantNoRoute  bool
		wantUpstream bool
	}{
		{
			name:         "successful response",
			mockResponse: mock_kyber.RouteMockResponse,
			statusCode:   http.StatusOK,
		},
		{
			name:         "no route code",
			mockResponse: mock_kyber.RouteNotFoundMockResponse,
			statusCode:   http.StatusOK,
			wantNoRoute:  true,
		},
		{
			name:        "not found status",
			statusCode:  http.StatusNotFound,
			wantNoRoute: true,
		},
		{
			name:         "upstream down",
			mockError:    errors.New("connection refused"),
			wantUpstream: true,
		},
		{
			name:         "server error",
			mockResponse: "oops",
			statusCode:   http.StatusInternalServerError,
			wantUpstream: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			api := newAPI(roundTripperFunc(func(req *http.Request) (*http.Response, error) {
				if tc.mockError != nil {
					return nil, tc.mockError
				}
				return jsonResponse(tc.statusCode, tc.mockResponse), nil
			}))

			quote, err := api.GetPrice(context.Background(), kyber.PriceRequest{
				TokenIn:  kyber.NativeAsset,
				TokenOut: tokenA,
				AmountIn: big.NewInt(1e18),
			})
			if tc.wantNoRoute {
				if !errors.Is(err, kyber.ErrNoRoute) {
					t.Fatalf("expected ErrNoRoute, got %v", err)
				}
				return
			}
			if tc.wantUpstream {
				upstream := &kyber.UpstreamError{}
				if !errors.As(err, &upstream) {
					t.Fatalf("expected UpstreamError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}

			if quote.SellAmountUsd == nil || *quote.SellAmountUsd != 2514.15 {
				t.Fatalf("unexpected sellAmountUsd %v", quote.SellAmountUsd)
			}
			if quote.FeeAmount.Sign() == 0 {
				t.Fatalf("expected protocol fee on native input leg")
			}
			if quote.FeeToken != kyber.NativeAsset {
				t.Fatalf("expected fee token to be native asset, got %s", quote.FeeToken)
			}
		})
	}
}

func Test_GetPrice_MissingUsdValues(t *testing.T) {
	api := newAPI(roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, mock_kyber.RouteNoUsdMockResponse), nil
	}))

	quote, err := api.GetPrice(context.Background(), kyber.PriceRequest{
		TokenIn:  tokenA,
		TokenOut: tokenB,
		AmountIn: new(big.Int).Mul(big.NewInt(10), big.NewInt(1e18)),
	})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if quote.SellAmountUsd != nil || quote.BuyAmountUsd != nil {
		t.Fatalf("expected nil USD values for illiquid pair, got %+v", quote)
	}
}

func Test_GetBuildQuote_BindsTransaction(t *testing.T) {
	routeCalls := 0
	api := newAPI(roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if req.Method == http.MethodGet {
			routeCalls++
			return jsonResponse(http.StatusOK, mock_kyber.RouteMockResponse), nil
		}
		return jsonResponse(http.StatusOK, mock_kyber.BuildMockResponse), nil
	}))

	req := kyber.BuildRequest{
		PriceRequest: kyber.PriceRequest{
			TokenIn:  kyber.NativeAsset,
			TokenOut: tokenA,
			AmountIn: big.NewInt(1e18),
		},
		SlippageBps: 300,
		Taker:       taker,
	}

	quote, err := api.GetBuildQuote(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if routeCalls != 1 {
		t.Fatalf("expected route to be re-resolved exactly once, got %d", routeCalls)
	}

	// native input requires no allowance
	if _, ok := quote.Spender(); ok {
		t.Fatalf("expected no allowance issue for native input")
	}

	// a changed tuple must be refused
	changed := req
	changed.AmountIn = big.NewInt(2e18)
	if _, err := quote.Transaction(changed); err == nil {
		t.Fatalf("expected stale error for changed amount")
	}
	looser := req
	looser.SlippageBps = 500
	if _, err := quote.Transaction(looser); err == nil {
		t.Fatalf("expected stale error for changed slippage tolerance")
	}

	tx, err := quote.Transaction(req)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if tx.Target != common.HexToAddress("0x6131B5fae19EA4f9D964eAc0408E4408b66337b5") {
		t.Fatalf("unexpected router target %s", tx.Target)
	}
	if tx.Value.Cmp(big.NewInt(1e18)) != 0 {
		t.Fatalf("unexpected transaction value %s", tx.Value)
	}

	// successful consumption invalidates the quote
	if _, err := quote.Transaction(req); err == nil {
		t.Fatalf("expected stale error after consumption")
	}
}

func Test_GetBuildQuote_AllowanceIssueForTokenInput(t *testing.T) {
	api := newAPI(roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if req.Method == http.MethodGet {
			return jsonResponse(http.StatusOK, mock_kyber.RouteMockResponse), nil
		}
		return jsonResponse(http.StatusOK, mock_kyber.BuildMockResponse), nil
	}))

	quote, err := api.GetBuildQuote(context.Background(), kyber.BuildRequest{
		PriceRequest: kyber.PriceRequest{
			TokenIn:  tokenA,
			TokenOut: kyber.NativeAsset,
			AmountIn: big.NewInt(1e18),
		},
		SlippageBps: 200,
		Taker:       taker,
	})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	spender, ok := quote.Spender()
	if !ok {
		t.Fatalf("expected allowance issue for token input")
	}
	if spender != common.HexToAddress("0x6131B5fae19EA4f9D964eAc0408E4408b66337b5") {
		t.Fatalf("unexpected spender %s", spender)
	}
}

func Test_GetBuildQuote_FailedBuildReturnsNoPartialQuote(t *testing.T) {
	api := newAPI(roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if req.Method == http.MethodGet {
			return jsonResponse(http.StatusOK, mock_kyber.RouteMockResponse), nil
		}
		return jsonResponse(http.StatusInternalServerError, "oops"), nil
	}))

	quote, err := api.GetBuildQuote(context.Background(), kyber.BuildRequest{
		PriceRequest: kyber.PriceRequest{
			TokenIn:  kyber.NativeAsset,
			TokenOut: tokenA,
			AmountIn: big.NewInt(1e18),
		},
		SlippageBps: 200,
		Taker:       taker,
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if quote != nil {
		t.Fatalf("expected no partial quote, got %+v", quote)
	}
}
