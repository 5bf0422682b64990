package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/tokenforge/forge-engine/api/handlers"
	mock_handlers "github.com/tokenforge/forge-engine/api/handlers/mock"
	"github.com/tokenforge/forge-engine/chains/evm/calls"
	"github.com/tokenforge/forge-engine/chains/evm/executor"
	"github.com/tokenforge/forge-engine/protocol/kyber"
	"github.com/tokenforge/forge-engine/slippage"
)

var (
	takerAddress  = common.HexToAddress("0x1111111111111111111111111111111111111111")
	routerAddress = common.HexToAddress("0x6131B5fae19EA4f9D964eAc0408E4408b66337b5")
)

type SwapHandlerTestSuite struct {
	suite.Suite

	quoter    *mock_handlers.MockQuoter
	executor  *mock_handlers.MockExecutor
	estimator *mock_handlers.MockImpactEstimator
	handler   *handlers.SwapHandler
}

func TestRunSwapHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(SwapHandlerTestSuite))
}

func (s *SwapHandlerTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.quoter = mock_handlers.NewMockQuoter(ctrl)
	s.executor = mock_handlers.NewMockExecutor(ctrl)
	s.estimator = mock_handlers.NewMockImpactEstimator(ctrl)
	s.handler = handlers.NewSwapHandler(
		map[uint64]handlers.Quoter{1: s.quoter},
		map[uint64]handlers.Executor{1: s.executor},
		map[uint64]handlers.ImpactEstimator{1: s.estimator},
		testTokenStore(),
	)
}

func (s *SwapHandlerTestSuite) swapRequest(chainId string, body map[string]interface{}) *http.Request {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/v1/chains/1/swaps", bytes.NewReader(data))
	return mux.SetURLVars(req, map[string]string{
		"chainId": chainId,
	})
}

func (s *SwapHandlerTestSuite) validBody() map[string]interface{} {
	return map[string]interface{}{
		"tokenIn":  usdcAddress.Hex(),
		"tokenOut": unitAddress.Hex(),
		"amountIn": "1000000",
		"taker":    takerAddress.Hex(),
	}
}

func (s *SwapHandlerTestSuite) expectQuote() kyber.BuildRequest {
	priceReq := kyber.PriceRequest{
		TokenIn:         usdcAddress,
		TokenOut:        unitAddress,
		AmountIn:        big.NewInt(1000000),
		TokenInDecimals: 6,
	}
	buildReq := kyber.BuildRequest{
		PriceRequest: priceReq,
		SlippageBps:  400,
		Taker:        takerAddress,
	}

	s.quoter.EXPECT().GetPrice(gomock.Any(), priceReq).Return(&kyber.PriceQuote{
		SellAmount: big.NewInt(1000000),
		BuyAmount:  big.NewInt(420000000),
	}, nil)
	s.estimator.EXPECT().Estimate(gomock.Any(), gomock.Any(), gomock.Any()).Return(slippage.Estimate{
		ToleranceBps: 400,
	})
	return buildReq
}

func (s *SwapHandlerTestSuite) Test_HandleSwap_InvalidBody() {
	req := httptest.NewRequest(http.MethodPost, "/v1/chains/1/swaps", bytes.NewReader([]byte("invalid")))
	req = mux.SetURLVars(req, map[string]string{
		"chainId": "1",
	})
	recorder := httptest.NewRecorder()

	s.handler.HandleSwap(recorder, req)

	s.Equal(http.StatusBadRequest, recorder.Code)
}

func (s *SwapHandlerTestSuite) Test_HandleSwap_ChainNotSupported() {
	recorder := httptest.NewRecorder()

	s.handler.HandleSwap(recorder, s.swapRequest("99", s.validBody()))

	s.Equal(http.StatusBadRequest, recorder.Code)
}

func (s *SwapHandlerTestSuite) Test_HandleSwap_NoRoute() {
	s.executor.EXPECT().State().Return(executor.Idle)
	s.quoter.EXPECT().GetPrice(gomock.Any(), gomock.Any()).Return(nil, kyber.ErrNoRoute)
	recorder := httptest.NewRecorder()

	s.handler.HandleSwap(recorder, s.swapRequest("1", s.validBody()))

	s.Equal(http.StatusNotFound, recorder.Code)
}

func (s *SwapHandlerTestSuite) Test_HandleSwap_BusyExecutorConflicts() {
	s.executor.EXPECT().State().Return(executor.Confirming)
	recorder := httptest.NewRecorder()

	s.handler.HandleSwap(recorder, s.swapRequest("1", s.validBody()))

	s.Equal(http.StatusConflict, recorder.Code)
}

func (s *SwapHandlerTestSuite) Test_HandleSwap_TokenInputNeedsApproval() {
	buildReq := s.expectQuote()
	swapCall := calls.Call{
		Target:  routerAddress,
		Payload: []byte{0x01},
		Value:   big.NewInt(0),
	}
	quote := kyber.NewBuildQuote(
		kyber.PriceQuote{
			SellAmount: big.NewInt(1000000),
			BuyAmount:  big.NewInt(420000000),
		},
		kyber.Issues{
			Allowance: &kyber.AllowanceIssue{Spender: routerAddress},
		},
		buildReq,
		swapCall,
	)
	s.quoter.EXPECT().GetBuildQuote(gomock.Any(), buildReq).Return(quote, nil)

	executed := make(chan []calls.Call, 1)
	s.executor.EXPECT().State().Return(executor.Idle)
	s.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, batch []calls.Call) error {
			executed <- batch
			return nil
		})
	recorder := httptest.NewRecorder()

	s.handler.HandleSwap(recorder, s.swapRequest("1", s.validBody()))

	s.Equal(http.StatusAccepted, recorder.Code)
	select {
	case batch := <-executed:
		s.Len(batch, 2)
		approval, ok := calls.ParseApproval(batch[0])
		s.True(ok)
		s.Equal(usdcAddress, approval.Token)
		s.Equal(routerAddress, approval.Spender)
		s.Equal(big.NewInt(1000000), approval.Amount)
		s.Equal(swapCall, batch[1])
	case <-time.After(time.Second):
		s.Fail("batch was not executed")
	}
}

func (s *SwapHandlerTestSuite) Test_HandleSwap_NativeInputSkipsApproval() {
	priceReq := kyber.PriceRequest{
		TokenIn:         kyber.NativeAsset,
		TokenOut:        unitAddress,
		AmountIn:        big.NewInt(1000000000000000000),
		TokenInDecimals: 18,
	}
	buildReq := kyber.BuildRequest{
		PriceRequest: priceReq,
		SlippageBps:  300,
		Taker:        takerAddress,
	}
	s.quoter.EXPECT().GetPrice(gomock.Any(), priceReq).Return(&kyber.PriceQuote{
		SellAmount: priceReq.AmountIn,
		BuyAmount:  big.NewInt(420000000),
	}, nil)
	s.estimator.EXPECT().Estimate(gomock.Any(), gomock.Any(), gomock.Any()).Return(slippage.Estimate{
		ToleranceBps: 300,
	})

	swapCall := calls.Call{
		Target:  routerAddress,
		Payload: []byte{0x01},
		Value:   priceReq.AmountIn,
	}
	quote := kyber.NewBuildQuote(
		kyber.PriceQuote{
			SellAmount: priceReq.AmountIn,
			BuyAmount:  big.NewInt(420000000),
		},
		kyber.Issues{},
		buildReq,
		swapCall,
	)
	s.quoter.EXPECT().GetBuildQuote(gomock.Any(), buildReq).Return(quote, nil)

	executed := make(chan []calls.Call, 1)
	s.executor.EXPECT().State().Return(executor.Idle)
	s.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, batch []calls.Call) error {
			executed <- batch
			return nil
		})
	recorder := httptest.NewRecorder()

	s.handler.HandleSwap(recorder, s.swapRequest("1", map[string]interface{}{
		"tokenIn":  kyber.NativeAsset.Hex(),
		"tokenOut": unitAddress.Hex(),
		"amountIn": "1000000000000000000",
		"taker":    takerAddress.Hex(),
	}))

	s.Equal(http.StatusAccepted, recorder.Code)
	select {
	case batch := <-executed:
		s.Equal([]calls.Call{swapCall}, batch)
	case <-time.After(time.Second):
		s.Fail("batch was not executed")
	}
}

func (s *SwapHandlerTestSuite) Test_HandleStatus_ReportsSubmission() {
	s.executor.EXPECT().State().Return(executor.Success)
	s.executor.EXPECT().LastSubmission().Return(&executor.Submission{
		Hash: common.HexToHash("0xab01"),
		Mode: executor.ModeAtomic,
	})
	s.executor.EXPECT().LastError().Return(nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/chains/1/swaps/status", nil)
	req = mux.SetURLVars(req, map[string]string{
		"chainId": "1",
	})
	recorder := httptest.NewRecorder()

	s.handler.HandleStatus(recorder, req)

	s.Equal(http.StatusOK, recorder.Code)

	resp := &handlers.SwapStatusResponse{}
	s.Nil(json.Unmarshal(recorder.Body.Bytes(), resp))
	s.Equal(executor.Success, resp.State)
	s.Equal(common.HexToHash("0xab01").Hex(), resp.Identity)
	s.Equal(executor.ModeAtomic, resp.Mode)
	s.Empty(resp.Error)
}

func (s *SwapHandlerTestSuite) Test_HandleResume_NothingToResume() {
	s.executor.EXPECT().Resume(gomock.Any()).Return(executor.ErrNothingToResume)

	req := httptest.NewRequest(http.MethodPost, "/v1/chains/1/swaps/resume", nil)
	req = mux.SetURLVars(req, map[string]string{
		"chainId": "1",
	})
	recorder := httptest.NewRecorder()

	s.handler.HandleResume(recorder, req)

	s.Equal(http.StatusConflict, recorder.Code)
}

func (s *SwapHandlerTestSuite) Test_HandleResume_Accepted() {
	s.executor.EXPECT().Resume(gomock.Any()).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/chains/1/swaps/resume", nil)
	req = mux.SetURLVars(req, map[string]string{
		"chainId": "1",
	})
	recorder := httptest.NewRecorder()

	s.handler.HandleResume(recorder, req)

	s.Equal(http.StatusAccepted, recorder.Code)
}

func (s *SwapHandlerTestSuite) Test_HandleReset_InFlight() {
	s.executor.EXPECT().Reset().Return(errors.New("cannot reset executor with submission in flight"))

	req := httptest.NewRequest(http.MethodPost, "/v1/chains/1/swaps/reset", nil)
	req = mux.SetURLVars(req, map[string]string{
		"chainId": "1",
	})
	recorder := httptest.NewRecorder()

	s.handler.HandleReset(recorder, req)

	s.Equal(http.StatusConflict, recorder.Code)
}

func (s *SwapHandlerTestSuite) Test_HandleReset_Success() {
	s.executor.EXPECT().Reset().Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/chains/1/swaps/reset", nil)
	req = mux.SetURLVars(req, map[string]string{
		"chainId": "1",
	})
	recorder := httptest.NewRecorder()

	s.handler.HandleReset(recorder, req)

	s.Equal(http.StatusOK, recorder.Code)
}
