package mock_kyber

const RouteMockResponse = `
{
	"code": 0,
	"message": "successfully",
	"data": {
		"routeSummary": {
			"tokenIn": "0xeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee",
			"amountIn": "1000000000000000000",
			"amountInUsd": "2514.15",
			"tokenOut": "0x9a26f5433671751c3276a065f57e5a02d2817973",
			"amountOut": "4195959308123617487166",
			"amountOutUsd": "2491.68",
			"gas": "253000",
			"gasPrice": "7526775",
			"gasUsd": "0.004",
			"extraFee": {
				"feeAmount": "100",
				"chargeFeeBy": "currency_in",
				"isInBps": true,
				"feeReceiver": "0x1886a1eb051c10f20c7386576a6a0716b20b2734"
			},
			"route": [[]]
		},
		"routerAddress": "0x6131B5fae19EA4f9D964eAc0408E4408b66337b5"
	}
}`

const RouteNoUsdMockResponse = `
{
	"code": 0,
	"message": "successfully",
	"data": {
		"routeSummary": {
			"tokenIn": "0x9a26f5433671751c3276a065f57e5a02d2817973",
			"amountIn": "10000000000000000000",
			"amountInUsd": "",
			"tokenOut": "0x1886a1eb051c10f20c7386576a6a0716b20b2734",
			"amountOut": "532000000000000000",
			"amountOutUsd": "",
			"gas": "410000",
			"extraFee": {
				"feeAmount": "0",
				"chargeFeeBy": "",
				"isInBps": false,
				"feeReceiver": ""
			},
			"route": [[]]
		},
		"routerAddress": "0x6131B5fae19EA4f9D964eAc0408E4408b66337b5"
	}
}`

const RouteNotFoundMockResponse = `
{
	"code": 4008,
	"message": "route not found",
	"data": {}
}`

const BuildMockResponse = `
{
	"code": 0,
	"message": "successfully",
	"data": {
		"amountIn": "1000000000000000000",
		"amountInUsd": "2514.15",
		"amountOut": "4192959308123617487166",
		"amountOutUsd": "2489.91",
		"gas": "253000",
		"gasUsd": "0.004",
		"data": "0xe21fd0e900000000000000000000000000000000000000000000000000000000000000a0",
		"routerAddress": "0x6131B5fae19EA4f9D964eAc0408E4408b66337b5",
		"transactionValue": "1000000000000000000"
	}
}`
