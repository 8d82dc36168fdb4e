package http

import (
	"math/big"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/stellarpath/route-engine/internal/domain"
	"github.com/stellarpath/route-engine/internal/http/httputil"
	"github.com/stellarpath/route-engine/internal/services/market"
	"github.com/stellarpath/route-engine/internal/services/router"
)

type QuoteHandler struct {
	routerSvc *router.RouterService
	network   string
}

func NewQuoteHandler(routerSvc *router.RouterService, network string) *QuoteHandler {
	return &QuoteHandler{routerSvc: routerSvc, network: network}
}

func (h *QuoteHandler) Root() string {
	return "quote"
}

func (h *QuoteHandler) SetRoutes(pub *gin.RouterGroup, _ *gin.RouterGroup, _ *gin.RouterGroup) {
	pub.GET("", h.GetQuote)
	pub.GET("/split", h.GetSplitQuote)
}

type quoteResponse struct {
	Protocol       string   `json:"protocol"`
	TradeType      string   `json:"tradeType"`
	AmountIn       string   `json:"amountIn"`
	AmountOut      string   `json:"amountOut"`
	Path           []string `json:"path"`
	ExecutionPrice string   `json:"executionPrice"`
	PriceImpact    string   `json:"priceImpactPct"`
}

type splitEntryResponse struct {
	Protocol string   `json:"protocol"`
	Path     []string `json:"path"`
	Parts    int      `json:"parts"`
	Amount   string   `json:"amount"`
}

type splitResponse struct {
	TradeType    string               `json:"tradeType"`
	TotalAmount  string               `json:"totalAmount"`
	Distribution []splitEntryResponse `json:"distribution"`
	PriceImpact  string               `json:"priceImpactPct"`
}

// GetQuote returns the single best trade for the requested amount.
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	req, ok := h.parseRequest(c)
	if !ok {
		return
	}

	trade, err := h.routerSvc.Engine().Route(c.Request.Context(), req.amount, req.quoteAsset, req.tradeType)
	if err != nil {
		httputil.InternalError(c, err.Error())
		return
	}
	if trade == nil {
		httputil.NotFound(c, domain.ErrNoRouteFound.Error())
		return
	}

	httputil.Success(c, quoteResponse{
		Protocol:       trade.Protocol.String(),
		TradeType:      trade.TradeType.String(),
		AmountIn:       trade.AmountIn.Quotient().String(),
		AmountOut:      trade.AmountOut.Quotient().String(),
		Path:           trade.Path(),
		ExecutionPrice: formatRatio(trade.ExecutionPrice()),
		PriceImpact:    formatPercent(trade.PriceImpact),
	})
}

// GetSplitQuote returns the optimal distribution of the trade across the
// enabled protocols.
func (h *QuoteHandler) GetSplitQuote(c *gin.Context) {
	req, ok := h.parseRequest(c)
	if !ok {
		return
	}

	plan, err := h.routerSvc.Engine().RouteSplit(c.Request.Context(), req.amount, req.quoteAsset, req.tradeType)
	if err != nil {
		httputil.InternalError(c, err.Error())
		return
	}
	if plan == nil {
		httputil.NotFound(c, domain.ErrNoRouteFound.Error())
		return
	}

	resp := splitResponse{
		TradeType:   plan.TradeType.String(),
		TotalAmount: plan.Amount.String(),
		PriceImpact: formatPercent(plan.PriceImpact),
	}
	for _, entry := range plan.Entries {
		resp.Distribution = append(resp.Distribution, splitEntryResponse{
			Protocol: entry.Protocol.String(),
			Path:     entry.Path,
			Parts:    entry.Parts,
			Amount:   entry.Amount.String(),
		})
	}
	httputil.Success(c, resp)
}

type quoteRequest struct {
	amount     domain.AssetAmount
	quoteAsset domain.Asset
	tradeType  domain.TradeType
}

func (h *QuoteHandler) parseRequest(c *gin.Context) (quoteRequest, bool) {
	assetIn := c.Query("assetIn")
	assetOut := c.Query("assetOut")
	if assetIn == "" || assetOut == "" {
		httputil.BadRequest(c, "assetIn and assetOut are required")
		return quoteRequest{}, false
	}

	raw, ok := new(big.Int).SetString(c.Query("amount"), 10)
	if !ok || raw.Sign() <= 0 {
		httputil.BadRequest(c, "amount must be a positive base-10 integer")
		return quoteRequest{}, false
	}

	tradeType := domain.ExactInput
	if tt := c.Query("tradeType"); tt != "" {
		switch tt {
		case domain.ExactInput.String():
		case domain.ExactOutput.String():
			tradeType = domain.ExactOutput
		default:
			httputil.BadRequest(c, "tradeType must be EXACT_INPUT or EXACT_OUTPUT")
			return quoteRequest{}, false
		}
	}

	in := domain.NewAsset(h.network, assetIn, market.DefaultAssetDecimals)
	out := domain.NewAsset(h.network, assetOut, market.DefaultAssetDecimals)

	req := quoteRequest{tradeType: tradeType}
	if tradeType == domain.ExactInput {
		req.amount = domain.NewAssetAmount(in, raw)
		req.quoteAsset = out
	} else {
		req.amount = domain.NewAssetAmount(out, raw)
		req.quoteAsset = in
	}
	return req, true
}

// formatPercent renders a fraction-of-one impact as a fixed-point percent.
func formatPercent(f domain.Fraction) string {
	num := decimal.NewFromBigInt(f.Numerator(), 0)
	den := decimal.NewFromBigInt(f.Denominator(), 0)
	return num.Div(den).Mul(decimal.NewFromInt(100)).StringFixed(4)
}

// formatRatio renders an exact fraction at the default asset precision.
func formatRatio(f domain.Fraction) string {
	num := decimal.NewFromBigInt(f.Numerator(), 0)
	den := decimal.NewFromBigInt(f.Denominator(), 0)
	return num.Div(den).StringFixed(market.DefaultAssetDecimals)
}
