package http

import (
	"github.com/gin-gonic/gin"

	"github.com/stellarpath/route-engine/internal/http/httputil"
	"github.com/stellarpath/route-engine/internal/services/market"
)

type PairsHandler struct {
	marketSvc *market.MarketService
}

func NewPairsHandler(marketSvc *market.MarketService) *PairsHandler {
	return &PairsHandler{marketSvc: marketSvc}
}

func (h *PairsHandler) Root() string {
	return "pairs"
}

func (h *PairsHandler) SetRoutes(pub *gin.RouterGroup, _ *gin.RouterGroup, admin *gin.RouterGroup) {
	pub.GET("", h.GetPairs)
	admin.POST("/cache/reset", h.ResetCache)
}

// GetPairs lists the current pair snapshot of every enabled protocol.
func (h *PairsHandler) GetPairs(c *gin.Context) {
	result := make(map[string][]market.PairRecord)
	for protocol, supplier := range h.marketSvc.Suppliers() {
		records, err := supplier.Pairs(c.Request.Context())
		if err != nil {
			httputil.Unavailable(c, err.Error())
			return
		}
		result[protocol.String()] = records
	}
	httputil.Success(c, result)
}

// ResetCache drops the cached pair snapshots so the next routing call
// refetches from the backend.
func (h *PairsHandler) ResetCache(c *gin.Context) {
	h.marketSvc.ResetCaches()
	httputil.Success(c, gin.H{"reset": true})
}
