package handler

import (
	"net/http"
	"strconv"

	"chainmove/internal/domain"
	"chainmove/internal/middleware"
	"chainmove/internal/service"

	"github.com/gin-gonic/gin"
)

type PoolHandler struct {
	poolSvc *service.PoolService
}

func NewPoolHandler(poolSvc *service.PoolService) *PoolHandler {
	return &PoolHandler{poolSvc: poolSvc}
}

// Create opens a new investment pool. Admin only.
func (h *PoolHandler) Create(c *gin.Context) {
	var req struct {
		AssetType          string `json:"asset_type" binding:"required"`
		TargetAmountNgn    int64  `json:"target_amount_ngn"`
		MinContributionNgn int64  `json:"min_contribution_ngn"`
		Description        string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	pool, err := h.poolSvc.CreatePool(service.CreatePoolInput{
		AssetType:          req.AssetType,
		TargetAmountNgn:    req.TargetAmountNgn,
		MinContributionNgn: req.MinContributionNgn,
		Description:        req.Description,
		CreatedByUserID:    middleware.GetUserID(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"pool": pool})
}

func (h *PoolHandler) List(c *gin.Context) {
	pools, err := h.poolSvc.ListPools(middleware.GetUserID(c), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pools": pools})
}

func (h *PoolHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pool id"})
		return
	}
	pool, err := h.poolSvc.GetPool(uint(id), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pool": pool})
}

// Invest commits a contribution. One immediate retry on a transient storage
// conflict, then the client gets a 503 and retries with the same tx_ref.
func (h *PoolHandler) Invest(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pool id"})
		return
	}
	var req struct {
		AmountNgn int64  `json:"amount_ngn" binding:"required"`
		TxRef     string `json:"tx_ref"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := middleware.GetUserID(c)
	investment, err := h.poolSvc.Invest(uint(id), userID, req.AmountNgn, req.TxRef)
	if domain.IsTransientConflict(err) {
		investment, err = h.poolSvc.Invest(uint(id), userID, req.AmountNgn, req.TxRef)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"investment": investment})
}
