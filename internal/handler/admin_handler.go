package handler

import (
	"net/http"
	"strconv"
	"time"

	"chainmove/internal/domain"
	"chainmove/internal/middleware"
	"chainmove/internal/models"
	"chainmove/internal/repository"
	"chainmove/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	users        *repository.UserRepository
	pools        *repository.PoolRepository
	contracts    *repository.ContractRepository
	transactions *repository.TransactionRepository
	settingsSvc  *service.SettingsService
	contractSvc  *service.ContractService
	walletSvc    *service.WalletService
}

func NewAdminHandler(
	users *repository.UserRepository,
	pools *repository.PoolRepository,
	contracts *repository.ContractRepository,
	transactions *repository.TransactionRepository,
	settingsSvc *service.SettingsService,
	contractSvc *service.ContractService,
	walletSvc *service.WalletService,
) *AdminHandler {
	return &AdminHandler{
		users:        users,
		pools:        pools,
		contracts:    contracts,
		transactions: transactions,
		settingsSvc:  settingsSvc,
		contractSvc:  contractSvc,
		walletSvc:    walletSvc,
	}
}

func (h *AdminHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsSvc.Get()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	var req struct {
		MinimumContributionNgn        int64   `json:"minimum_contribution_ngn"`
		PlatformFeeRateBps            int     `json:"platform_fee_rate_bps"`
		DefaultRepaymentDurationWeeks int     `json:"default_repayment_duration_weeks"`
		DefaultRoiPercent             float64 `json:"default_roi_percent"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	settings, err := h.settingsSvc.Update(service.UpdateSettingsInput{
		MinimumContributionNgn:        req.MinimumContributionNgn,
		PlatformFeeRateBps:            req.PlatformFeeRateBps,
		DefaultRepaymentDurationWeeks: req.DefaultRepaymentDurationWeeks,
		DefaultRoiPercent:             req.DefaultRoiPercent,
		UpdatedByUserID:               middleware.GetUserID(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// Stats is the admin dashboard rollup.
func (h *AdminHandler) Stats(c *gin.Context) {
	investorCount, err := h.users.CountByRole(domain.RoleInvestor)
	if err != nil {
		respondError(c, err)
		return
	}
	driverCount, err := h.users.CountByRole(domain.RoleDriver)
	if err != nil {
		respondError(c, err)
		return
	}
	openPools, err := h.pools.CountByStatus(domain.PoolStatusOpen)
	if err != nil {
		respondError(c, err)
		return
	}
	fundedPools, err := h.pools.CountByStatus(domain.PoolStatusFunded)
	if err != nil {
		respondError(c, err)
		return
	}
	activeContracts, err := h.contracts.CountByStatus(domain.ContractStatusActive)
	if err != nil {
		respondError(c, err)
		return
	}
	completedContracts, err := h.contracts.CountByStatus(domain.ContractStatusCompleted)
	if err != nil {
		respondError(c, err)
		return
	}
	totalInvested, err := h.transactions.SumCompletedByType(models.TxTypePoolInvestment)
	if err != nil {
		respondError(c, err)
		return
	}
	totalRepaid, err := h.transactions.SumCompletedByType(models.TxTypeRepayment)
	if err != nil {
		respondError(c, err)
		return
	}
	totalReturned, err := h.transactions.SumCompletedByType(models.TxTypeReturn)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"investors":           investorCount,
		"drivers":             driverCount,
		"open_pools":          openPools,
		"funded_pools":        fundedPools,
		"active_contracts":    activeContracts,
		"completed_contracts": completedContracts,
		"total_invested_ngn":  totalInvested,
		"total_repaid_ngn":    totalRepaid,
		"total_returned_ngn":  totalReturned,
	})
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit < 1 || limit > 200 {
		limit = 50
	}
	users, total, err := h.users.List(c.Query("role"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "total": total})
}

// PromoteUser changes a user's role. The only path to an admin role besides
// the seed account.
func (h *AdminHandler) PromoteUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	switch req.Role {
	case domain.RoleInvestor, domain.RoleDriver, domain.RoleAdmin:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unrecognized role"})
		return
	}
	if err := h.users.UpdateRole(uint(id), req.Role); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (h *AdminHandler) CreateContract(c *gin.Context) {
	var req struct {
		DriverUserID       uint    `json:"driver_user_id" binding:"required"`
		PoolID             uint    `json:"pool_id" binding:"required"`
		VehicleDisplayName string  `json:"vehicle_display_name"`
		DepositNgn         int64   `json:"deposit_ngn"`
		DurationWeeks      int     `json:"duration_weeks"`
		RoiPercent         float64 `json:"roi_percent"`
		StartDate          string  `json:"start_date"` // RFC 3339, optional
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var start time.Time
	if req.StartDate != "" {
		var err error
		start, err = time.Parse(time.RFC3339, req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be RFC 3339"})
			return
		}
	}
	contract, err := h.contractSvc.CreateContract(service.CreateContractInput{
		DriverUserID:       req.DriverUserID,
		PoolID:             req.PoolID,
		VehicleDisplayName: req.VehicleDisplayName,
		DepositNgn:         req.DepositNgn,
		DurationWeeks:      req.DurationWeeks,
		RoiPercent:         req.RoiPercent,
		StartDate:          start,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"contract": contract})
}

func (h *AdminHandler) GetContract(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contract id"})
		return
	}
	contract, err := h.contractSvc.GetContract(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contract": contract})
}

func (h *AdminHandler) ListPendingWithdrawals(c *gin.Context) {
	rows, err := h.walletSvc.ListPendingWithdrawals()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"withdrawals": rows})
}

func (h *AdminHandler) SettleWithdrawal(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid withdrawal id"})
		return
	}
	var req struct {
		Approve bool   `json:"approve"`
		Reason  string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	withdrawal, err := h.walletSvc.SettleWithdrawal(uint(id), req.Approve, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"withdrawal": withdrawal})
}
