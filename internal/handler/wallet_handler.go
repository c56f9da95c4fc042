package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"chainmove/config"
	"chainmove/internal/middleware"
	"chainmove/internal/service"
	"chainmove/pkg/paystack"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type WalletHandler struct {
	cfg       *config.Config
	walletSvc *service.WalletService
	authSvc   *service.AuthService
	poolSvc   *service.PoolService
	paystack  *paystack.Client
}

func NewWalletHandler(cfg *config.Config, walletSvc *service.WalletService, authSvc *service.AuthService, poolSvc *service.PoolService) *WalletHandler {
	return &WalletHandler{
		cfg:       cfg,
		walletSvc: walletSvc,
		authSvc:   authSvc,
		poolSvc:   poolSvc,
		paystack:  paystack.NewClient(cfg.Paystack.BaseURL, cfg.Paystack.SecretKey),
	}
}

func (h *WalletHandler) Summary(c *gin.Context) {
	summary, err := h.walletSvc.Summary(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"wallet": summary})
}

func (h *WalletHandler) Transactions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	rows, err := h.walletSvc.Transactions(middleware.GetUserID(c), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": rows})
}

func (h *WalletHandler) Credits(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	rows, err := h.walletSvc.Credits(middleware.GetUserID(c), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"credits": rows})
}

func (h *WalletHandler) Investments(c *gin.Context) {
	rows, err := h.poolSvc.ListInvestmentsForUser(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"investments": rows})
}

// InitializeFunding opens a Paystack checkout session for a wallet top-up.
// The credit happens on the charge.success webhook.
func (h *WalletHandler) InitializeFunding(c *gin.Context) {
	var req struct {
		AmountNgn int64 `json:"amount_ngn" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := middleware.GetUserID(c)
	user, err := h.authSvc.GetProfile(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	reference := fmt.Sprintf("fund_%d_%s", userID, uuid.NewString())
	session, err := h.paystack.InitializeTransaction(c.Request.Context(), paystack.InitializeRequest{
		Email:       user.Email,
		AmountNgn:   req.AmountNgn,
		Reference:   reference,
		CallbackURL: h.cfg.Server.AppBaseURL + "/wallet",
		Metadata: map[string]interface{}{
			"purpose": "wallet_funding",
			"user_id": fmt.Sprintf("%d", userID),
		},
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "payment gateway unavailable"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"reference":         reference,
		"authorization_url": session.AuthorizationURL,
		"access_code":       session.AccessCode,
	})
}

func (h *WalletHandler) RequestWithdrawal(c *gin.Context) {
	var req struct {
		AmountNgn int64  `json:"amount_ngn" binding:"required,min=1"`
		BankName  string `json:"bank_name" binding:"required"`
		AccountNo string `json:"account_no" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	withdrawal, err := h.walletSvc.RequestWithdrawal(middleware.GetUserID(c), req.AmountNgn, req.BankName, req.AccountNo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"withdrawal": withdrawal})
}

func (h *WalletHandler) ListWithdrawals(c *gin.Context) {
	rows, err := h.walletSvc.ListWithdrawals(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"withdrawals": rows})
}
