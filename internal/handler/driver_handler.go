package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"chainmove/config"
	"chainmove/internal/domain"
	"chainmove/internal/middleware"
	"chainmove/internal/service"
	"chainmove/pkg/paystack"

	"github.com/gin-gonic/gin"
)

type DriverHandler struct {
	cfg         *config.Config
	contractSvc *service.ContractService
	authSvc     *service.AuthService
	paystack    *paystack.Client
}

func NewDriverHandler(cfg *config.Config, contractSvc *service.ContractService, authSvc *service.AuthService) *DriverHandler {
	return &DriverHandler{
		cfg:         cfg,
		contractSvc: contractSvc,
		authSvc:     authSvc,
		paystack:    paystack.NewClient(cfg.Paystack.BaseURL, cfg.Paystack.SecretKey),
	}
}

// GetContract returns the driver's active contract, or the most recently
// settled one.
func (h *DriverHandler) GetContract(c *gin.Context) {
	contract, err := h.contractSvc.GetContractForDriver(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contract": contract})
}

func (h *DriverHandler) ListPayments(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	contractID, _ := strconv.ParseUint(c.Query("contract_id"), 10, 32)
	payments, err := h.contractSvc.ListPayments(middleware.GetUserID(c), uint(contractID), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

// InitializePayment records a PENDING repayment and opens a Paystack checkout
// session for it. Confirmation arrives on the webhook.
func (h *DriverHandler) InitializePayment(c *gin.Context) {
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
	payment, err := h.contractSvc.CreatePayment(userID, req.AmountNgn, "", user.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	session, err := h.paystack.InitializeTransaction(c.Request.Context(), paystack.InitializeRequest{
		Email:       user.Email,
		AmountNgn:   payment.AmountNgn,
		Reference:   payment.PaystackRef,
		CallbackURL: h.cfg.Server.AppBaseURL + "/driver/payments",
		Metadata: map[string]interface{}{
			"purpose":     "driver_repayment",
			"contract_id": fmt.Sprintf("%d", payment.ContractID),
		},
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "payment gateway unavailable"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"payment":           payment,
		"authorization_url": session.AuthorizationURL,
		"access_code":       session.AccessCode,
	})
}

// VerifyPayment re-checks a reference against the gateway, for clients that
// return from checkout before the webhook lands.
func (h *DriverHandler) VerifyPayment(c *gin.Context) {
	ref := c.Param("reference")
	result, err := h.paystack.VerifyTransaction(c.Request.Context(), ref)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "verification failed"})
		return
	}
	if result.Status == "success" {
		payment, err := h.contractSvc.ConfirmPayment(ref, result.Channel, result.AmountNgn())
		if domain.IsTransientConflict(err) {
			payment, err = h.contractSvc.ConfirmPayment(ref, result.Channel, result.AmountNgn())
		}
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"payment": payment})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": result.Status, "reference": result.Reference})
}
