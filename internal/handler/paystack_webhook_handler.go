package handler

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"

	"chainmove/config"
	"chainmove/internal/domain"
	"chainmove/internal/service"
	"chainmove/pkg/paystack"

	"github.com/gin-gonic/gin"
)

// PaystackEvent is the envelope Paystack posts to the webhook endpoint.
type PaystackEvent struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
		Amount    int64  `json:"amount"` // kobo
		Channel   string `json:"channel"`
		Status    string `json:"status"`
		Customer  struct {
			Email string `json:"email"`
		} `json:"customer"`
		Metadata map[string]interface{} `json:"metadata"`
	} `json:"data"`
}

type PaystackWebhookHandler struct {
	cfg         *config.Config
	contractSvc *service.ContractService
	walletSvc   *service.WalletService
}

func NewPaystackWebhookHandler(cfg *config.Config, contractSvc *service.ContractService, walletSvc *service.WalletService) *PaystackWebhookHandler {
	return &PaystackWebhookHandler{cfg: cfg, contractSvc: contractSvc, walletSvc: walletSvc}
}

// Handle processes Paystack webhook events. The signature check runs on the
// raw body before any parsing; unverified requests get a 401 and are never
// processed. Always returns 200 for verified events so Paystack stops
// retrying, even when processing hit a business rule.
func (h *PaystackWebhookHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	signature := c.GetHeader("x-paystack-signature")
	if !paystack.ValidateWebhookSignature(h.cfg.Paystack.SecretKey, body, signature) {
		log.Printf("[PAYSTACK webhook] rejected: bad signature")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		return
	}

	var event PaystackEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Printf("[PAYSTACK webhook] bad json: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	log.Printf("[PAYSTACK webhook] event=%s ref=%s status=%s", event.Event, event.Data.Reference, event.Data.Status)

	switch event.Event {
	case "charge.success":
		h.handleChargeSuccess(event)
	case "charge.failed":
		if err := h.contractSvc.MarkPaymentFailed(event.Data.Reference, event.Data.Status); err != nil {
			log.Printf("[PAYSTACK webhook] mark failed ref=%s: %v", event.Data.Reference, err)
		}
	default:
		// Unhandled event types are acknowledged and dropped.
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *PaystackWebhookHandler) handleChargeSuccess(event PaystackEvent) {
	purpose, _ := event.Data.Metadata["purpose"].(string)
	switch purpose {
	case "wallet_funding":
		userID := metadataUserID(event.Data.Metadata)
		if userID == 0 {
			log.Printf("[PAYSTACK webhook] wallet funding without user_id ref=%s", event.Data.Reference)
			return
		}
		err := h.walletSvc.Fund(userID, event.Data.Amount/100, event.Data.Reference)
		if domain.IsTransientConflict(err) {
			err = h.walletSvc.Fund(userID, event.Data.Amount/100, event.Data.Reference)
		}
		if err != nil {
			log.Printf("[PAYSTACK webhook] wallet funding ref=%s: %v", event.Data.Reference, err)
		}
	default:
		// driver_repayment, and older clients that sent no purpose. The
		// charged amount from the event is cross-checked against the
		// initialized payment before anything is applied.
		_, err := h.contractSvc.ConfirmPayment(event.Data.Reference, event.Data.Channel, event.Data.Amount/100)
		if domain.IsTransientConflict(err) {
			_, err = h.contractSvc.ConfirmPayment(event.Data.Reference, event.Data.Channel, event.Data.Amount/100)
		}
		if err != nil {
			log.Printf("[PAYSTACK webhook] confirm ref=%s: %v", event.Data.Reference, err)
		}
	}
}

func metadataUserID(metadata map[string]interface{}) uint {
	switch v := metadata["user_id"].(type) {
	case float64:
		return uint(v)
	case string:
		id, _ := strconv.ParseUint(v, 10, 32)
		return uint(id)
	}
	return 0
}
