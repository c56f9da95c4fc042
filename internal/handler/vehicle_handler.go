package handler

import (
	"net/http"
	"strconv"
	"strings"

	"chainmove/internal/middleware"
	"chainmove/internal/service"
	"chainmove/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VehicleHandler struct {
	vehicleSvc *service.VehicleService
	cloud      cloudinary.Client
}

func NewVehicleHandler(vehicleSvc *service.VehicleService, cloud cloudinary.Client) *VehicleHandler {
	return &VehicleHandler{vehicleSvc: vehicleSvc, cloud: cloud}
}

// Create lists a vehicle in the marketplace. Admin only.
func (h *VehicleHandler) Create(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		AssetType   string `json:"asset_type" binding:"required"`
		PriceNgn    int64  `json:"price_ngn"`
		Description string `json:"description"`
		ImageURL    string `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	vehicle, err := h.vehicleSvc.Create(service.CreateVehicleInput{
		Name:          req.Name,
		AssetType:     req.AssetType,
		PriceNgn:      req.PriceNgn,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		AddedByUserID: middleware.GetUserID(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"vehicle": vehicle})
}

func (h *VehicleHandler) List(c *gin.Context) {
	rows, err := h.vehicleSvc.List(c.Query("asset_type"), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicles": rows})
}

func (h *VehicleHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vehicle id"})
		return
	}
	vehicle, err := h.vehicleSvc.Get(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicle": vehicle})
}

// UploadImage uploads a vehicle photo to Cloudinary and stores the URL.
func (h *VehicleHandler) UploadImage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vehicle id"})
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}
	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}
	defer f.Close()

	publicID := "vehicle_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	url, _, err := h.cloud.UploadImage(c.Request.Context(), f, "chainmove/vehicles", publicID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "upload failed"})
		return
	}
	vehicle, err := h.vehicleSvc.SetImage(uint(id), url)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicle": vehicle})
}

func (h *VehicleHandler) SetStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vehicle id"})
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	vehicle, err := h.vehicleSvc.SetStatus(uint(id), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicle": vehicle})
}
