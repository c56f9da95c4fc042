package service

import (
	"strings"

	"chainmove/internal/database"
	"chainmove/internal/domain"
	"chainmove/internal/models"
	"chainmove/internal/repository"
)

type VehicleService struct {
	vehicles *repository.VehicleRepository
}

func NewVehicleService(vehicles *repository.VehicleRepository) *VehicleService {
	return &VehicleService{vehicles: vehicles}
}

type CreateVehicleInput struct {
	Name          string
	AssetType     string
	PriceNgn      int64
	Description   string
	ImageURL      string
	AddedByUserID uint
}

func (s *VehicleService) Create(in CreateVehicleInput) (*models.Vehicle, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Validation("vehicle name is required")
	}
	assetType := strings.ToUpper(strings.TrimSpace(in.AssetType))
	if !domain.ValidAssetType(assetType) {
		return nil, domain.Validation("unrecognized asset type")
	}
	price := in.PriceNgn
	if price == 0 {
		price = domain.AssetPriceNgn[assetType]
	}
	if price <= 0 {
		return nil, domain.Validation("price must be greater than zero")
	}
	v := &models.Vehicle{
		Name:          name,
		AssetType:     assetType,
		PriceNgn:      price,
		Description:   strings.TrimSpace(in.Description),
		ImageURL:      in.ImageURL,
		Status:        "AVAILABLE",
		AddedByUserID: in.AddedByUserID,
	}
	if err := s.vehicles.Create(v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *VehicleService) Get(id uint) (*models.Vehicle, error) {
	v, err := s.vehicles.GetByID(id)
	if err != nil {
		return nil, database.Classify(err)
	}
	return v, nil
}

func (s *VehicleService) List(assetType, status string) ([]models.Vehicle, error) {
	return s.vehicles.List(strings.ToUpper(strings.TrimSpace(assetType)), strings.ToUpper(strings.TrimSpace(status)))
}

func (s *VehicleService) SetImage(id uint, imageURL string) (*models.Vehicle, error) {
	v, err := s.vehicles.GetByID(id)
	if err != nil {
		return nil, database.Classify(err)
	}
	v.ImageURL = imageURL
	if err := s.vehicles.Update(v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *VehicleService) SetStatus(id uint, status string) (*models.Vehicle, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	switch status {
	case "AVAILABLE", "RESERVED", "ASSIGNED":
	default:
		return nil, domain.Validation("unrecognized vehicle status")
	}
	v, err := s.vehicles.GetByID(id)
	if err != nil {
		return nil, database.Classify(err)
	}
	v.Status = status
	if err := s.vehicles.Update(v); err != nil {
		return nil, err
	}
	return v, nil
}
