package repository

import (
	"chainmove/internal/domain"
	"chainmove/internal/models"

	"gorm.io/gorm"
)

type PoolRepository struct {
	db *gorm.DB
}

func NewPoolRepository(db *gorm.DB) *PoolRepository {
	return &PoolRepository{db: db}
}

func (r *PoolRepository) Create(p *models.InvestmentPool) error {
	return r.db.Create(p).Error
}

func (r *PoolRepository) GetByID(id uint) (*models.InvestmentPool, error) {
	var p models.InvestmentPool
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PoolRepository) List(status string) ([]models.InvestmentPool, error) {
	q := r.db.Model(&models.InvestmentPool{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var pools []models.InvestmentPool
	err := q.Order("created_at DESC").Find(&pools).Error
	return pools, err
}

// PoolOwnership is one viewer's aggregated position in one pool.
type PoolOwnership struct {
	PoolID         uint  `json:"pool_id"`
	AmountNgn      int64 `json:"amount_ngn"`
	OwnershipUnits int64 `json:"ownership_units"`
	OwnershipBps   int   `json:"ownership_bps"`
}

// OwnershipForUser sums the user's CONFIRMED investments per pool.
func (r *PoolRepository) OwnershipForUser(userID uint, poolIDs []uint) (map[uint]PoolOwnership, error) {
	var rows []PoolOwnership
	q := r.db.Model(&models.PoolInvestment{}).
		Select("pool_id, SUM(amount_ngn) AS amount_ngn, SUM(ownership_units) AS ownership_units, SUM(ownership_bps) AS ownership_bps").
		Where("user_id = ? AND status = ?", userID, domain.InvestmentStatusConfirmed).
		Group("pool_id")
	if len(poolIDs) > 0 {
		q = q.Where("pool_id IN ?", poolIDs)
	}
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uint]PoolOwnership, len(rows))
	for _, row := range rows {
		out[row.PoolID] = row
	}
	return out, nil
}

// ConfirmedInvestments returns all CONFIRMED contribution rows for a pool.
func (r *PoolRepository) ConfirmedInvestments(poolID uint) ([]models.PoolInvestment, error) {
	var rows []models.PoolInvestment
	err := r.db.Where("pool_id = ? AND status = ?", poolID, domain.InvestmentStatusConfirmed).
		Order("amount_ngn DESC").Find(&rows).Error
	return rows, err
}

func (r *PoolRepository) GetInvestmentByTxRef(txRef string) (*models.PoolInvestment, error) {
	var inv models.PoolInvestment
	if err := r.db.Where("tx_ref = ?", txRef).First(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *PoolRepository) ListInvestmentsByUser(userID uint) ([]models.PoolInvestment, error) {
	var rows []models.PoolInvestment
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *PoolRepository) CountByStatus(status string) (int64, error) {
	var n int64
	err := r.db.Model(&models.InvestmentPool{}).Where("status = ?", status).Count(&n).Error
	return n, err
}
