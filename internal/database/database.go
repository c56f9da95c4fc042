package database

import (
	"log"

	"chainmove/config"
	"chainmove/internal/domain"
	"chainmove/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models. The unique indexes
// on pool_investments.tx_ref, driver_payments.paystack_ref and
// investor_credits(payment_id, investor_user_id) are created here and are
// load-bearing for idempotency.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Vehicle{},
		&models.InvestmentPool{},
		&models.PoolInvestment{},
		&models.HirePurchaseContract{},
		&models.DriverPayment{},
		&models.InvestorCredit{},
		&models.Transaction{},
		&models.Withdrawal{},
		&models.Notification{},
		&models.PlatformSetting{},
	)
}

// SeedAdmin creates a default admin account when none exists.
func SeedAdmin(db *gorm.DB) {
	var count int64
	db.Model(&models.User{}).Where("role = ?", domain.RoleAdmin).Count(&count)
	if count > 0 {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("admin-change-me"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[SEED] bcrypt: %v", err)
		return
	}
	admin := &models.User{
		Name:         "Platform Admin",
		Email:        "admin@chainmove.local",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}
	if err := db.Create(admin).Error; err != nil {
		log.Printf("[SEED] admin user: %v", err)
		return
	}
	log.Printf("[SEED] created default admin %s", admin.Email)
}

// SeedSettings inserts the PlatformSetting singleton when missing.
func SeedSettings(db *gorm.DB, cfg *config.PlatformConfig) {
	var count int64
	db.Model(&models.PlatformSetting{}).Where("singleton_key = ?", models.PlatformSettingKey).Count(&count)
	if count > 0 {
		return
	}
	s := &models.PlatformSetting{
		SingletonKey:                  models.PlatformSettingKey,
		MinimumContributionNgn:        cfg.MinimumContributionNgn,
		PlatformFeeRateBps:            cfg.PlatformFeeRateBps,
		DefaultRepaymentDurationWeeks: cfg.DefaultRepaymentDurationWeeks,
		DefaultRoiPercent:             cfg.DefaultRoiPercent,
	}
	if err := db.Create(s).Error; err != nil {
		log.Printf("[SEED] platform settings: %v", err)
	}
}
