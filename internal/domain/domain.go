package domain

const (
	RoleInvestor = "investor"
	RoleDriver   = "driver"
	RoleAdmin    = "admin"
)

const (
	AssetTypeShuttle = "SHUTTLE"
	AssetTypeKeke    = "KEKE"
)

// AssetPriceNgn is the default purchase price per asset type, in whole naira.
var AssetPriceNgn = map[string]int64{
	AssetTypeShuttle: 4_600_000,
	AssetTypeKeke:    3_500_000,
}

const (
	PoolStatusOpen   = "OPEN"
	PoolStatusFunded = "FUNDED"
	PoolStatusClosed = "CLOSED"
)

const (
	InvestmentStatusPending   = "PENDING"
	InvestmentStatusConfirmed = "CONFIRMED"
	InvestmentStatusFailed    = "FAILED"
)

const (
	ContractStatusActive    = "ACTIVE"
	ContractStatusCompleted = "COMPLETED"
	ContractStatusDefaulted = "DEFAULTED"
)

const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusConfirmed = "CONFIRMED"
	PaymentStatusFailed    = "FAILED"
)

const CreditStatusPosted = "POSTED"

const (
	WithdrawalStatusPending  = "PENDING"
	WithdrawalStatusPaid     = "PAID"
	WithdrawalStatusRejected = "REJECTED"
)

// TotalOwnershipUnits is the unit denominator for pool ownership; a fully
// funded pool always sums to this many units across its investors.
const TotalOwnershipUnits = 1_000_000

// TotalOwnershipBps is full ownership of a pool in basis points.
const TotalOwnershipBps = 10_000

func ValidAssetType(t string) bool {
	_, ok := AssetPriceNgn[t]
	return ok
}
