package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetStatus is the lifecycle state of a fixed asset.
type AssetStatus string

const (
	AssetActive   AssetStatus = "ACTIVE"
	AssetDisposed AssetStatus = "DISPOSED"
)

// FixedAsset is one depreciable asset and the ledger accounts its
// acquisition and depreciation postings hit.
type FixedAsset struct {
	AssetID           string          `json:"assetID"`
	Name              string          `json:"name"`
	Cost              decimal.Decimal `json:"cost"`
	Residual          decimal.Decimal `json:"residual"`
	UsefulLifeMonths  int             `json:"usefulLifeMonths"`
	AssetAccount      string          `json:"assetAccount"`
	AccumDepAccount   string          `json:"accumDepAccount"`
	DepExpenseAccount string          `json:"depExpenseAccount"`
	Status            AssetStatus     `json:"status"`
	AcquiredAt        time.Time       `json:"acquiredAt"`
	AuditFields
}

// DepreciationRunResult summarizes one monthly run: how many assets were
// charged and the consolidated entries that were posted.
type DepreciationRunResult struct {
	Year          int             `json:"year"`
	Month         time.Month      `json:"month"`
	AssetsCharged int             `json:"assetsCharged"`
	TotalCharge   decimal.Decimal `json:"totalCharge"`
	EntryIDs      []string        `json:"entryIDs"`
}
