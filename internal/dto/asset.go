package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/velia-fin/ledgercore/internal/core/domain"
)

// RegisterAssetRequest defines the payload for registering a fixed asset.
// FundingAccount is the credit side of the acquisition entry (bank loan,
// supplier payable, cash).
type RegisterAssetRequest struct {
	Name              string          `json:"name" binding:"required"`
	Cost              decimal.Decimal `json:"cost" binding:"required"`
	Residual          decimal.Decimal `json:"residual"`
	UsefulLifeMonths  int             `json:"usefulLifeMonths" binding:"required,gt=0"`
	AssetAccount      string          `json:"assetAccount" binding:"required"`
	AccumDepAccount   string          `json:"accumDepAccount" binding:"required"`
	DepExpenseAccount string          `json:"depExpenseAccount" binding:"required"`
	FundingAccount    string          `json:"fundingAccount" binding:"required"`
	AcquiredAt        time.Time       `json:"acquiredAt" binding:"required"`
}

// RunDepreciationRequest selects the period for a monthly depreciation run.
type RunDepreciationRequest struct {
	Year  int `json:"year" binding:"required"`
	Month int `json:"month" binding:"required,min=1,max=12"`
}

// AssetResponse defines the data returned for a fixed asset.
type AssetResponse struct {
	AssetID           string          `json:"assetID"`
	Name              string          `json:"name"`
	Cost              decimal.Decimal `json:"cost"`
	Residual          decimal.Decimal `json:"residual"`
	UsefulLifeMonths  int             `json:"usefulLifeMonths"`
	AssetAccount      string          `json:"assetAccount"`
	AccumDepAccount   string          `json:"accumDepAccount"`
	DepExpenseAccount string          `json:"depExpenseAccount"`
	Status            string          `json:"status"`
	AcquiredAt        time.Time       `json:"acquiredAt"`
}

// ToAssetResponse converts a domain.FixedAsset to AssetResponse DTO.
func ToAssetResponse(a *domain.FixedAsset) AssetResponse {
	return AssetResponse{
		AssetID:           a.AssetID,
		Name:              a.Name,
		Cost:              a.Cost,
		Residual:          a.Residual,
		UsefulLifeMonths:  a.UsefulLifeMonths,
		AssetAccount:      a.AssetAccount,
		AccumDepAccount:   a.AccumDepAccount,
		DepExpenseAccount: a.DepExpenseAccount,
		Status:            string(a.Status),
		AcquiredAt:        a.AcquiredAt,
	}
}

// ToAssetResponses converts a slice of domain.FixedAsset to []AssetResponse.
func ToAssetResponses(assets []domain.FixedAsset) []AssetResponse {
	responses := make([]AssetResponse, len(assets))
	for i := range assets {
		responses[i] = ToAssetResponse(&assets[i])
	}
	return responses
}
