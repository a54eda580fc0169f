package dto

import (
	"time"

	"github.com/velia-fin/ledgercore/internal/core/domain"
)

// CreateAccountRequest defines the payload for adding an account to the chart.
type CreateAccountRequest struct {
	Code   string `json:"code" binding:"required"`
	Name   string `json:"name" binding:"required"`
	Nature string `json:"nature" binding:"required,accountnature"`
	// Class is optional; when empty it is derived from the leading code digit.
	Class string `json:"class" binding:"omitempty"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Nature    string    `json:"nature"`
	Class     string    `json:"class"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		Code:      a.Code,
		Name:      a.Name,
		Nature:    string(a.Nature),
		Class:     string(a.Class),
		CreatedAt: a.CreatedAt,
	}
}

// ToAccountResponses converts a slice of domain.Account to []AccountResponse.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
