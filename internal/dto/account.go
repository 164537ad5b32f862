package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
// The account type is derived from the code prefix.
type CreateAccountRequest struct {
	Code         string  `json:"code" binding:"required,accountcode"`
	Name         string  `json:"name" binding:"required"`
	ParentCode   *string `json:"parentCode" binding:"omitempty,accountcode"`
	DisplayOrder int     `json:"displayOrder" binding:"min=0"`
}

// UpdateDisplayOrderRequest moves an account among its siblings.
type UpdateDisplayOrderRequest struct {
	DisplayOrder int `json:"displayOrder" binding:"min=0"`
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=50" binding:"min=1,max=500"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	ID            int64              `json:"id"`
	Code          domain.AccountCode `json:"code"`
	Name          string             `json:"name"`
	Type          domain.AccountType `json:"type"`
	NormalBalance domain.Side        `json:"normalBalance"`
	CreatedAt     time.Time          `json:"createdAt"`
	CreatedBy     string             `json:"createdBy"`
	LastUpdatedAt time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy string             `json:"lastUpdatedBy"`
}

// AccountNodeResponse is one node of the account hierarchy.
type AccountNodeResponse struct {
	Code         domain.AccountCode  `json:"code"`
	Path         string              `json:"path"`
	Level        int                 `json:"level"`
	ParentCode   *domain.AccountCode `json:"parentCode,omitempty"`
	DisplayOrder int                 `json:"displayOrder"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	var id int64
	if acc.ID != nil {
		id = *acc.ID
	}
	return AccountResponse{
		ID:            id,
		Code:          acc.Code,
		Name:          acc.Name,
		Type:          acc.Type,
		NormalBalance: acc.Type.NormalBalance(),
		CreatedAt:     acc.CreatedAt,
		CreatedBy:     acc.CreatedBy,
		LastUpdatedAt: acc.LastUpdatedAt,
		LastUpdatedBy: acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ToAccountNodeResponses converts hierarchy nodes.
func ToAccountNodeResponses(nodes []domain.AccountStructure) []AccountNodeResponse {
	res := make([]AccountNodeResponse, len(nodes))
	for i, n := range nodes {
		res[i] = AccountNodeResponse{
			Code:         n.Code,
			Path:         n.Path,
			Level:        n.Level,
			ParentCode:   n.ParentCode,
			DisplayOrder: n.DisplayOrder,
		}
	}
	return res
}
