package handler

import "github.com/shopspring/decimal"

// Request/response shapes at the API boundary. Amounts travel as decimal
// values (decimal.Decimal accepts both JSON numbers and strings) so the
// core never sees binary floats.

type createUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type createUserResponse struct {
	UserID string `json:"user_id"`
}

type getUserResponse struct {
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Groups []string `json:"groups"`
}

type createGroupRequest struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
	Details string   `json:"details,omitempty"`
}

type createGroupResponse struct {
	GroupID string `json:"group_id"`
}

type getGroupResponse struct {
	Name         string   `json:"name"`
	Members      []string `json:"members"`
	Transactions []string `json:"transactions"`
}

type createTransactionRequest struct {
	Name         string                     `json:"name"`
	TotalAmount  decimal.Decimal            `json:"total_amount"`
	GroupID      string                     `json:"group_id"`
	Participants []string                   `json:"participants"`
	Payers       map[string]decimal.Decimal `json:"payers"`
	Details      string                     `json:"details,omitempty"`
}

type createTransactionResponse struct {
	TransID string `json:"trans_id"`
}

type getTransactionResponse struct {
	Name         string                     `json:"name"`
	TotalAmount  decimal.Decimal            `json:"total_amount"`
	GroupID      string                     `json:"group_id"`
	Participants []string                   `json:"participants"`
	Payers       map[string]decimal.Decimal `json:"payers"`
	Payables     map[string]decimal.Decimal `json:"payables"`
	Details      string                     `json:"details,omitempty"`
}
