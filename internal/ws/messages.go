// Package ws holds WebSocket message types and the Hub implementation.
// messages.go defines all message structs broadcast to connected clients.
package ws

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MsgType identifies the kind of WS message so clients can switch on it.
type MsgType string

const (
	MsgTypeFundingUpdate      MsgType = "funding_update"
	MsgTypeRevenueDistributed MsgType = "revenue_distributed"
	MsgTypeError              MsgType = "error"
)

// ──────────────────────────────────────────────────────────────────────────────
// FundingUpdateMessage — broadcast after an investment is recorded.
// ──────────────────────────────────────────────────────────────────────────────

// FundingUpdateMessage carries the refreshed funding figures of a project so
// every open project page updates without polling.
type FundingUpdateMessage struct {
	Type              MsgType         `json:"type"`
	ProjectID         uuid.UUID       `json:"project_id"`
	TotalInvested     decimal.Decimal `json:"total_invested"`
	InvestorCount     int             `json:"investor_count"`
	FundingPercentage decimal.Decimal `json:"funding_percentage"`
	Timestamp         time.Time       `json:"timestamp"`
}

// ──────────────────────────────────────────────────────────────────────────────
// RevenueDistributedMessage — broadcast when a project is settled.
// ──────────────────────────────────────────────────────────────────────────────

// RevenueDistributedMessage tells clients that a project completed and how
// much revenue was split across how many payouts.
type RevenueDistributedMessage struct {
	Type           MsgType         `json:"type"`
	ProjectID      uuid.UUID       `json:"project_id"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	TotalInvested  decimal.Decimal `json:"total_invested"`
	PayoutsCreated int             `json:"payouts_created"`
	Timestamp      time.Time       `json:"timestamp"`
}

// ──────────────────────────────────────────────────────────────────────────────
// ErrorMessage — sent to a single client on a non-fatal error.
// ──────────────────────────────────────────────────────────────────────────────

// ErrorMessage is sent directly to one client (not broadcast).
type ErrorMessage struct {
	Type    MsgType `json:"type"`
	Code    string  `json:"code"`
	Message string  `json:"message"`
}
