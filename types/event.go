package types

import "time"

const (
	EntityAffiliate   = "affiliate"
	EntityTransaction = "transaction"

	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// LedgerEvent 账本变更通知, 推送给管理后台
type LedgerEvent struct {
	ID       string    `json:"id"`
	Entity   string    `json:"entity"`
	Action   string    `json:"action"`
	EntityID int64     `json:"entity_id,string"`
	At       time.Time `json:"at"`
}
