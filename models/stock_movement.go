package models

// StockMovement 재고 변동 이력
type StockMovement struct {
	ID        int64  `json:"id" db:"id"`
	ProductID int64  `json:"product_id" db:"product_id"`
	Delta     int    `json:"delta" db:"delta"`
	Reason    string `json:"reason" db:"reason"`
	CreatedAt string `json:"created_at" db:"created_at"`
}

// 재고 변동 사유 상수
const (
	MovementReasonInitialStock = "initial stock"
	MovementReasonAdjustment   = "adjustment"
)
