package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

// 返佣结算状态. 带推广码的订单下单时写入 pending, 结算完成后改为 done
const (
	AccrualNone    = ""
	AccrualPending = "pending"
	AccrualDone    = "done"
	AccrualSkipped = "skipped"
)

var orderNext = map[string]string{
	OrderPending:    OrderProcessing,
	OrderProcessing: OrderShipped,
	OrderShipped:    OrderDelivered,
}

// CanMoveOrder 订单状态只能按顺序前进, 未完成的订单可以取消
func CanMoveOrder(from, to string) bool {
	if to == OrderCancelled {
		return from != OrderDelivered && from != OrderCancelled
	}
	return orderNext[from] == to
}

// Order 订单主表
type Order struct {
	ID              int64           `gorm:"primaryKey;autoIncrement:false;column:id" json:"id"`
	OrderNumber     string          `gorm:"column:order_number;type:varchar(32);not null;uniqueIndex:uk_orders_number" json:"order_number"`
	UserID          int64           `gorm:"column:user_id;index:idx_orders_user" json:"user_id"`
	CustomerEmail   string          `gorm:"column:customer_email;type:varchar(255);not null;index:idx_orders_email" json:"customer_email"`
	Subtotal        decimal.Decimal `gorm:"column:subtotal;type:decimal(12,2);not null" json:"subtotal"`
	DiscountAmount  decimal.Decimal `gorm:"column:discount_amount;type:decimal(12,2);not null;default:0" json:"discount_amount"`
	ShippingAmount  decimal.Decimal `gorm:"column:shipping_amount;type:decimal(12,2);not null;default:0" json:"shipping_amount"`
	TotalAmount     decimal.Decimal `gorm:"column:total_amount;type:decimal(12,2);not null" json:"total_amount"`
	PromoCode       string          `gorm:"column:promo_code;type:varchar(32)" json:"promo_code"`
	AffiliateCode   string          `gorm:"column:affiliate_code;type:varchar(32);index:idx_orders_affiliate" json:"affiliate_code"`
	Status          string          `gorm:"column:status;type:varchar(16);not null;default:'pending'" json:"status"`
	AccrualStatus   string          `gorm:"column:accrual_status;type:varchar(16);not null;index:idx_orders_accrual" json:"accrual_status"`
	ShippingAddress datatypes.JSON  `gorm:"column:shipping_address" json:"shipping_address"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID          int64           `gorm:"primaryKey;autoIncrement:false;column:id" json:"id"`
	OrderID     int64           `gorm:"column:order_id;not null;index:idx_order_items_order" json:"order_id"`
	ProductID   int64           `gorm:"column:product_id;not null" json:"product_id"`
	ProductName string          `gorm:"column:product_name;type:varchar(255);not null" json:"product_name"` // 冗余商品名称, 防止改名
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:decimal(12,2);not null" json:"unit_price"`   // 下单时单价
	Quantity    int             `gorm:"column:quantity;not null" json:"quantity"`
	LineTotal   decimal.Decimal `gorm:"column:line_total;type:decimal(12,2);not null" json:"line_total"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
