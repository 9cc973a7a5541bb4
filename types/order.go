package types

import "Storefront/models"

type ShippingAddress struct {
	Name       string `json:"name" binding:"required"`
	Line1      string `json:"line1" binding:"required"`
	Line2      string `json:"line2"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code" binding:"required"`
	Country    string `json:"country" binding:"required"`
	Phone      string `json:"phone"`
}

type CheckoutRequest struct {
	CustomerEmail   string          `json:"customer_email" binding:"required,email"`
	ShippingAddress ShippingAddress `json:"shipping_address" binding:"required"`
}

type CheckoutResponse struct {
	Order *models.Order `json:"order"`
}

type OrderListRequest struct {
	Status string `form:"status"`
	Cursor int64  `form:"cursor"`
	Limit  int    `form:"limit"`
}

type OrderListResponse struct {
	Orders     []*models.Order `json:"orders"`
	HasMore    bool            `json:"has_more"`
	NextCursor int64           `json:"next_cursor"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=processing shipped delivered cancelled"`
}
