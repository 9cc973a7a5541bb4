package server

import (
	"Storefront/handler"
)

type Handlers struct {
	Health    *handler.Health
	Auth      *handler.Auth
	Promo     *handler.Promo
	Cart      *handler.Cart
	Product   *handler.ProductHandler
	Order     *handler.Order
	Affiliate *handler.Affiliate
	Report    *handler.Report
	Stream    *handler.LedgerStream
}
