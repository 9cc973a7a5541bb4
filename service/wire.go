package service

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewLedgerHub,
	wire.Struct(new(LedgerNotifier), "*"),

	ProvidePromoService,
	wire.Bind(new(IPromoService), new(*PromoService)),

	wire.Struct(new(AffiliateService), "*"),
	wire.Bind(new(IAffiliateService), new(*AffiliateService)),

	wire.Struct(new(AccrualService), "*"),
	wire.Bind(new(IAccrualService), new(*AccrualService)),
	ProvideCompletionTrigger,
	wire.Struct(new(AccrualReconciler), "*"),

	wire.Struct(new(CartService), "*"),
	wire.Bind(new(ICartService), new(*CartService)),

	wire.Struct(new(CheckoutService), "*"),
	wire.Bind(new(ICheckoutService), new(*CheckoutService)),

	wire.Struct(new(OrderService), "*"),
	wire.Bind(new(IOrderService), new(*OrderService)),

	wire.Struct(new(ProductService), "*"),
	wire.Bind(new(IProductService), new(*ProductService)),

	wire.Struct(new(ReportService), "*"),
	wire.Bind(new(IReportService), new(*ReportService)),

	wire.Struct(new(AuthService), "*"),
	wire.Bind(new(IAuthService), new(*AuthService)),
)
