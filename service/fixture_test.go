package service

import (
	"context"
	"testing"
	"time"

	"Storefront/config"
	"Storefront/dao"
	"Storefront/dao/cache"
	"Storefront/internal/testkit"
	"Storefront/ledger"
	"Storefront/models"
	"Storefront/pkg/oss"
	"Storefront/types"

	"github.com/alicebob/miniredis/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeMailer struct {
	sent chan sentMail
}

func (f *fakeMailer) SendEmail(_ context.Context, to, subject, body string) error {
	f.sent <- sentMail{To: to, Subject: subject, Body: body}
	return nil
}

type fixture struct {
	db     *gorm.DB
	mr     *miniredis.Miniredis
	shop   *config.Shop
	ledger ledger.Ledger
	hub    *LedgerHub
	mail   *fakeMailer

	promo      *PromoService
	affiliates *AffiliateService
	accrual    *AccrualService
	carts      *CartService
	checkout   *CheckoutService
	orders     *OrderService
	products   *ProductService
	reports    *ReportService
	auth       *AuthService
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testShop() *config.Shop {
	return &config.Shop{
		Currency:       "USD",
		ShippingFee:    dec("15"),
		CommissionRate: dec("0.10"),
		PointsRate:     dec("0.015"),
		CartTTL:        time.Hour,
		DiscountCodes: []config.DiscountCode{
			{Code: "welcome10", Kind: "percent", Value: dec("10"), Active: true},
			{Code: "FIVEOFF", Kind: "fixed", Value: dec("5"), Active: true},
			{Code: "OLDCODE", Kind: "percent", Value: dec("50"), Active: false},
		},
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testkit.NewDB(t)
	mr, rdb := testkit.NewRedis(t)
	shop := testShop()

	remote := ledger.NewRemote(db, dao.NewAffiliate(db), dao.NewTransaction(db))
	hub := NewLedgerHub(rdb)
	notifier := &LedgerNotifier{Hub: hub}
	mail := &fakeMailer{sent: make(chan sentMail, 16)}

	f := &fixture{db: db, mr: mr, shop: shop, ledger: remote, hub: hub, mail: mail}
	f.promo = NewPromoService(shop, remote)
	f.affiliates = &AffiliateService{Ledger: remote, Promo: f.promo, Notifier: notifier}
	productDAO := dao.NewProduct(db)
	orderDAO := dao.NewOrder(db)
	f.accrual = &AccrualService{
		Shop:     shop,
		Ledger:   remote,
		Locks:    cache.NewAccrualLockStorage(rdb),
		OrderDAO: orderDAO,
		Notifier: notifier,
		Mailer:   mail,
	}
	carts := cache.NewCartStorage(rdb, shop.CartTTL)
	f.carts = &CartService{
		Shop:       shop,
		Carts:      carts,
		Claims:     cache.NewPromoClaimStorage(rdb),
		ProductDAO: productDAO,
		Promo:      f.promo,
	}
	f.checkout = &CheckoutService{
		App:        &config.App{HashSalt: "test-salt"},
		Shop:       shop,
		DB:         db,
		Carts:      carts,
		ProductDAO: productDAO,
		OrderDAO:   orderDAO,
		Promo:      f.promo,
		Trigger:    &DirectTrigger{Accrual: f.accrual},
	}
	f.orders = &OrderService{OrderDAO: orderDAO, Ledger: remote, Notifier: notifier}
	f.products = &ProductService{ProductDAO: productDAO}
	f.reports = &ReportService{Ledger: remote, Uploader: oss.NewUploader(&config.OssConfig{})}
	f.auth = &AuthService{
		Jwt:       &config.Jwt{Secret: "test-secret", ExpiresIn: 3600},
		UserDAO:   dao.NewUsers(db),
		Blacklist: cache.NewTokenBlacklist(rdb),
	}
	return f
}

func (f *fixture) createJane(t *testing.T) *models.Affiliate {
	t.Helper()
	aff, err := f.affiliates.Create(context.Background(), &types.CreateAffiliateRequest{
		Code:            "jane15",
		Name:            "Jane Doe",
		Email:           "Jane@Example.com",
		DiscountPercent: dec("15"),
	})
	require.NoError(t, err)
	return aff
}

func (f *fixture) createProduct(t *testing.T, sku, price string, stock int) *models.Product {
	t.Helper()
	p, err := f.products.Create(context.Background(), &types.CreateProductRequest{
		Sku:   sku,
		Name:  "Peptide " + sku,
		Price: dec(price),
		Stock: stock,
	})
	require.NoError(t, err)
	return p
}
