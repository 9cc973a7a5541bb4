package service

import (
	"Storefront/ledger"
	"errors"
	"fmt"
)

var (
	ErrPromoNotFound     = errors.New("promo code not found or inactive")
	ErrAffiliateNotFound = errors.New("affiliate not found")
	ErrNotAffiliate      = errors.New("account is not linked to an affiliate")
	ErrDuplicateCode     = ledger.ErrDuplicateCode
	ErrIllegalTransition = ledger.ErrIllegalTransition
	ErrAccrualInProgress = errors.New("accrual for this order is being processed")

	ErrEmptyCart              = errors.New("cart is empty")
	ErrProductNotFound        = errors.New("product not found")
	ErrProductUnavailable     = errors.New("product is not available")
	ErrOutOfStock             = errors.New("insufficient stock")
	ErrDuplicateSku           = errors.New("sku already exists")
	ErrOrderNotFound          = errors.New("order not found")
	ErrIllegalOrderTransition = errors.New("illegal order status transition")
	ErrCommissionNotCancelled = errors.New("order cancelled but commission not cancelled, retry the cancel")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError 写入前的参数校验失败
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}
