package handler

import (
	"errors"

	"Storefront/ledger"
	"Storefront/pkg/response"
	"Storefront/service"
)

// bizError 把 service 层错误翻译成业务码, 其余错误原样返回由 Wrap 记录并输出 500
func bizError(err error) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return response.Wrap(response.CodeInvalidParam, verr)
	case errors.Is(err, service.ErrPromoNotFound):
		return &response.BizError{Code: response.CodePromoInvalid, Msg: "Invalid or inactive discount code", Err: err}
	case errors.Is(err, service.ErrAffiliateNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrNotAffiliate),
		errors.Is(err, ledger.ErrNotFound):
		return response.Wrap(response.CodeNotFound, err)
	case errors.Is(err, service.ErrDuplicateCode),
		errors.Is(err, service.ErrDuplicateSku),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, ledger.ErrDuplicateOrder),
		errors.Is(err, service.ErrIllegalTransition),
		errors.Is(err, service.ErrIllegalOrderTransition),
		errors.Is(err, service.ErrOutOfStock),
		errors.Is(err, service.ErrProductUnavailable),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrAccrualInProgress):
		return response.Wrap(response.CodeConflict, err)
	case errors.Is(err, service.ErrInvalidCredentials):
		return response.Wrap(response.CodeUnauthorized, err)
	case errors.Is(err, service.ErrCommissionNotCancelled):
		return &response.BizError{Code: response.CodeUnavailable, Msg: "commission not cancelled, retry the cancel", Err: err}
	case errors.Is(err, ledger.ErrUnavailable):
		return &response.BizError{Code: response.CodeUnavailable, Msg: "ledger temporarily unavailable", Err: err}
	}
	return err
}

func badRequest(err error) error {
	return response.Wrap(response.CodeInvalidParam, err)
}
