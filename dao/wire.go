package dao

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewUsers,
	NewAffiliate,
	NewTransaction,
	NewOrder,
	NewProduct,
)
