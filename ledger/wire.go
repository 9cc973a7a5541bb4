package ledger

import "github.com/google/wire"

var ProviderSet = wire.NewSet(
	NewRemote,
	Provide,
)
