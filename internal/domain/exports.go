package domain

import (
	interfaces "kvstore/internal/domain/interfaces"
	types "kvstore/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Entry       = types.Entry
	Fingerprint = types.Fingerprint
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	KVStore   = interfaces.KVStore
	KVService = interfaces.KVService
)
