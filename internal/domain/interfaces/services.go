package interfaces

import (
	"io"

	domaintypes "kvstore/internal/domain/types"
)

// KVService runs caller-facing operations, each inside one store session.
type KVService interface {
	Get(key string) (domaintypes.Entry, error)
	Set(key, value string, force bool) error
	Remove(key string) (domaintypes.Entry, error)
	Init() error

	List() ([]domaintypes.Entry, error)
	Import(r io.Reader, force bool) (int, error)
	Fingerprint() (domaintypes.Fingerprint, error)
}
