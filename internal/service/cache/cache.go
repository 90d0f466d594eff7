package cache

import "time"

// BytesCache is a minimal cache API storing raw bytes with TTL. Entries are
// immutable once written and expire by time only, so concurrent viewers need
// no coordination beyond the implementation's own locking.
type BytesCache interface {
	GetBytes(key string) (b []byte, ok bool, err error)
	SetBytes(key string, value []byte, ttl time.Duration) error
}
