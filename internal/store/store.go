package store

import "github.com/pkg/errors"

// Bucket names for the record families the storefront persists.
const (
	BucketCart      = "cart"
	BucketFavorites = "favorites"
	BucketAuth      = "auth"
	BucketCheckouts = "checkouts"
)

// Fixed record keys, carried over from the browser storage the web
// client used. Keeping them stable lets stored state migrate.
const (
	KeyCart      = "tkb_cart_v1"
	KeyFavorites = "tkb_favorites_v1"
	KeyAuthUser  = "user"
	KeyAuthToken = "access_token"
)

var ErrClosed = errors.New("store: closed")

// KV is the durable client-side key-value store the domain stores
// persist through. Implementations: Bolt for the embedded on-disk
// store, Memory for tests and session-scoped state.
type KV interface {
	// Get returns the stored value and whether the key exists.
	Get(bucket, key string) ([]byte, bool, error)
	Put(bucket, key string, value []byte) error
	Delete(bucket, key string) error
	// ForEach visits every key of a bucket. Missing buckets are empty.
	ForEach(bucket string, fn func(key string, value []byte) error) error
	Close() error
}
