package storage

// Keys for the records the client keeps between runs. All three cart/session
// records are deleted together on logout.
const (
	KeyUser   = "user"
	KeyCartID = "cartId"
	KeyCart   = "cart"
)

// Store is the durable client-side key/value persistence (the equivalent of
// the browser's local storage).
type Store interface {
	// Get returns the stored value and whether the key was present.
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
	// Delete removes the given keys; missing keys are not an error.
	Delete(keys ...string) error
	Close() error
}
