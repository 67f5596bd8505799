package domain

import "context"

// Keys of the three independently persisted values. Each is saved on its
// own; there is no cross-key transaction.
const (
	KeyHotels  = "hotelsList"
	KeyUsers   = "usersList"
	KeySession = "currentUser"
)

// Store is a synchronous key-value blob store. Load reports false when the
// key is absent and returns an error on malformed data; callers recover by
// falling back to their documented default.
type Store interface {
	Load(ctx context.Context, key string, dst any) (bool, error)
	Save(ctx context.Context, key string, v any) error
	Delete(ctx context.Context, key string) error
}

// PasswordHasher produces the stored digest for a password and checks a
// login candidate against one.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(digest, password string) bool
}
