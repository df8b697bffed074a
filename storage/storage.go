package storage

// Well-known keys used by the session layer.
const (
	// KeyToken holds the opaque bearer credential string.
	KeyToken = "token"
	// KeyUser holds the JSON-serialized user record.
	KeyUser = "user"
	// KeyJustLoggedOut is a one-shot marker consumed by the next post-auth
	// redirect decision. Ephemeral store only.
	KeyJustLoggedOut = "just_logged_out"
)

// Store defines string key/value persistence.
//
// Get returns ("", false, nil) for a missing key; an error is reserved for
// backend failures (unreadable file, bad permissions), never for absence.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (value string, ok bool, err error)

	// Set writes the value for key, replacing any previous value.
	Set(key, value string) error

	// Delete removes the key. Removing an absent key is not an error.
	Delete(key string) error

	// Keys returns all present keys.
	Keys() ([]string, error)
}
