package store

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// Factory is a function type that creates a new store.
// This is used to abstract the creation of the store from the code that owns
// it, for example the WAL replay path and the node constructor.
type Factory func() IStore

// IStore is the generic interface for interacting with a key-value store.
type IStore interface {
	// Put inserts or updates a key-value pair.
	Put(key, value string)
	// Get returns the value for a key. The boolean return value indicates
	// whether a value for the key was found.
	Get(key string) (value string, loaded bool)
	// Remove deletes a key-value pair. It returns true iff the key was
	// present.
	Remove(key string) (loaded bool)
	// Len returns the number of entries currently stored.
	Len() int
}
