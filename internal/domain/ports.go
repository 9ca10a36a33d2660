package domain

import "context"

// ProductStore persists product codes.
type ProductStore interface {
	// Insert appends one row per code in batch order.
	Insert(ctx context.Context, batch Batch) error
	// Scan returns every stored code in store-defined order.
	Scan(ctx context.Context) ([]ProductCode, error)
	Count(ctx context.Context) (int, error)
}

// Session owns the store connection lifecycle.
type Session interface {
	// Close flushes pending writes when commit is true, then releases the connection.
	Close(commit bool) error
}

// CodeSource is an external capture device yielding a batch of codes per activation.
type CodeSource interface {
	Capture(ctx context.Context) ([]string, error)
}

// ConfigLoader loads tool configuration.
type ConfigLoader interface {
	Load(path string) (Config, error)
}
