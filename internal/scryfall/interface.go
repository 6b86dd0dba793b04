package scryfall

import "context"

// ClientInterface defines the interface for Scryfall API operations.
// This interface enables testability by allowing mock implementations.
type ClientInterface interface {
	RandomCard(ctx context.Context, setCode string) (*Card, error)
	Sets(ctx context.Context) ([]Set, error)
}

// Ensure Client implements the interface
var _ ClientInterface = (*Client)(nil)
