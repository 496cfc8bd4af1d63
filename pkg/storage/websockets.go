package storage

import "context"

// WebsocketStore defines the interface for tracking live websocket
// connections used for wallet-update pushes.
type WebsocketStore interface {
	AddConnection(ctx context.Context, connectionID string) error
	RemoveConnection(ctx context.Context, connectionID string) error
	GetAllConnections(ctx context.Context) ([]string, error)
}
