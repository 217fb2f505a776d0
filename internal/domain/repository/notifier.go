package repository

import "context"

// Notifier pushes messages and documents to the configured chat.
type Notifier interface {
	SendText(ctx context.Context, message string) error
	SendDocument(ctx context.Context, path string, caption string) error
}
