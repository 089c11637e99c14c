package usecase

import "context"

// PushSender abstracts the push gateway so tests can record deliveries.
type PushSender interface {
	Send(ctx context.Context, token, title, body string, data map[string]interface{}) error
}
