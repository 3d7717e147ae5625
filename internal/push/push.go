package push

import (
	"context"
	"errors"
)

var ErrDelivery = errors.New("push delivery failed")

type Message struct {
	Title string
	Body  string
	Data  map[string]string
}

// Sender delivers notifications. Failures are returned, never retried.
type Sender interface {
	Send(ctx context.Context, token string, msg Message) (string, error)
	SendMulticast(ctx context.Context, tokens []string, msg Message) (success int, failure int, err error)
}
