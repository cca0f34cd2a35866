package sender

import (
	"context"
	"time"
)

type SendResult struct {
	MessageID string
	SentAt    time.Time
}

// MessageSender delivers a plain-text chat message to a phone number
//
//go:generate mockgen -destination=mocks/mock_sender.go -package=mocks -source=sender.go MessageSender
type MessageSender interface {
	SendText(ctx context.Context, to, body string) (SendResult, error)
}
