package push

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LogSender is used when no FCM credentials are configured.
type LogSender struct {
	log *zap.Logger
}

func NewLogSender(log *zap.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, token string, msg Message) (string, error) {
	id := "log-" + uuid.NewString()
	s.log.Info("push notification",
		zap.String("message_id", id),
		zap.String("token", mask(token)),
		zap.String("title", msg.Title),
	)
	return id, nil
}

func (s *LogSender) SendMulticast(_ context.Context, tokens []string, msg Message) (int, int, error) {
	s.log.Info("push notification multicast",
		zap.Int("tokens", len(tokens)),
		zap.String("title", msg.Title),
	)
	return len(tokens), 0, nil
}

func mask(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
