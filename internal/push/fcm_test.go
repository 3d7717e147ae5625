package push

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessaging struct {
	batches [][]string
	failAt  int
}

func (f *fakeMessaging) Send(_ context.Context, m *messaging.Message) (string, error) {
	return "projects/p/messages/" + m.Token, nil
}

func (f *fakeMessaging) SendEachForMulticast(_ context.Context, m *messaging.MulticastMessage) (*messaging.BatchResponse, error) {
	if len(m.Tokens) > MaxMulticastTokens {
		return nil, errors.New("tokens must not contain more than 500 elements")
	}
	f.batches = append(f.batches, m.Tokens)
	if f.failAt > 0 && len(f.batches) == f.failAt {
		return nil, errors.New("quota exceeded")
	}
	// one failure per batch
	return &messaging.BatchResponse{SuccessCount: len(m.Tokens) - 1, FailureCount: 1}, nil
}

func tokens(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("tok-%d", i)
	}
	return out
}

func TestFCMMulticastSplitsLargeAudiences(t *testing.T) {
	fake := &fakeMessaging{}
	s := &FCMSender{client: fake}

	ok, failed, err := s.SendMulticast(context.Background(), tokens(1203), Message{Title: "notice"})
	require.NoError(t, err)

	require.Len(t, fake.batches, 3)
	assert.Len(t, fake.batches[0], 500)
	assert.Len(t, fake.batches[1], 500)
	assert.Len(t, fake.batches[2], 203)
	assert.Equal(t, "tok-1202", fake.batches[2][202])
	assert.Equal(t, 1200, ok)
	assert.Equal(t, 3, failed)
}

func TestFCMMulticastStopsOnBatchError(t *testing.T) {
	fake := &fakeMessaging{failAt: 2}
	s := &FCMSender{client: fake}

	ok, failed, err := s.SendMulticast(context.Background(), tokens(900), Message{Title: "notice"})
	assert.ErrorIs(t, err, ErrDelivery)
	assert.Len(t, fake.batches, 2)
	assert.Equal(t, 499, ok)
	assert.Equal(t, 1, failed)
}

func TestFCMSendWrapsToken(t *testing.T) {
	s := &FCMSender{client: &fakeMessaging{}}

	id, err := s.Send(context.Background(), "abc", Message{Title: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "projects/p/messages/abc", id)
}
