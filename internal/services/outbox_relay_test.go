package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"karesave-backend/internal/models"
	"karesave-backend/pkg/messaging"
)

func TestOutboxRelay_RunOnce(t *testing.T) {
	repo := &outboxRepoMock{}
	pub := &publisherMock{}
	relay := NewOutboxRelay(repo, pub, "karesave", time.Second, 10, zap.NewNop())

	ok := models.OutboxEvent{
		ID:            uuid.New(),
		AggregateType: "order",
		AggregateID:   "o-1",
		EventType:     messaging.EventOrderPlaced,
		Payload:       models.JSONB{"grand_total": 31000},
		CreatedAt:     time.Now(),
	}
	bad := models.OutboxEvent{
		ID:            uuid.New(),
		AggregateType: "contact",
		AggregateID:   "c-1",
		EventType:     messaging.EventContactSubmitted,
		Attempts:      2,
	}
	repo.On("ListUnpublished", mock.Anything, 10).Return([]models.OutboxEvent{ok, bad}, nil).Once()

	pub.On("Publish", mock.Anything, "karesave.order.placed", "o-1", mock.MatchedBy(func(e messaging.Event) bool {
		var data map[string]interface{}
		return e.ID == ok.ID.String() && json.Unmarshal(e.Data, &data) == nil && data["grand_total"] == float64(31000)
	})).Return(nil).Once()
	pub.On("Publish", mock.Anything, "karesave.contact.submitted", "c-1", mock.Anything).
		Return(errors.New("leader not available")).Once()

	repo.On("MarkPublished", mock.Anything, ok.ID, mock.Anything).Return(nil).Once()
	repo.On("MarkFailed", mock.Anything, bad.ID, "leader not available").Return(nil).Once()

	n, err := relay.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestOutboxRelay_ListError(t *testing.T) {
	repo := &outboxRepoMock{}
	relay := NewOutboxRelay(repo, &publisherMock{}, "", 0, 0, zap.NewNop())
	repo.On("ListUnpublished", mock.Anything, 100).Return(nil, errors.New("timeout")).Once()

	_, err := relay.RunOnce(context.Background())
	assert.Error(t, err)
}

func TestOutboxRelay_StartStop(t *testing.T) {
	repo := &outboxRepoMock{}
	relay := NewOutboxRelay(repo, &publisherMock{}, "", 10*time.Millisecond, 5, zap.NewNop())
	called := make(chan struct{}, 1)
	repo.On("ListUnpublished", mock.Anything, 5).Return(nil, nil).Run(func(mock.Arguments) {
		select {
		case called <- struct{}{}:
		default:
		}
	})

	relay.Start(context.Background())
	select {
	case <-called:
	case <-time.After(time.Second):
		t.Fatal("relay never polled")
	}
	relay.Stop()
	relay.Stop()
}
