package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/dreamedu/studio-portal/internal/store"
)

func TestBookingLoadCorruptSnapshotResets(t *testing.T) {
	st := store.NewMemStore()
	st.PutRaw(store.BucketBookings, []byte(`[{"id":"bk-ghost","date":"2030-05-10","startTime":"ten"}]`))

	repo := NewBookingRepository(st, zap.NewNop())
	assert.True(t, repo.Load(context.Background()))
	assert.Empty(t, repo.All())
	assert.False(t, repo.HourTaken("2030-05-10", 10))
}
