package application_test

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/gracehub/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/gracehub/internal/application"
)

func TestMessageService_ConcurrentActivationKeepsOneActive(t *testing.T) {
	ctx := context.Background()

	db, err := sqlite.NewDB(ctx, filepath.Join(t.TempDir(), "messages.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = sqlite.RunMigrations(db.Writer)
	require.NoError(t, err)

	store := sqlite.NewMessageRepo(db)
	svc := application.NewMessageService(store)

	seed := make([]int64, 0, 5)
	for i := range 5 {
		msg, err := svc.Create(ctx, application.MessageInput{Title: fmt.Sprintf("seed %d", i), Body: "body"})
		require.NoError(t, err)
		seed = append(seed, msg.ID)
	}

	var (
		done       atomic.Bool
		violations atomic.Int64
		observer   sync.WaitGroup
	)
	observer.Add(1)
	go func() {
		defer observer.Done()
		for !done.Load() {
			n, err := store.CountActive(ctx)
			if err == nil && n > 1 {
				violations.Add(1)
			}
		}
	}()

	var writers sync.WaitGroup
	for i := range 20 {
		writers.Add(1)
		go func() {
			defer writers.Done()
			if i%2 == 0 {
				_, err := svc.Create(ctx, application.MessageInput{Title: fmt.Sprintf("writer %d", i), Body: "body"})
				assert.NoError(t, err)
				return
			}
			_, err := svc.Activate(ctx, seed[i%len(seed)])
			assert.NoError(t, err)
		}()
	}
	writers.Wait()
	done.Store(true)
	observer.Wait()

	assert.Zero(t, violations.Load(), "observed more than one active message")

	n, err := store.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
