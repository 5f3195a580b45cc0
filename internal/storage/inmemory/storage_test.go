package inmemory

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danilovkiri/dk_go_url_dashboard/internal/storage/errors"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/storage/modelstorage"
)

func TestStorage_DumpRetrieve(t *testing.T) {
	st := InitStorage(nil)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		err := st.Dump(ctx, modelstorage.AuditEntry{ID: strconv.Itoa(i), Action: modelstorage.ActionCreate, Short: "s" + strconv.Itoa(i), At: time.Now()})
		require.NoError(t, err)
	}
	count, err := st.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	entries, err := st.Retrieve(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "2", entries[0].ID)
	assert.Equal(t, "1", entries[1].ID)

	entries, err = st.Retrieve(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "0", entries[0].ID)
}

func TestStorage_DumpDuplicate(t *testing.T) {
	st := InitStorage(nil)
	ctx := context.Background()
	require.NoError(t, st.Dump(ctx, modelstorage.AuditEntry{ID: "x"}))
	err := st.Dump(ctx, modelstorage.AuditEntry{ID: "x"})
	var existsErr errors.StorageAlreadyExistsError
	assert.ErrorAs(t, err, &existsErr)
}

func TestStorage_CancelledContext(t *testing.T) {
	st := InitStorage(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := st.Retrieve(ctx, 10, 0)
	assert.ErrorAs(t, err, &errors.ContextTimeoutExceededError{})
	_, err = st.Count(ctx)
	assert.Error(t, err)
}

func TestStorage_ConcurrentDump(t *testing.T) {
	st := InitStorage(nil)
	ctx := context.Background()
	wg := sync.WaitGroup{}
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = st.Dump(ctx, modelstorage.AuditEntry{ID: strconv.Itoa(i)})
		}(i)
	}
	wg.Wait()
	count, err := st.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, count)
	assert.NoError(t, st.PingDB(ctx))
	assert.NoError(t, st.CloseDB())
}
