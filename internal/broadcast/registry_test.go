package broadcast

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_JoinLeave(t *testing.T) {
	r := NewRegistry(4)

	a := r.Join()
	b := r.Join()
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, 2, r.Len())

	assert.True(t, r.Leave(a))
	assert.False(t, r.Leave(a), "second leave is a no-op")
	assert.Equal(t, 1, r.Len())

	select {
	case <-a.Done():
	default:
		t.Fatal("done channel should be closed after leave")
	}
	select {
	case <-b.Done():
		t.Fatal("remaining subscriber must stay open")
	default:
	}
}

func TestRegistry_LeaveNil(t *testing.T) {
	r := NewRegistry(1)
	assert.False(t, r.Leave(nil))
}

func TestRegistry_DefaultBuffer(t *testing.T) {
	r := NewRegistry(0)
	sub := r.Join()
	assert.Equal(t, defaultBuffer, cap(sub.send))
}

func TestRegistry_SnapshotIsPointInTime(t *testing.T) {
	r := NewRegistry(1)
	a := r.Join()

	snap := r.Snapshot()
	r.Join()
	r.Leave(a)

	require.Len(t, snap, 1)
	assert.Equal(t, a.ID(), snap[0].ID())
	assert.Len(t, r.Snapshot(), 1)
}

func TestRegistry_ConcurrentLeaveRemovesOnce(t *testing.T) {
	r := NewRegistry(1)
	sub := r.Join()

	var removed atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if r.Leave(sub) {
				removed.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), removed.Load())
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_Close(t *testing.T) {
	r := NewRegistry(1)
	a := r.Join()
	b := r.Join()

	assert.Equal(t, 2, r.Close())
	assert.Equal(t, 0, r.Len())
	assert.False(t, r.Leave(a))
	<-a.Done()
	<-b.Done()
}
