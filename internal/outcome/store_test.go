package outcome

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryType(t *testing.T) {
	assert.Equal(t, "likeRequest", Like.Type(Pending))
	assert.Equal(t, "deletePostSuccess", DeletePost.Type(Success))
	assert.Equal(t, "updateCaptionFailure", UpdateCaption.Type(Failure))
}

func TestStoreKeepsLatestPerCategory(t *testing.T) {
	s := NewStore()

	s.Emit(New(Like, Pending, "a", ""))
	s.Emit(New(Like, Success, "a", "liked"))
	s.Emit(New(DeletePost, Failure, "b", "not found"))

	like, ok := s.Latest(Like)
	require.True(t, ok)
	assert.Equal(t, Success, like.Phase)
	assert.Equal(t, "liked", like.Payload)
	assert.Equal(t, "likeSuccess", like.Type)

	_, ok = s.Latest(AddComment)
	assert.False(t, ok)

	snap := s.Snapshot()
	assert.Len(t, snap, 2)
	assert.Equal(t, "not found", snap[DeletePost].Payload)
}

func TestStoreSubscribe(t *testing.T) {
	s := NewStore()

	var got []string
	unsubscribe := s.Subscribe(func(sig Signal) {
		// Reading the store from a subscriber must not deadlock.
		_, _ = s.Latest(sig.Category)
		got = append(got, sig.Type)
	})

	s.Emit(New(AddComment, Pending, "x", ""))
	s.Emit(New(AddComment, Success, "x", "comment added"))
	unsubscribe()
	s.Emit(New(AddComment, Pending, "y", ""))

	assert.Equal(t, []string{"addCommentRequest", "addCommentSuccess"}, got)
}

func TestStoreConcurrentEmit(t *testing.T) {
	s := NewStore()

	var mu sync.Mutex
	count := 0
	s.Subscribe(func(Signal) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Emit(New(Like, Pending, "", ""))
			s.Emit(New(Like, Success, "", "liked"))
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, count)
	_, ok := s.Latest(Like)
	assert.True(t, ok)
}
