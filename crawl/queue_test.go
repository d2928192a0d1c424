package crawl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueue_Deduplicates(t *testing.T) {
	q := NewQueue()
	q.Add("http://a.com/1")
	q.Add("http://a.com/2")
	q.Add("http://a.com/1")

	assert.Equal(t, 2, q.Visited())
	assert.Equal(t, []string{"http://a.com/1", "http://a.com/2"}, q.All())
}

func TestQueue_BFSOrder(t *testing.T) {
	q := NewQueue()
	q.Add("a")
	q.Add("b")

	assert.True(t, q.HasNext())
	assert.Equal(t, "a", q.Next())

	// Enqueued mid-drain, still comes after b.
	q.Add("c")
	assert.Equal(t, "b", q.Next())
	assert.Equal(t, "c", q.Next())
	assert.False(t, q.HasNext())
}

func TestQueue_VisitedCountsDrained(t *testing.T) {
	q := NewQueue()
	q.Add("a")
	q.Next()
	q.Add("a") // already seen, even though drained

	assert.Equal(t, 1, q.Visited())
	assert.False(t, q.HasNext())
}
