package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsUniqueAndSorted(t *testing.T) {
	const n = 1000
	seen := make(map[string]bool, n)

	prev := ""
	for i := 0; i < n; i++ {
		id := New()
		assert.Len(t, id, 26)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true

		// Monotonic entropy keeps same-millisecond IDs ordered.
		assert.True(t, id > prev, "id %s not greater than %s", id, prev)
		prev = id
	}
}
