package snowflake

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenID(t *testing.T) {
	id := GenID()
	assert.Positive(t, id)
}

// 多个 goroutine 同时取号不能重复
func TestGenID_Concurrent(t *testing.T) {
	const (
		goroutines = 16
		perRoutine = 2000
	)

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = make(map[int64]struct{}, goroutines*perRoutine)
		dup int64
	)

	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perRoutine; i++ {
				id := GenID()
				mu.Lock()
				if _, exists := ids[id]; exists {
					dup = id
				}
				ids[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Zero(t, dup, "duplicate id")
	assert.Len(t, ids, goroutines*perRoutine)
}

// 同一节点上 id 单调递增
func TestGenID_Order(t *testing.T) {
	prev := GenID()
	for i := 0; i < 1000; i++ {
		curr := GenID()
		require.Greater(t, curr, prev)
		prev = curr
	}
}

func TestInitInvalidNodeKeepsDefault(t *testing.T) {
	before := node
	Init(-1)
	assert.Same(t, before, node)
}
