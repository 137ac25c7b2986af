package console_test

import (
	"sync"
	"testing"
	"time"

	console "github.com/goliatone/go-wallet-console"
	"github.com/stretchr/testify/assert"
)

func TestClockIDGeneratorIsMonotonicWithinOneMillisecond(t *testing.T) {
	frozen := time.UnixMilli(1_700_000_000_000)
	ids := console.NewClockIDGenerator(func() time.Time { return frozen })

	assert.Equal(t, int64(1_700_000_000_000), ids.NextID())
	assert.Equal(t, int64(1_700_000_000_001), ids.NextID())
	assert.Equal(t, int64(1_700_000_000_002), ids.NextID())
}

func TestClockIDGeneratorConcurrentUnique(t *testing.T) {
	ids := console.NewClockIDGenerator(nil)
	const workers, perWorker = 8, 200

	var mu sync.Mutex
	seen := make(map[int64]struct{}, workers*perWorker)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				id := ids.NextID()
				mu.Lock()
				seen[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, seen, workers*perWorker)
}

func TestSequenceIDGenerator(t *testing.T) {
	ids := console.NewSequenceIDGenerator(10)
	assert.Equal(t, int64(10), ids.NextID())
	assert.Equal(t, int64(11), ids.NextID())

	fixed := console.IDGeneratorFunc(func() int64 { return 7 })
	assert.Equal(t, int64(7), fixed.NextID())
}
