package core

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSeed_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	seen := make([][]uint64, 2)
	for g := range seen {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				seen[g] = append(seen[g], NewSeed())
			}
		}()
	}
	wg.Wait()
	assert.Len(t, seen[0], 1000)
	assert.Len(t, seen[1], 1000)
	assert.NotEqual(t, seen[0], seen[1])
}
