package utils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeCounter(t *testing.T) {
	t.Parallel()
	c := NewSafeCounter(0)
	assert.Equal(t, 0, c.Get())
	c.Inc()
	assert.Equal(t, 1, c.Get())
	assert.Equal(t, 2, c.IncAndGet())
	assert.Equal(t, 2, c.Get())
}

func TestSafeCounterParallel(t *testing.T) {
	t.Parallel()
	c := &SafeCounter{}
	wg := &sync.WaitGroup{}
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Inc()
		}()
	}
	wg.Wait()
	assert.Equal(t, 100, c.Get())
}
