package utils

import (
	"sync"
)

// SafeCounter is a counter safe for concurrent use.
type SafeCounter struct {
	lock  sync.Mutex
	value int
}

func NewSafeCounter(value int) *SafeCounter {
	return &SafeCounter{value: value}
}

func (c *SafeCounter) Inc() {
	c.IncAndGet()
}

func (c *SafeCounter) IncAndGet() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.value++
	return c.value
}

func (c *SafeCounter) Get() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.value
}
