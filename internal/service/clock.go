package service

import (
	"sync"
	"time"
)

// Clock is one side's chess clock. When it runs out it calls onFlag from its
// own goroutine.
type Clock struct {
	mu          sync.Mutex
	timeLeft    time.Duration
	lastStarted time.Time // When the clock was last started
	isRunning   bool
	timer       *time.Timer
	onFlag      func()
}

func NewClock(initialTime time.Duration, onFlag func()) *Clock {
	return &Clock{
		timeLeft: initialTime,
		onFlag:   onFlag,
	}
}

func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isRunning || c.timeLeft <= 0 {
		return
	}
	c.lastStarted = time.Now()
	c.isRunning = true
	if c.onFlag != nil {
		c.timer = time.AfterFunc(c.timeLeft, c.onFlag)
	}
}

func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isRunning {
		return
	}
	c.timeLeft -= time.Since(c.lastStarted)
	c.isRunning = false
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isRunning
}

// TimeLeft never goes below zero.
func (c *Clock) TimeLeft() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	left := c.timeLeft
	if c.isRunning {
		left -= time.Since(c.lastStarted)
	}
	return max(left, 0)
}
