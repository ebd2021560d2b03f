package service

import (
	"testing"
	"time"
)

func TestClockStartStop(t *testing.T) {
	c := NewClock(time.Second, nil)
	if c.Running() || c.TimeLeft() != time.Second {
		t.Fatalf("new clock: running %v left %v", c.Running(), c.TimeLeft())
	}
	c.Start()
	time.Sleep(10 * time.Millisecond)
	c.Stop()
	left := c.TimeLeft()
	if left >= time.Second || left <= 0 {
		t.Errorf("TimeLeft() = %v after running briefly", left)
	}
	time.Sleep(10 * time.Millisecond)
	if c.TimeLeft() != left {
		t.Errorf("stopped clock kept running")
	}
}

func TestClockFlagCallback(t *testing.T) {
	flagged := make(chan struct{})
	c := NewClock(10*time.Millisecond, func() { close(flagged) })
	c.Start()
	select {
	case <-flagged:
	case <-time.After(time.Second):
		t.Fatal("onFlag not called")
	}
	if c.TimeLeft() != 0 {
		t.Errorf("TimeLeft() = %v, want 0", c.TimeLeft())
	}
}

func TestStoppedClockDoesNotFlag(t *testing.T) {
	flagged := make(chan struct{}, 1)
	c := NewClock(20*time.Millisecond, func() { flagged <- struct{}{} })
	c.Start()
	c.Stop()
	select {
	case <-flagged:
		t.Fatal("stopped clock flagged")
	case <-time.After(50 * time.Millisecond):
	}
}
