package main

import (
	"errors"
	"testing"
	"time"
)

func TestDrainErrors(t *testing.T) {
	errs := make(chan error, 64)
	go drainErrors(&Config{}, errs)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			errs <- errors.New("write failed")
		}
		close(errs)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("error channel backed up past its buffer")
	}
}
