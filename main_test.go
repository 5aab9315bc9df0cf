package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCommandGuard_DrainWaitsForRunningCommand(t *testing.T) {
	var g commandGuard
	started := make(chan struct{})
	release := make(chan struct{})
	finished := make(chan struct{})

	go g.Run(func() {
		close(started)
		<-release
		close(finished)
	})
	<-started

	drained := make(chan struct{})
	go func() {
		g.Drain()
		close(drained)
	}()

	select {
	case <-drained:
		t.Fatal("drain returned while a command was running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case <-drained:
	case <-time.After(time.Second):
		t.Fatal("drain did not return after the command finished")
	}
	select {
	case <-finished:
	default:
		t.Fatal("command did not complete before drain")
	}
}

func TestCommandGuard_DrainWhenIdle(t *testing.T) {
	var g commandGuard
	ran := false
	g.Run(func() { ran = true })
	assert.True(t, ran)

	done := make(chan struct{})
	go func() {
		g.Drain()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("drain blocked with no command running")
	}
}
