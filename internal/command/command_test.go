package command

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for command")
		return ""
	}
}

func TestSubscribeDeliversArguments(t *testing.T) {
	b := NewBroker(4, nil, nil)
	got := make(chan string, 1)
	require.NoError(t, b.Subscribe(OpenDirectory, func(path string) { got <- path }))

	b.Publish(OpenDirectory, "/photos")

	assert.Equal(t, "/photos", receive(t, got))
}

func TestConnectToGuiUsesDispatcher(t *testing.T) {
	var mu sync.Mutex
	dispatched := 0
	dispatch := func(fn func()) {
		mu.Lock()
		dispatched++
		mu.Unlock()
		fn()
	}
	b := NewBroker(4, dispatch, nil)
	got := make(chan string, 2)
	require.NoError(t, b.ConnectToGui(EnhanceImage, func() { got <- "enhance" }))
	require.NoError(t, b.ConnectToGui(OpenDirectory, func(path string) { got <- path }))

	b.Publish(EnhanceImage)
	assert.Equal(t, "enhance", receive(t, got))
	b.Publish(OpenDirectory, "/trips")
	assert.Equal(t, "/trips", receive(t, got))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, dispatched)
}

func TestTopicsAreIndependent(t *testing.T) {
	b := NewBroker(4, nil, nil)
	got := make(chan string, 4)
	require.NoError(t, b.Subscribe(RotateClockwise, func() { got <- "cw" }))
	require.NoError(t, b.Subscribe(RotateCounterClockwise, func() { got <- "ccw" }))

	b.Publish(RotateCounterClockwise)

	assert.Equal(t, "ccw", receive(t, got))
	select {
	case v := <-got:
		t.Fatalf("unexpected delivery %q", v)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestConnectToGuiRejectsNonFunc(t *testing.T) {
	b := NewBroker(1, nil, nil)
	assert.Error(t, b.ConnectToGui(SmoothImage, "not a func"))
	assert.Error(t, b.Subscribe(SmoothImage, 42))
}
