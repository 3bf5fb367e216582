package eventbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcast_DeliversToRegisteredListener(t *testing.T) {
	bus := New()
	ch := bus.Register(TopicRules)

	bus.Broadcast(TopicRules, Applied, "rule added")

	ev := <-ch
	assert.Equal(t, Applied, ev.Type)
	assert.Equal(t, "rule added", ev.Message)
}

func TestDeregister_RemovesAndClosesChannel(t *testing.T) {
	bus := New()
	ch := bus.Register(TopicRules)
	other := bus.Register(TopicRules)

	bus.Deregister(TopicRules, ch)
	bus.Broadcast(TopicRules, Info, "after deregister")

	_, open := <-ch
	assert.False(t, open)

	ev := <-other
	assert.Equal(t, "after deregister", ev.Message)
}

func TestBroadcast_StalledListenerDoesNotBlock(t *testing.T) {
	bus := New()
	ch := bus.Register(TopicRules)

	for i := 0; i < 150; i++ {
		bus.Broadcast(TopicRules, Info, "burst")
	}

	// the buffer holds 100; the rest were dropped rather than blocking
	require.Len(t, ch, 100)
}
