package network

import (
	"encoding/json"
	"testing"

	"github.com/beInDev/vaultmp/core/world"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testMessage string

func (m testMessage) MessageType() string { return string(m) }

func TestClients_NetworkList(t *testing.T) {
	c := NewClients()
	a, b, d := NewGUID(), NewGUID(), NewGUID()

	c.Register(a, 1)
	c.Register(b, 2)
	c.Register(d, 3)

	assert.Equal(t, []GUID{a, b, d}, c.All())
	assert.Equal(t, []GUID{a, d}, c.Observers(b))
	assert.Equal(t, 3, c.Len())

	player, err := c.PlayerOf(d)
	require.NoError(t, err)
	assert.Equal(t, world.NetworkID(3), player)

	cl, err := c.Remove(b)
	require.NoError(t, err)
	assert.Equal(t, world.NetworkID(2), cl.Player)

	_, err = c.Remove(b)
	assert.ErrorIs(t, err, ErrUnknownClient)
	_, err = c.PlayerOf(b)
	assert.ErrorIs(t, err, ErrUnknownClient)

	assert.Equal(t, []GUID{a, d}, c.All())
}

func TestClients_RegisterTwiceRebinds(t *testing.T) {
	c := NewClients()
	a := NewGUID()

	c.Register(a, 1)
	c.Register(a, 7)

	assert.Equal(t, 1, c.Len())
	player, _ := c.PlayerOf(a)
	assert.Equal(t, world.NetworkID(7), player)
}

func TestComposer(t *testing.T) {
	to := To(NewGUID())

	o := Ordered(testMessage("update_value"), to)
	assert.Equal(t, PriorityHigh, o.Priority)
	assert.Equal(t, ReliableOrdered, o.Reliability)
	assert.Equal(t, ChannelGame, o.Channel)
	assert.False(t, o.Reliability.Sequenced())

	s := Sequenced(testMessage("update_pos"), to)
	assert.Equal(t, ReliableSequenced, s.Reliability)
	assert.True(t, s.Reliability.Sequenced())

	assert.Equal(t, []string{"update_value", "update_pos"}, Responses{o, s}.Types())
}

func TestParseGUID(t *testing.T) {
	g := NewGUID()
	parsed, err := ParseGUID(g.String())
	require.NoError(t, err)
	assert.Equal(t, g, parsed)

	_, err = ParseGUID("nope")
	assert.Error(t, err)
}

func TestGUIDJSON(t *testing.T) {
	c := Client{GUID: NewGUID(), Player: 3}
	raw, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"guid":"`+c.GUID.String()+`"`)

	var back Client
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, c.GUID, back.GUID)
}
