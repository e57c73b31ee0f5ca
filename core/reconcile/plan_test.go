package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestApply_EquipScenario equips a carried item through a count-neutral entry.
func TestApply_EquipScenario(t *testing.T) {
	s := NewSnapshot(Stack{Base: 0xA, Count: 1, Condition: 100})

	effects := Apply(s, Diff{{Base: 0xA, Count: 0, Condition: 100, PrevCondition: 100, Equipped: EquipOn}})

	assert.Equal(t, []Stack{{Base: 0xA, Count: 1, Condition: 100, Equipped: true}}, s.Stacks())
	require.Len(t, effects, 1)
	assert.Equal(t, EquipOn, effects[0].Equipped)
	assert.Equal(t, 0, effects[0].Count)
}

func TestApply_ReportsOnlyAppliedEffects(t *testing.T) {
	s := NewSnapshot(Stack{Base: 1, Count: 2, Condition: 50, Equipped: true})

	effects := Apply(s, Diff{
		{Base: 1, Count: 0, Condition: 50, PrevCondition: 50, Equipped: EquipOn},
		{Base: 2, Count: -3, Condition: 0},
	})

	assert.Empty(t, effects, "already equipped and removing from an empty stack are no-ops")
	assert.Equal(t, 1, s.Len())
}

func TestApply_ClampsAndRemoves(t *testing.T) {
	s := NewSnapshot(Stack{Base: 1, Count: 2, Condition: 50})

	effects := Apply(s, Diff{{Base: 1, Count: -5, Condition: 50, PrevCondition: 50}})

	assert.Equal(t, 0, s.Len())
	require.Len(t, effects, 1)
	assert.Equal(t, -2, effects[0].Count)
}

func TestEffects_WithoutBase(t *testing.T) {
	effects := Effects{{Base: 1, Count: 1}, {Base: 2, Count: -1}, {Base: 1, Count: 2}}

	got := effects.WithoutBase(1)
	assert.Equal(t, Effects{{Base: 2, Count: -1}}, got)
}

func TestDiff_Validate(t *testing.T) {
	assert.NoError(t, Diff{{Base: 1}, {Base: 2}}.Validate())
	assert.ErrorIs(t, Diff{{Base: 1}, {Base: 1}}.Validate(), ErrInvalidDiff)
	assert.ErrorIs(t, Diff{{Base: 1, Equipped: 3}}.Validate(), ErrInvalidDiff)
}

func TestAdd(t *testing.T) {
	s := NewSnapshot(Stack{Base: 1, Count: 1, Condition: 100})

	diff := Add(s, 1, 2, 100, true)
	require.Len(t, diff, 1)
	assert.Equal(t, 2, diff[0].Count)
	assert.Equal(t, EquipOn, diff[0].Equipped)

	// Add does not mutate.
	st, _ := s.Get(1)
	assert.Equal(t, 1, st.Count)

	Apply(s, diff)
	st, _ = s.Get(1)
	assert.Equal(t, 3, st.Count)
	assert.True(t, st.Equipped)
}

func TestNetDiff(t *testing.T) {
	n := NetDiff{Entries: []Entry{{Base: 3}, {Base: 1}}}

	assert.Equal(t, []uint32{1, 3}, n.Diff().Bases())
	assert.False(t, n.IsEmpty())
	assert.True(t, NetDiff{}.IsEmpty())
	assert.Equal(t, n.Diff(), ToNet(n.Diff()).Diff())
}
