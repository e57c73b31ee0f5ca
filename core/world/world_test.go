package world

import (
	"testing"
	"time"

	"github.com/beInDev/vaultmp/core/reconcile"
	"github.com/beInDev/vaultmp/core/records"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	cellMegaton  uint32 = 100
	cellEast     uint32 = 101
	cellVault    uint32 = 200
	weaponRifle  uint32 = 4002
	weaponFists  uint32 = 4003
	itemStimpack uint32 = 4001
)

func testLookup() *records.Table {
	return records.NewTable(records.Data{
		Cells: []records.Cell{{ID: cellMegaton, Name: "Megaton"}, {ID: cellVault, Name: "Vault 101"}},
		Exteriors: []records.Exterior{
			{Cell: cellMegaton, World: 60, X: 0, Y: 0},
			{Cell: cellEast, World: 60, X: 1, Y: 0},
		},
		Weapons: []records.Weapon{
			{Base: weaponRifle, Name: "Assault Rifle", Automatic: true, FireRate: 7.5},
			{Base: weaponFists, Name: "Fists", Unarmed: true},
		},
	})
}

func newTestFactory(t *testing.T) *Factory {
	t.Helper()
	lookup := testLookup()
	defaults := NewDefaults(lookup, 5*time.Second, true)
	_, err := defaults.SetSpawnCell(cellVault)
	require.NoError(t, err)
	return NewFactory(zap.NewNop(), lookup, defaults)
}

func TestFactory_CreateAndResolve(t *testing.T) {
	f := newTestFactory(t)

	obj := f.CreateObject(0x10, 0x20)
	item := f.CreateItem(0x11, itemStimpack)
	actor := f.CreateActor(0x12, 0x30)
	player := f.CreatePlayer(0x13, 0x40)

	assert.NotEqual(t, obj.NetworkID(), item.NetworkID())
	assert.Equal(t, 4, f.Count())

	e, err := f.Get(player.NetworkID())
	require.NoError(t, err)
	assert.Equal(t, KindPlayer, e.Kind())

	_, ok := AsActor(e)
	assert.True(t, ok, "players are actors")
	_, ok = AsContainer(e)
	assert.True(t, ok, "players are containers")
	_, ok = AsPlayer(actor)
	assert.False(t, ok)
	_, ok = AsContainer(item)
	assert.False(t, ok)

	_, err = f.GetActor(obj.NetworkID())
	assert.ErrorIs(t, err, ErrWrongType)

	narrowed, err := f.GetActor(player.NetworkID())
	require.NoError(t, err)
	_, ok = AsPlayer(narrowed)
	assert.False(t, ok, "a narrowed actor no longer answers as a player")
	_, ok = AsPlayer(e)
	assert.True(t, ok)

	_, err = f.Get(9999)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, 1, item.Count())
	assert.Equal(t, 100.0, item.Condition())
	assert.Len(t, f.Players(), 1)
}

func TestFactory_PlayerDefaults(t *testing.T) {
	f := newTestFactory(t)
	p := f.CreatePlayer(0x13, 0x40)

	assert.Equal(t, 200.0, p.ActorBaseValue(AVHealth))
	assert.Equal(t, 1.0, p.ActorBaseValue(AVUnarmedDamage))
	assert.Equal(t, 1.25, p.ActorValue(AVUnarmedDamage))
	assert.Equal(t, 15.0, p.ActorValue(AVSneak))
	assert.Len(t, p.ActorValues(), len(PlayerDefaults))
	assert.Equal(t, RaceCaucasian, p.Race())
	assert.False(t, p.Female())
	assert.Equal(t, 5*time.Second, p.Respawn())
	assert.Equal(t, cellVault, p.SpawnCell())
	assert.True(t, p.ConsoleEnabled())
}

func TestFactory_DestroyCleansRegistriesOnce(t *testing.T) {
	f := newTestFactory(t)

	a := f.CreatePlayer(1, 0x40)
	b := f.CreatePlayer(2, 0x40)
	assert.Equal(t, []uint32{0x40, 0x40}, f.Bases().Snapshot())

	const window NetworkID = 777
	assert.True(t, a.AttachWindow(window))
	assert.False(t, a.AttachWindow(window), "attach is idempotent")
	assert.True(t, b.AttachWindow(window))
	assert.Equal(t, []NetworkID{a.NetworkID(), b.NetworkID()}, f.Windows().Members(window))

	var destroyed []NetworkID
	f.OnDestroy(func(e Entity) { destroyed = append(destroyed, e.NetworkID()) })

	require.NoError(t, f.Destroy(a.NetworkID()))
	assert.ErrorIs(t, f.Destroy(a.NetworkID()), ErrNotFound)

	assert.Equal(t, []uint32{0x40}, f.Bases().Snapshot(), "exactly one base slot removed")
	assert.Equal(t, []NetworkID{b.NetworkID()}, f.Windows().Members(window))
	assert.Equal(t, []NetworkID{a.NetworkID()}, destroyed)
	assert.True(t, f.IsDeleted(a.NetworkID()))
	assert.False(t, f.IsDeleted(b.NetworkID()))
}

func TestPlayer_SetBaseReplacesInPlace(t *testing.T) {
	f := newTestFactory(t)
	p := f.CreatePlayer(1, 0)

	changed, err := p.SetBase(0x50)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []uint32{0x50}, f.Bases().Snapshot())

	changed, err = p.SetBase(0x50)
	require.NoError(t, err)
	assert.False(t, changed)

	require.NoError(t, f.Destroy(p.NetworkID()))
	assert.Empty(t, f.Bases().Snapshot())
}

func TestObject_SetNetworkCell(t *testing.T) {
	f := newTestFactory(t)
	p := f.CreatePlayer(1, 0x40)

	changed, err := p.SetNetworkCell(cellMegaton)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, records.Adjacency{cellMegaton, 0, 0, 0, 0, cellEast, 0, 0, 0}, p.CellContext())

	changed, err = p.SetNetworkCell(0xBAD)
	assert.ErrorIs(t, err, ErrInvalidCell)
	assert.False(t, changed)
	assert.Equal(t, cellMegaton, p.NetworkCell(), "invalid cell leaves state untouched")

	_, err = p.SetNetworkCell(cellVault)
	require.NoError(t, err)
	assert.Equal(t, records.Adjacency{cellVault}, p.CellContext())

	changed, err = p.SetNetworkCell(cellVault)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestPlayer_SpawnCellAndControls(t *testing.T) {
	f := newTestFactory(t)
	p := f.CreatePlayer(1, 0x40)

	_, err := p.SetSpawnCell(0xBAD)
	assert.ErrorIs(t, err, ErrInvalidCell)
	assert.Equal(t, cellVault, p.SpawnCell())

	assert.True(t, p.SetControl(3, 0x11))
	assert.False(t, p.SetControl(3, 0x11))
	assert.True(t, p.SetControlEnabled(3, true))

	c, ok := p.Control(3)
	require.True(t, ok)
	assert.Equal(t, Control{Key: 0x11, Enabled: true}, c)
	assert.Len(t, p.Controls(), 1)
}

func TestActor_WeaponState(t *testing.T) {
	f := newTestFactory(t)
	a := f.CreateActor(1, 0x30)

	tests := []struct {
		name                 string
		contents             []reconcile.Stack
		anim                 uint8
		punch, power, firing bool
	}{
		{"unarmed attack", nil, AnimAttackLeft, true, false, false},
		{"unarmed power attack", nil, AnimAttackPower, false, true, false},
		{"fists attack", []reconcile.Stack{{Base: weaponFists, Count: 1, Equipped: true}}, AnimAttackRight, true, false, false},
		{"rifle attack", []reconcile.Stack{{Base: weaponRifle, Count: 1, Equipped: true}}, AnimAttackLeft, false, false, true},
		{"rifle carried not equipped", []reconcile.Stack{{Base: weaponRifle, Count: 1}}, AnimAttackLeft, true, false, false},
		{"rifle aim", []reconcile.Stack{{Base: weaponRifle, Count: 1, Equipped: true}}, AnimAim, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a.SetContents(tt.contents...)
			a.SetWeaponAnimation(tt.anim)

			assert.Equal(t, tt.punch, a.IsPunching())
			assert.Equal(t, tt.power, a.IsPowerPunching())
			assert.Equal(t, tt.firing, a.IsFiring())
		})
	}
}

func TestContainer_AddItemAndApply(t *testing.T) {
	f := newTestFactory(t)
	c := f.CreateContainer(1, 0x60)

	diff := c.AddItem(itemStimpack, 2, 100, false)
	assert.True(t, c.IsEmpty(), "AddItem does not apply")

	effects := c.ApplyDiff(diff)
	require.Len(t, effects, 1)
	assert.Equal(t, []reconcile.Stack{{Base: itemStimpack, Count: 2, Condition: 100}}, c.Contents())
	assert.Empty(t, c.EquippedBases())
}

func TestDefaults(t *testing.T) {
	d := NewDefaults(testLookup(), time.Second, false)

	_, err := d.SetSpawnCell(0xBAD)
	assert.ErrorIs(t, err, ErrInvalidCell)
	assert.Equal(t, uint32(0), d.SpawnCell())

	changed, err := d.SetSpawnCell(cellMegaton)
	assert.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, d.SetRespawn(2*time.Second))
	assert.False(t, d.SetConsole(false))

	g := NewGlobals(Clock{Year: 2277, Month: 9, Day: 23, Hour: 8}, 0x1)
	assert.True(t, g.Clock().Valid())
	assert.False(t, g.SetWeather(0x1))
}

func TestConfig(t *testing.T) {
	c := Config{RespawnMS: 8000, SpawnCell: "0x000000C8", Year: 2277, Month: 6, Day: 17, Hour: 8, Weather: "2A"}
	require.NoError(t, c.Validate())
	assert.Equal(t, 8*time.Second, c.Respawn())
	assert.Equal(t, Clock{Year: 2277, Month: 6, Day: 17, Hour: 8}, c.Clock())

	cell, err := c.SpawnCellID()
	require.NoError(t, err)
	assert.Equal(t, cellVault, cell)
	weather, err := c.WeatherID()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x2A), weather)

	bad := c
	bad.Month = 12
	assert.Error(t, bad.Validate())
	bad = c
	bad.SpawnCell = "vault"
	assert.Error(t, bad.Validate())
	bad = c
	bad.RespawnMS = -1
	assert.Error(t, bad.Validate())
}
