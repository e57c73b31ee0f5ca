package world

import (
	"fmt"
	"slices"
	"sync"

	"github.com/beInDev/vaultmp/core/reconcile"
	"github.com/beInDev/vaultmp/core/records"
	"github.com/beInDev/vaultmp/core/registry"
	"github.com/beInDev/vaultmp/core/value"

	"go.uber.org/zap"
)

// PlayerBase is the base id of a player before it picks a template.
const PlayerBase uint32 = 0x00000007

// DestroyHook runs after an entity left the live set.
type DestroyHook func(e Entity)

// Factory creates, indexes and destroys entities.
type Factory struct {
	logger   *zap.Logger
	lookup   records.Lookup
	defaults *Defaults
	bases    *registry.BaseIDTracker
	windows  *registry.WindowTracker[NetworkID]
	ids      IDAllocator

	mu       sync.RWMutex
	entities map[NetworkID]Entity
	deleted  map[NetworkID]struct{}
	hooks    []DestroyHook
}

// NewFactory creates an empty world.
func NewFactory(logger *zap.Logger, lookup records.Lookup, defaults *Defaults) *Factory {
	return &Factory{
		logger:   logger,
		lookup:   lookup,
		defaults: defaults,
		bases:    registry.NewBaseIDTracker(),
		windows:  registry.NewWindowTracker[NetworkID](),
		entities: make(map[NetworkID]Entity),
		deleted:  make(map[NetworkID]struct{}),
	}
}

// Lookup returns the record tables entities validate against.
func (f *Factory) Lookup() records.Lookup { return f.lookup }

// Defaults returns the server-wide player defaults.
func (f *Factory) Defaults() *Defaults { return f.defaults }

// Bases returns the registry of base ids used by live players.
func (f *Factory) Bases() *registry.BaseIDTracker { return f.bases }

// Windows returns the registry of attached windows.
func (f *Factory) Windows() *registry.WindowTracker[NetworkID] { return f.windows }

// OnDestroy registers a hook run for every destroyed entity.
func (f *Factory) OnDestroy(h DestroyHook) {
	f.mu.Lock()
	f.hooks = append(f.hooks, h)
	f.mu.Unlock()
}

func (f *Factory) register(e Entity) {
	f.mu.Lock()
	f.entities[e.NetworkID()] = e
	f.mu.Unlock()
}

func (f *Factory) newObject(kind Kind, ref, base uint32) *Object {
	return newObject(f.ids.Next(), kind, f.lookup, ref, base)
}

func newContainer(o *Object) *Container {
	return &Container{Object: o, contents: reconcile.NewSnapshot()}
}

func newActor(c *Container) *Actor {
	return &Actor{
		Container:  c,
		baseValues: make(map[uint8]*value.Value[float64]),
		values:     make(map[uint8]*value.Value[float64]),
	}
}

// CreateObject creates a plain object.
func (f *Factory) CreateObject(ref, base uint32) *Object {
	o := f.newObject(KindObject, ref, base)
	f.register(o)
	return o
}

// CreateItem creates a standalone item with one full-condition piece.
func (f *Factory) CreateItem(ref, base uint32) *Item {
	i := &Item{Object: f.newObject(KindItem, ref, base)}
	i.count.Set(1)
	i.condition.Set(100)
	f.register(i)
	return i
}

// CreateContainer creates an empty container.
func (f *Factory) CreateContainer(ref, base uint32) *Container {
	c := newContainer(f.newObject(KindContainer, ref, base))
	f.register(c)
	return c
}

// CreateActor creates an actor with no actor values.
func (f *Factory) CreateActor(ref, base uint32) *Actor {
	a := newActor(newContainer(f.newObject(KindActor, ref, base)))
	f.register(a)
	return a
}

// CreatePlayer creates a player from the default template and adds its base to the registry.
func (f *Factory) CreatePlayer(ref, base uint32) *Player {
	a := newActor(newContainer(f.newObject(KindPlayer, ref, base)))
	for index, v := range PlayerDefaults {
		a.SetActorBaseValue(index, v.Base)
		a.SetActorValue(index, v.Current)
	}
	a.SetRace(RaceCaucasian)
	a.SetFemale(false)

	p := &Player{
		Actor:    a,
		bases:    f.bases,
		tracker:  f.windows,
		controls: registry.NewGuarded(make(map[uint8]Control)),
		windows:  registry.NewGuarded[[]NetworkID](nil),
	}
	p.onCell = p.updateCellContext
	p.respawn.Set(f.defaults.Respawn())
	p.spawnCell.Set(f.defaults.SpawnCell())
	p.console.Set(f.defaults.Console())

	f.bases.Add(base)
	f.register(p)
	return p
}

// Get resolves a network id.
func (f *Factory) Get(id NetworkID) (Entity, error) {
	f.mu.RLock()
	e, ok := f.entities[id]
	f.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return e, nil
}

// GetItem resolves id and requires an Item.
func (f *Factory) GetItem(id NetworkID) (*Item, error) {
	return getAs(f, id, AsItem)
}

// GetContainer resolves id and requires a Container.
func (f *Factory) GetContainer(id NetworkID) (*Container, error) {
	return getAs(f, id, AsContainer)
}

// GetActor resolves id and requires an Actor.
func (f *Factory) GetActor(id NetworkID) (*Actor, error) {
	return getAs(f, id, AsActor)
}

// GetPlayer resolves id and requires a Player.
func (f *Factory) GetPlayer(id NetworkID) (*Player, error) {
	return getAs(f, id, AsPlayer)
}

func getAs[T any](f *Factory, id NetworkID, cast func(Entity) (T, bool)) (T, error) {
	var zero T
	e, err := f.Get(id)
	if err != nil {
		return zero, err
	}
	v, ok := cast(e)
	if !ok {
		return zero, fmt.Errorf("%w: %d is a %s", ErrWrongType, id, e.Kind())
	}
	return v, nil
}

// Destroy removes an entity. Player registry cleanup and destroy hooks run exactly once.
func (f *Factory) Destroy(id NetworkID) error {
	f.mu.Lock()
	e, ok := f.entities[id]
	if !ok {
		f.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	delete(f.entities, id)
	f.deleted[id] = struct{}{}
	hooks := slices.Clone(f.hooks)
	f.mu.Unlock()

	if p, ok := AsPlayer(e); ok {
		if err := p.release(); err != nil {
			f.logger.Error("Player registry cleanup found missing entries",
				zap.Uint64("id", uint64(id)),
				zap.Error(err))
		}
	}

	for _, h := range hooks {
		h(e)
	}
	return nil
}

// IsDeleted reports whether id belonged to an entity that has been destroyed.
func (f *Factory) IsDeleted(id NetworkID) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.deleted[id]
	return ok
}

// Objects returns every live entity ordered by network id.
func (f *Factory) Objects() []Entity {
	f.mu.RLock()
	out := make([]Entity, 0, len(f.entities))
	for _, e := range f.entities {
		out = append(out, e)
	}
	f.mu.RUnlock()

	slices.SortFunc(out, func(a, b Entity) int {
		switch {
		case a.NetworkID() < b.NetworkID():
			return -1
		case a.NetworkID() > b.NetworkID():
			return 1
		default:
			return 0
		}
	})
	return out
}

// Players returns every live player ordered by network id.
func (f *Factory) Players() []*Player {
	var out []*Player
	for _, e := range f.Objects() {
		if p, ok := AsPlayer(e); ok {
			out = append(out, p)
		}
	}
	return out
}

// Count returns the number of live entities.
func (f *Factory) Count() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.entities)
}

// AsItem returns e as an Item.
func AsItem(e Entity) (*Item, bool) {
	c, ok := e.(interface{ item() *Item })
	if !ok {
		return nil, false
	}
	return c.item(), true
}

// AsContainer returns e as a Container. Actors and players are containers.
func AsContainer(e Entity) (*Container, bool) {
	c, ok := e.(interface{ container() *Container })
	if !ok {
		return nil, false
	}
	return c.container(), true
}

// AsActor returns e as an Actor. Players are actors.
func AsActor(e Entity) (*Actor, bool) {
	c, ok := e.(interface{ actor() *Actor })
	if !ok {
		return nil, false
	}
	return c.actor(), true
}

// AsPlayer returns e as a Player. e must be the entity itself: the *Actor
// returned by GetActor for a player does not convert back.
func AsPlayer(e Entity) (*Player, bool) {
	c, ok := e.(interface{ player() *Player })
	if !ok {
		return nil, false
	}
	return c.player(), true
}

// ObjectOf returns the common object part of e.
func ObjectOf(e Entity) *Object {
	return e.object()
}
