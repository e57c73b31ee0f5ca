package world

import (
	"sync"

	"github.com/beInDev/vaultmp/core/value"
)

// Actor is a container with actor values and animation state.
type Actor struct {
	*Container

	avMu       sync.Mutex
	baseValues map[uint8]*value.Value[float64]
	values     map[uint8]*value.Value[float64]

	race       value.Value[uint32]
	age        value.Value[int]
	female     value.Value[bool]
	dead       value.Value[bool]
	alerted    value.Value[bool]
	sneaking   value.Value[bool]
	idle       value.Value[uint32]
	moving     value.Value[uint8]
	movingXY   value.Value[uint8]
	weaponAnim value.Value[uint8]
}

func (a *Actor) actor() *Actor { return a }

func (a *Actor) cell(m map[uint8]*value.Value[float64], index uint8) *value.Value[float64] {
	a.avMu.Lock()
	defer a.avMu.Unlock()

	c, ok := m[index]
	if !ok {
		c = value.New(0.0)
		m[index] = c
	}
	return c
}

// ActorValue returns the current value at index.
func (a *Actor) ActorValue(index uint8) float64 { return a.cell(a.values, index).Get() }

// SetActorValue stores the current value at index.
func (a *Actor) SetActorValue(index uint8, v float64) bool {
	return a.cell(a.values, index).Set(v)
}

// ActorBaseValue returns the base value at index.
func (a *Actor) ActorBaseValue(index uint8) float64 { return a.cell(a.baseValues, index).Get() }

// SetActorBaseValue stores the base value at index.
func (a *Actor) SetActorBaseValue(index uint8, v float64) bool {
	return a.cell(a.baseValues, index).Set(v)
}

// SetValue stores either the base or the current value.
func (a *Actor) SetValue(base bool, index uint8, v float64) bool {
	if base {
		return a.SetActorBaseValue(index, v)
	}
	return a.SetActorValue(index, v)
}

// ActorValues returns every known actor value.
func (a *Actor) ActorValues() map[uint8]ValuePair {
	a.avMu.Lock()
	indices := make(map[uint8]struct{}, len(a.values))
	for k := range a.values {
		indices[k] = struct{}{}
	}
	for k := range a.baseValues {
		indices[k] = struct{}{}
	}
	a.avMu.Unlock()

	out := make(map[uint8]ValuePair, len(indices))
	for k := range indices {
		out[k] = ValuePair{Base: a.ActorBaseValue(k), Current: a.ActorValue(k)}
	}
	return out
}

func (a *Actor) Race() uint32 { return a.race.Get() }

func (a *Actor) SetRace(race uint32) bool { return a.race.Set(race) }

func (a *Actor) Age() int { return a.age.Get() }

func (a *Actor) SetAge(age int) bool { return a.age.Set(age) }

func (a *Actor) Female() bool { return a.female.Get() }

func (a *Actor) SetFemale(female bool) bool { return a.female.Set(female) }

func (a *Actor) Dead() bool { return a.dead.Get() }

func (a *Actor) SetDead(dead bool) bool { return a.dead.Set(dead) }

func (a *Actor) Alerted() bool { return a.alerted.Get() }

func (a *Actor) SetAlerted(alerted bool) bool { return a.alerted.Set(alerted) }

func (a *Actor) Sneaking() bool { return a.sneaking.Get() }

func (a *Actor) SetSneaking(sneaking bool) bool { return a.sneaking.Set(sneaking) }

func (a *Actor) IdleAnimation() uint32 { return a.idle.Get() }

func (a *Actor) SetIdleAnimation(idle uint32) bool { return a.idle.Set(idle) }

func (a *Actor) MovingAnimation() uint8 { return a.moving.Get() }

func (a *Actor) SetMovingAnimation(moving uint8) bool { return a.moving.Set(moving) }

func (a *Actor) MovingXY() uint8 { return a.movingXY.Get() }

func (a *Actor) SetMovingXY(xy uint8) bool { return a.movingXY.Set(xy) }

func (a *Actor) WeaponAnimation() uint8 { return a.weaponAnim.Get() }

func (a *Actor) SetWeaponAnimation(anim uint8) bool { return a.weaponAnim.Set(anim) }

// EquippedWeapon returns the first equipped stack that is a weapon record, 0 when unarmed.
func (a *Actor) EquippedWeapon() uint32 {
	for _, base := range a.EquippedBases() {
		if _, ok := a.lookup.Weapon(base); ok {
			return base
		}
	}
	return 0
}

func (a *Actor) unarmed() bool {
	base := a.EquippedWeapon()
	if base == 0 {
		return true
	}
	w, _ := a.lookup.Weapon(base)
	return w.Unarmed
}

// IsPunching reports an unarmed regular attack.
func (a *Actor) IsPunching() bool {
	return isAttackAnim(a.WeaponAnimation()) && a.unarmed()
}

// IsPowerPunching reports an unarmed power attack.
func (a *Actor) IsPowerPunching() bool {
	return a.WeaponAnimation() == AnimAttackPower && a.unarmed()
}

// IsFiring reports an attack with an equipped weapon.
func (a *Actor) IsFiring() bool {
	return isAttackAnim(a.WeaponAnimation()) && !a.unarmed()
}
