package world

import "github.com/beInDev/vaultmp/core/value"

// Item is a standalone item entity.
type Item struct {
	*Object

	count     value.Value[int]
	condition value.Value[float64]
	equipped  value.Value[bool]
	holder    value.Value[NetworkID]
}

func (i *Item) item() *Item { return i }

func (i *Item) Count() int { return i.count.Get() }

func (i *Item) SetCount(n int) bool { return i.count.Set(n) }

func (i *Item) Condition() float64 { return i.condition.Get() }

func (i *Item) SetCondition(c float64) bool { return i.condition.Set(c) }

func (i *Item) Equipped() bool { return i.equipped.Get() }

func (i *Item) SetEquipped(e bool) bool { return i.equipped.Set(e) }

// Holder returns the owning container, 0 when the item lies in the world.
func (i *Item) Holder() NetworkID { return i.holder.Get() }

func (i *Item) SetHolder(id NetworkID) bool { return i.holder.Set(id) }
