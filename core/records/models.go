package records

// Cell is a cell record. Interiors have no Exterior row.
type Cell struct {
	ID   uint32 `gorm:"primaryKey;column:id;autoIncrement:false" yaml:"id" json:"id"`
	Name string `gorm:"column:name;type:varchar(128)" yaml:"name" json:"name"`
}

func (Cell) TableName() string {
	return "cells"
}

// Exterior places a cell on the grid of a worldspace.
type Exterior struct {
	Cell  uint32 `gorm:"primaryKey;column:cell;autoIncrement:false" yaml:"cell" json:"cell"`
	World uint32 `gorm:"column:world;index" yaml:"world" json:"world"`
	X     int32  `gorm:"column:x" yaml:"x" json:"x"`
	Y     int32  `gorm:"column:y" yaml:"y" json:"y"`
}

func (Exterior) TableName() string {
	return "exteriors"
}

// NPC is an actor template.
type NPC struct {
	Base uint32 `gorm:"primaryKey;column:base;autoIncrement:false" yaml:"base" json:"base"`
	Name string `gorm:"column:name;type:varchar(128)" yaml:"name" json:"name"`
	Race uint32 `gorm:"column:race" yaml:"race" json:"race"`
	// OriginalRace is the race the template was authored with, 0 when equal to Race.
	OriginalRace uint32    `gorm:"column:original_race" yaml:"original_race" json:"original_race"`
	Female       bool      `gorm:"column:female" yaml:"female" json:"female"`
	Essential    bool      `gorm:"column:essential" yaml:"essential" json:"essential"`
	Items        []NPCItem `gorm:"foreignKey:NPC;references:Base" yaml:"items" json:"items"`
}

func (NPC) TableName() string {
	return "npcs"
}

// BaseRace returns the race the template was authored with.
func (n NPC) BaseRace() uint32 {
	if n.OriginalRace == 0 {
		return n.Race
	}
	return n.OriginalRace
}

// IsDLC reports whether the template comes from a plugin other than the master file.
func (n NPC) IsDLC() bool {
	return IsDLC(n.Base)
}

// NPCItem is one stack of an NPC's starting inventory.
type NPCItem struct {
	ID        uint    `gorm:"primaryKey;column:id" yaml:"-" json:"-"`
	NPC       uint32  `gorm:"column:npc;index" yaml:"-" json:"-"`
	Base      uint32  `gorm:"column:item" yaml:"base" json:"base"`
	Count     int     `gorm:"column:count" yaml:"count" json:"count"`
	Condition float64 `gorm:"column:item_condition;type:double" yaml:"condition" json:"condition"`
	Equipped  bool    `gorm:"column:equipped" yaml:"equipped" json:"equipped"`
}

func (NPCItem) TableName() string {
	return "npc_items"
}

// Race is a race record. Age orders races of one family from young to old.
// The age difference between two races is the difference of their Age.
type Race struct {
	ID    uint32 `gorm:"primaryKey;column:id;autoIncrement:false" yaml:"id" json:"id"`
	Name  string `gorm:"column:name;type:varchar(128)" yaml:"name" json:"name"`
	Child bool   `gorm:"column:child" yaml:"child" json:"child"`
	Age   int    `gorm:"column:age" yaml:"age" json:"age"`
}

func (Race) TableName() string {
	return "races"
}

// AgeDifference returns how many age steps other is older than r.
func (r Race) AgeDifference(other Race) int {
	return other.Age - r.Age
}

// Weapon is a weapon record.
type Weapon struct {
	Base      uint32  `gorm:"primaryKey;column:base;autoIncrement:false" yaml:"base" json:"base"`
	Name      string  `gorm:"column:name;type:varchar(128)" yaml:"name" json:"name"`
	Automatic bool    `gorm:"column:automatic" yaml:"automatic" json:"automatic"`
	FireRate  float64 `gorm:"column:fire_rate;type:double" yaml:"fire_rate" json:"fire_rate"`
	Unarmed   bool    `gorm:"column:unarmed" yaml:"unarmed" json:"unarmed"`
}

func (Weapon) TableName() string {
	return "weapons"
}

// Idle is an idle animation record.
type Idle struct {
	ID   uint32 `gorm:"primaryKey;column:id;autoIncrement:false" yaml:"id" json:"id"`
	Name string `gorm:"column:name;type:varchar(128)" yaml:"name" json:"name"`
}

func (Idle) TableName() string {
	return "idles"
}

// Data is the raw content of every record table.
type Data struct {
	Cells     []Cell     `yaml:"cells"`
	Exteriors []Exterior `yaml:"exteriors"`
	NPCs      []NPC      `yaml:"npcs"`
	Races     []Race     `yaml:"races"`
	Weapons   []Weapon   `yaml:"weapons"`
	Idles     []Idle     `yaml:"idles"`
}

// Models lists every table model, in migration order.
func Models() []any {
	return []any{&Cell{}, &Exterior{}, &NPC{}, &NPCItem{}, &Race{}, &Weapon{}, &Idle{}}
}
