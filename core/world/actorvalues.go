package world

// Actor value indices.
const (
	AVAggression       uint8 = 0x00
	AVConfidence       uint8 = 0x01
	AVEnergy           uint8 = 0x02
	AVResponsibility   uint8 = 0x03
	AVMood             uint8 = 0x04
	AVStrength         uint8 = 0x05
	AVPerception       uint8 = 0x06
	AVEndurance        uint8 = 0x07
	AVCharisma         uint8 = 0x08
	AVIntelligence     uint8 = 0x09
	AVAgility          uint8 = 0x0A
	AVLuck             uint8 = 0x0B
	AVActionPoints     uint8 = 0x0C
	AVCarryWeight      uint8 = 0x0D
	AVCritChance       uint8 = 0x0E
	AVHealRate         uint8 = 0x0F
	AVHealth           uint8 = 0x10
	AVMeleeDamage      uint8 = 0x11
	AVDamageResistance uint8 = 0x12
	AVPoisonResistance uint8 = 0x13
	AVRadResistance    uint8 = 0x14
	AVSpeedMultiplier  uint8 = 0x15
	AVFatigue          uint8 = 0x16
	AVKarma            uint8 = 0x17
	AVXP               uint8 = 0x18
	AVHead             uint8 = 0x19
	AVTorso            uint8 = 0x1A
	AVLeftArm          uint8 = 0x1B
	AVRightArm         uint8 = 0x1C
	AVLeftLeg          uint8 = 0x1D
	AVRightLeg         uint8 = 0x1E
	AVBrain            uint8 = 0x1F
	AVBarter           uint8 = 0x20
	AVBigGuns          uint8 = 0x21
	AVEnergyWeapons    uint8 = 0x22
	AVExplosives       uint8 = 0x23
	AVLockpick         uint8 = 0x24
	AVMedicine         uint8 = 0x25
	AVMeleeWeapons     uint8 = 0x26
	AVRepair           uint8 = 0x27
	AVScience          uint8 = 0x28
	AVSmallGuns        uint8 = 0x29
	AVSneak            uint8 = 0x2A
	AVSpeech           uint8 = 0x2B
	AVThrowing         uint8 = 0x2C
	AVUnarmed          uint8 = 0x2D
	AVUnarmedDamage    uint8 = 0x46
)

// ValuePair is the base and current value of one actor value.
type ValuePair struct {
	Base    float64 `json:"base"`
	Current float64 `json:"current"`
}

// PlayerDefaults is applied to every new player.
var PlayerDefaults = map[uint8]ValuePair{
	AVEnergy:           {50, 50},
	AVResponsibility:   {50, 50},
	AVStrength:         {5, 5},
	AVPerception:       {5, 5},
	AVEndurance:        {5, 5},
	AVCharisma:         {5, 5},
	AVIntelligence:     {5, 5},
	AVAgility:          {5, 5},
	AVLuck:             {5, 5},
	AVActionPoints:     {75, 75},
	AVCarryWeight:      {200, 200},
	AVCritChance:       {5, 5},
	AVHealth:           {200, 200},
	AVMeleeDamage:      {2, 2},
	AVPoisonResistance: {20, 20},
	AVRadResistance:    {8, 8},
	AVSpeedMultiplier:  {100, 100},
	AVFatigue:          {200, 200},
	AVHead:             {100, 100},
	AVTorso:            {100, 100},
	AVLeftArm:          {100, 100},
	AVRightArm:         {100, 100},
	AVLeftLeg:          {100, 100},
	AVRightLeg:         {100, 100},
	AVBrain:            {100, 100},
	AVBarter:           {15, 15},
	AVBigGuns:          {15, 15},
	AVEnergyWeapons:    {15, 15},
	AVExplosives:       {15, 15},
	AVLockpick:         {15, 15},
	AVMedicine:         {15, 15},
	AVMeleeWeapons:     {15, 15},
	AVRepair:           {15, 15},
	AVScience:          {15, 15},
	AVSmallGuns:        {15, 15},
	AVSneak:            {15, 15},
	AVSpeech:           {15, 15},
	AVUnarmed:          {15, 15},
	AVUnarmedDamage:    {1, 1.25},
}

// RaceCaucasian is the race given to new players.
const RaceCaucasian uint32 = 0x00000019

// Weapon animation groups reported by clients.
const (
	AnimNone        uint8 = 0x00
	AnimEquip       uint8 = 0x0E
	AnimUnequip     uint8 = 0x0F
	AnimAim         uint8 = 0x10
	AnimAttackLeft  uint8 = 0x13
	AnimAttackRight uint8 = 0x14
	AnimAttack3     uint8 = 0x15
	AnimAttack4     uint8 = 0x16
	AnimAttackLoop  uint8 = 0x1C
	AnimAttackSpin  uint8 = 0x1D
	AnimAttackPower uint8 = 0x26
)

func isAttackAnim(anim uint8) bool {
	switch anim {
	case AnimAttackLeft, AnimAttackRight, AnimAttack3, AnimAttack4, AnimAttackLoop, AnimAttackSpin:
		return true
	default:
		return false
	}
}
