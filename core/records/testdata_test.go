package records

const seedYAML = `
cells:
  - {id: 100, name: Megaton}
  - {id: 200, name: Vault 101}
exteriors:
  - {cell: 100, world: 60, x: 0, y: 0}
  - {cell: 101, world: 60, x: 1, y: 0}
  - {cell: 102, world: 60, x: 0, y: 1}
  - {cell: 103, world: 60, x: -1, y: -1}
  - {cell: 900, world: 61, x: 1, y: 1}
npcs:
  - base: 20
    name: Lucas Simms
    race: 25
    essential: true
  - base: 10
    name: Wastelander
    race: 25
    female: true
    items:
      - {base: 4001, count: 2, condition: 80}
      - {base: 4002, count: 1, condition: 100, equipped: true}
  - base: 30
    name: Little Lamplight kid
    race: 26
races:
  - {id: 25, name: Caucasian, age: 1}
  - {id: 26, name: CaucasianChild, child: true, age: 0}
  - {id: 27, name: CaucasianOld, age: 2}
weapons:
  - {base: 4002, name: Assault Rifle, automatic: true, fire_rate: 7.5}
  - {base: 4003, name: Fists, unarmed: true}
idles:
  - {id: 5000, name: LooseCrouch}
`
