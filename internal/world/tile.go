package world

// Tile is the content of one grid cell.
type Tile uint8

const (
	Empty Tile = iota
	Dirt
	Rock
	HardRock
	ItemHeal
	ItemBomb
	ItemAmethyst
)

// IsSolid returns true for tiles that block a drill outside fever.
func (t Tile) IsSolid() bool {
	return t == Rock || t == HardRock
}

// IsItem returns true for pickup tiles.
func (t Tile) IsItem() bool {
	return t == ItemHeal || t == ItemBomb || t == ItemAmethyst
}

// IsDestructible returns true for terrain a bomb can clear.
func (t Tile) IsDestructible() bool {
	return t == Dirt || t == Rock || t == HardRock
}

// String returns a readable tile name.
func (t Tile) String() string {
	switch t {
	case Empty:
		return "empty"
	case Dirt:
		return "dirt"
	case Rock:
		return "rock"
	case HardRock:
		return "hard_rock"
	case ItemHeal:
		return "heal"
	case ItemBomb:
		return "bomb"
	case ItemAmethyst:
		return "amethyst"
	default:
		return "unknown"
	}
}
