package core

// Faction groups ships that never target each other
type Faction uint8

const (
	FactionPlayer Faction = iota
	FactionHostile
)

func (f Faction) String() string {
	if f == FactionHostile {
		return "hostile"
	}
	return "player"
}

// Faction returns the side the ship fights for
func (s *Ship) Faction() Faction {
	if s.Hostile() {
		return FactionHostile
	}
	return FactionPlayer
}

// AreEnemies checks if two ships are on opposing sides
func AreEnemies(a, b *Ship) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Faction() != b.Faction()
}
