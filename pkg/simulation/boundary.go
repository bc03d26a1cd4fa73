package simulation

// Boundary is the lethal circular wall centred on the origin.
type Boundary struct {
	Radius float64
}

// Check kills s when any part of its head pokes through the wall.
// It reports whether s died on this check.
func (b Boundary) Check(s *Serpent) bool {
	if s.Dead {
		return false
	}
	if s.Head().Len()+s.Radius() > b.Radius {
		s.Kill()
		return true
	}
	return false
}
