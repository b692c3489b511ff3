package arena

// Scope records the cursor of an arena so that every allocation made after
// it can be released at once.
//
//	func decode(scratch *arena.Arena) {
//		defer scratch.Scope().End()
//		buf := scratch.Push(n)
//		...
//	}
type Scope struct {
	arena *Arena
	pos   int
}

// Scope captures the current cursor.
func (a *Arena) Scope() Scope {
	return Scope{arena: a, pos: a.Pos()}
}

// End rewinds the arena to where the scope was opened.
func (s Scope) End() {
	if s.arena == nil {
		return
	}
	s.arena.PopTo(s.pos)
}
