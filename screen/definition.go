package screen

// Definition binds a screen id to the strategy that owns its layout and
// lifecycle (§4.6).
type Definition struct {
	ID       ID
	Strategy Strategy
}
