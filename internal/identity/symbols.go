package identity

// Symbol is an avatar glyph a practitioner can pick.
type Symbol struct {
	ID    int
	Name  string
	Glyph string
}

var Symbols = []Symbol{
	{1, "Om", "ॐ"},
	{2, "Lotus", "🪷"},
	{3, "Moon", "☽"},
	{4, "Sun", "☀"},
	{5, "Star", "✧"},
	{6, "Wheel", "☸"},
	{7, "Tree", "🌳"},
	{8, "Mountain", "🏔"},
	{9, "Water", "~"},
	{10, "Fire", "🔥"},
	{11, "Sky", "☁"},
	{12, "Peace", "☮"},
}

func SymbolByID(id int) (Symbol, bool) {
	for _, s := range Symbols {
		if s.ID == id {
			return s, true
		}
	}
	return Symbol{}, false
}
