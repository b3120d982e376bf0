package types

// Category groups flashcards. Color is a display token the store never
// interprets.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// DefaultPalette is the set of colors offered for new categories. The first
// entry is used when a category is created without a color.
var DefaultPalette = []string{
	"#1A73E8",
	"#F57C00",
	"#4CAF50",
	"#F44336",
	"#9C27B0",
	"#FFEB3B",
	"#607D8B",
	"#E91E63",
	"#795548",
	"#009688",
	"#3F51B5",
	"#FF5722",
}
