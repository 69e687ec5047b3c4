package theme

import (
	"unicode/utf16"
)

// Theme is a visual profile theme of a recipient.
type Theme struct {
	ID        string `json:"id" example:"sunset"`
	Name      string `json:"name" example:"Sunset Dreams"`
	Gradient  string `json:"gradient" example:"from-pink-200 to-purple-200"` // CSS utility classes of the background gradient
	AvatarBg  string `json:"avatarBg" example:"bg-white/20"`
	TextColor string `json:"textColor" example:"text-gray-800"`
	Unlocked  bool   `json:"unlocked" example:"true"` // Only the default theme is unlocked
}

func theme(id, name, gradient string) Theme {
	return Theme{
		ID:        id,
		Name:      name,
		Gradient:  gradient,
		AvatarBg:  "bg-white/20",
		TextColor: "text-gray-800",
	}
}

var palette = [...]Theme{
	{ID: "sunset", Name: "Sunset Dreams", Gradient: "from-pink-200 to-purple-200", AvatarBg: "bg-white/20", TextColor: "text-gray-800", Unlocked: true},
	theme("ocean", "Ocean Breeze", "from-blue-200 to-cyan-200"),
	theme("forest", "Forest Adventure", "from-green-200 to-emerald-200"),
	theme("sunshine", "Sunshine Valley", "from-yellow-200 to-orange-200"),
	theme("lavender", "Lavender Fields", "from-purple-200 to-indigo-200"),
	theme("cherry", "Cherry Blossom", "from-rose-200 to-pink-200"),
	theme("mint", "Mint Chocolate", "from-teal-200 to-green-200"),
	theme("cosmic", "Cosmic Purple", "from-violet-300 to-purple-300"),
	theme("peach", "Peach Sorbet", "from-orange-200 to-rose-200"),
	theme("aurora", "Aurora Sky", "from-cyan-200 via-purple-200 to-pink-200"),
}

// All returns the palette in its fixed order.
func All() []Theme {
	return append([]Theme(nil), palette[:]...)
}

// For returns the theme of the recipient with the given id. The choice is
// stable for an id.
func For(id string) Theme {
	var h int32
	for _, c := range utf16.Encode([]rune(id)) {
		h = h*31 + int32(c)
	}

	// Widen before taking the absolute value, -2^31 has no int32 counterpart
	abs := int64(h)
	if abs < 0 {
		abs = -abs
	}

	return palette[abs%int64(len(palette))]
}

// ByID returns the theme with the given identifier.
func ByID(id string) (Theme, bool) {
	for _, t := range palette {
		if t.ID == id {
			return t, true
		}
	}

	return Theme{}, false
}
