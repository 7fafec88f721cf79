package theatre

// Genre selects the pricing and credit formula for a play.
// Values come from catalog data, so any string may appear; only the
// genres returned by KnownGenres are priced.
type Genre string

const (
	GenreTragedy Genre = "tragedy"
	GenreComedy  Genre = "comedy"
)

// KnownGenres lists every genre the pricing engine handles.
func KnownGenres() []Genre {
	return []Genre{GenreTragedy, GenreComedy}
}

// Known reports whether the genre has a pricing strategy.
func (g Genre) Known() bool {
	switch g {
	case GenreTragedy, GenreComedy:
		return true
	default:
		return false
	}
}

// Play is a catalog entry.
type Play struct {
	Name string
	Type Genre
}
