package theatre

import "fmt"

// Catalog maps play identifiers to plays.
type Catalog map[string]Play

// Resolve returns the play registered under playID.
func (c Catalog) Resolve(playID string) (Play, error) {
	if c == nil {
		return Play{}, ErrNilCatalog
	}
	play, ok := c[playID]
	if !ok {
		return Play{}, fmt.Errorf("%w: %q", ErrUnresolvedPlayID, playID)
	}
	return play, nil
}
