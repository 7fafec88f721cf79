package theatre

import "errors"

var (
	// ErrUnknownPlayType is returned when a play genre has no pricing strategy.
	ErrUnknownPlayType = errors.New("theatre: unknown play type")
	// ErrUnresolvedPlayID is returned when a performance references a play missing from the catalog.
	ErrUnresolvedPlayID = errors.New("theatre: unresolved play id")
	// ErrNegativeAudience is returned when a performance carries a negative seat count.
	ErrNegativeAudience = errors.New("theatre: negative audience")
	// ErrNilCatalog is returned when no catalog is supplied.
	ErrNilCatalog = errors.New("theatre: nil catalog")
	// ErrInvalidRules is returned when a pricing rule set cannot be applied.
	ErrInvalidRules = errors.New("theatre: invalid pricing rules")
)
