package ports

// IdentifierGenerator produces cache identifiers.
//
//go:generate mockgen -source=identifier.go -destination=mocks/mock_identifier.go -package=mocks
type IdentifierGenerator interface {
	// Next returns a fresh identifier. Uniqueness is probabilistic;
	// callers detect collisions through the cache store.
	Next() string
}
