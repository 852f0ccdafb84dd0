package domain

// Entity is implemented by every record-backed type in the graph.
type Entity interface {
	ID() int
}

// ValidateID rejects blank (zero) and negative identifiers.
func ValidateID(id int) error {
	if id <= 0 {
		return ErrInvalidID
	}
	return nil
}
