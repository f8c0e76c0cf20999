package models

// All lists every persisted record kind, in migration order.
func All() []any {
	return []any{
		&User{},
		&Entity{},
		&Pet{},
		&AdoptionRequest{},
	}
}
