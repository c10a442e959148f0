package types

// JSONMap stores loosely structured metadata in a jsonb column.
type JSONMap map[string]any
