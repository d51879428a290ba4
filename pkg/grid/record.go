package grid

// Record is the serialized form of a grid: its identifier and raw matrix.
type Record struct {
	ID    string  `json:"id" yaml:"id" toml:"id"`
	Cells [][]any `json:"cells" yaml:"cells" toml:"cells"`
}

// Record returns the serializable form of g.
func (g *Grid) Record() Record {
	return Record{ID: g.id, Cells: g.Values()}
}
