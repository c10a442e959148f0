package pagination

const (
	// DefaultTake is the standard page size when a take is not provided.
	DefaultTake = 25
	// MaxTake caps how many rows any listing can request.
	MaxTake = 100
)

// Params holds offset pagination inputs.
type Params struct {
	Skip int
	Take int
}

// Metadata describes a page of results.
type Metadata struct {
	Count int64 `json:"count"`
	Skip  int   `json:"skip"`
	Take  int   `json:"take"`
}

// Normalize clamps the params to sane bounds.
func (p Params) Normalize() Params {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Take <= 0 {
		p.Take = DefaultTake
	}
	if p.Take > MaxTake {
		p.Take = MaxTake
	}
	return p
}
