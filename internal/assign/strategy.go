// Package assign places experimental groups onto plate wells under a
// set of spatial strategies. Strategies only ever touch empty wells;
// an existing treatment is never overwritten.
package assign

// Strategy selects how treatments are distributed over the available
// wells.
type Strategy int

const (
	Random Strategy = iota
	Serpentine
	Block
	Checkerboard
	EdgeAware
)

var strategyNames = map[Strategy]string{
	Random:       "random",
	Serpentine:   "serpentine",
	Block:        "block",
	Checkerboard: "checkerboard",
	EdgeAware:    "edge_aware",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return "edge_aware"
}

// ParseStrategy maps a strategy name to its value. Unrecognized names
// fall back to EdgeAware, the safest default for plate-edge artifacts.
func ParseStrategy(name string) Strategy {
	for s, n := range strategyNames {
		if n == name {
			return s
		}
	}
	return EdgeAware
}

// Strategies lists all placement strategy names.
func Strategies() []string {
	return []string{"random", "serpentine", "block", "checkerboard", "edge_aware"}
}
