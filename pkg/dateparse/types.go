package dateparse

import "time"

// Result holds the outcome of resolving one fragment. When Found is false the
// fragment contained no recognizable temporal expression and Due is zero.
type Result struct {
	Due   time.Time
	Found bool
}
