package gesture

import (
	"fmt"
	"os"
)

// debugf prints a non-fatal diagnostic to stderr. Only active when the router
// is in debug mode; platform inconsistencies (e.g. a pointer capture the
// platform already released) are reported here and never abort the gesture.
func (r *Router) debugf(format string, args ...any) {
	if !r.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[gesture] "+format+"\n", args...)
}
