// Package options holds validation helpers shared by option-driven
// constructors.
package options

import (
	"fmt"
	"strings"
)

// Source names one candidate input source for an option set and whether
// the caller configured it.
type Source struct {
	Name string
	Set  bool
}

// ExactlyOne returns nil when exactly one source is set. With none set
// the error lists every option the caller could use; with several set it
// names the ones that conflict.
func ExactlyOne(sources ...Source) error {
	var all, set []string
	for _, s := range sources {
		all = append(all, s.Name)
		if s.Set {
			set = append(set, s.Name)
		}
	}
	switch len(set) {
	case 0:
		return fmt.Errorf("no input source configured: use one of %s", strings.Join(all, ", "))
	case 1:
		return nil
	default:
		return fmt.Errorf("conflicting input sources %s: configure only one", strings.Join(set, " and "))
	}
}
