package device

import "path/filepath"

// DefaultPatterns are tried in order: Unix ACM devices, then Windows COM ports.
var DefaultPatterns = []string{"/dev/ttyACM*", "/COM*"}

// Lister lists candidate device paths.
type Lister interface {
	Candidates() []string
}

// Enumerator lists device paths matching glob patterns.
type Enumerator struct {
	Patterns []string
}

// NewEnumerator returns an Enumerator using DefaultPatterns.
func NewEnumerator() *Enumerator {
	return &Enumerator{Patterns: DefaultPatterns}
}

// Candidates returns the paths matching each pattern, pattern by pattern, in
// the order the glob returns them. Patterns that fail or match nothing are
// skipped. A path matched by more than one pattern is listed once.
func (e *Enumerator) Candidates() []string {
	var paths []string
	seen := make(map[string]bool)
	for _, pattern := range e.Patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			continue
		}
		for _, m := range matches {
			if seen[m] {
				continue
			}
			seen[m] = true
			paths = append(paths, m)
		}
	}
	return paths
}

// StaticLister is a Lister with a fixed list of paths.
type StaticLister []string

// Candidates returns the fixed paths.
func (s StaticLister) Candidates() []string {
	return s
}
