package deduplication

// LinkSet is an insertion-ordered set of links. The first occurrence of a
// link wins; later duplicates are dropped. It is not safe for concurrent use.
type LinkSet struct {
	seen  map[string]struct{}
	order []string
}

// NewLinkSet returns an empty set
func NewLinkSet() *LinkSet {
	return &LinkSet{seen: make(map[string]struct{})}
}

// Add records link and reports whether it was new.
func (s *LinkSet) Add(link string) bool {
	if _, ok := s.seen[link]; ok {
		return false
	}
	s.seen[link] = struct{}{}
	s.order = append(s.order, link)
	return true
}

// Contains reports whether link was already added.
func (s *LinkSet) Contains(link string) bool {
	_, ok := s.seen[link]
	return ok
}

// Links returns the accepted links in insertion order.
func (s *LinkSet) Links() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

func (s *LinkSet) Len() int { return len(s.order) }
