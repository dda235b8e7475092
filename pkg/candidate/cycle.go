package candidate

// Direction is the way a cycle request moves through the candidate list.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Next picks the candidate that follows prev in the given direction,
// wrapping around at both ends. An empty prev, or one no longer present in
// the set, selects the first candidate. The set must be non-empty.
func (s *Set) Next(prev string, dir Direction) string {
	if prev != "" {
		if i := s.find(prev); i >= 0 {
			if dir == Forward {
				if i+1 < len(s.items) {
					return s.items[i+1].Text
				}
				return s.items[0].Text
			}
			if i > 0 {
				return s.items[i-1].Text
			}
			return s.items[len(s.items)-1].Text
		}
	}
	return s.items[0].Text
}
