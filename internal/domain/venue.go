package domain

// Venue is a restaurant that can host a meal block.
type Venue struct {
	ID          string
	Name        string
	Category    string
	AvgCheckUSD float64
	OpensAt     Clock
	ClosesAt    Clock
	Rating      float64
	Location    *Coordinates
}

// OpenAt reports whether the venue serves at t. Hours that wrap past
// midnight (e.g. 18:00-02:00) are supported.
func (v Venue) OpenAt(t Clock) bool {
	if v.OpensAt == v.ClosesAt {
		return false
	}
	if v.OpensAt < v.ClosesAt {
		return t >= v.OpensAt && t < v.ClosesAt
	}
	return t >= v.OpensAt || t < v.ClosesAt
}
