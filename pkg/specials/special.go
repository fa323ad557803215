package specials

import "time"

// Special is one entry from the specials API.
type Special struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Price       float64    `json:"price,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	Active      bool       `json:"active"`
}

// ActiveAt reports whether s runs at t. A special must be flagged active;
// a missing start or end bound is open-ended. EndsAt is exclusive.
func (s Special) ActiveAt(t time.Time) bool {
	if !s.Active {
		return false
	}
	if s.StartsAt != nil && t.Before(*s.StartsAt) {
		return false
	}
	if s.EndsAt != nil && !t.Before(*s.EndsAt) {
		return false
	}
	return true
}
