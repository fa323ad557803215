package specials

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSpecialActiveAt(t *testing.T) {
	now := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	before := now.Add(-time.Hour)
	after := now.Add(time.Hour)

	tests := []struct {
		name string
		s    Special
		want bool
	}{
		{"inactive flag", Special{Active: false}, false},
		{"open ended", Special{Active: true}, true},
		{"started", Special{Active: true, StartsAt: &before}, true},
		{"not started", Special{Active: true, StartsAt: &after}, false},
		{"ended", Special{Active: true, EndsAt: &before}, false},
		{"ends exactly now", Special{Active: true, EndsAt: &now}, false},
		{"starts exactly now", Special{Active: true, StartsAt: &now, EndsAt: &after}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.s.ActiveAt(now))
		})
	}
}
