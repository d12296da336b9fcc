package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveSwipe(t *testing.T) {
	tests := []struct {
		name string
		dx   float64
		dy   float64
		want Decision
	}{
		{"right past threshold", 150, 20, Accepted},
		{"left past threshold", -120, -30, Rejected},
		{"too short", 60, 0, Inconclusive},
		{"exactly threshold", 100, 0, Inconclusive},
		{"vertical dominates", 150, 200, Inconclusive},
		{"vertical dominates negative", -150, -180, Inconclusive},
		{"equal magnitudes", 150, 150, Inconclusive},
		{"zero drag", 0, 0, Inconclusive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveSwipe(tt.dx, tt.dy))
		})
	}
}
