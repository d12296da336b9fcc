package service

import (
	"math/rand"
	"strings"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// userColors is the cyclic palette assigned to table members by join order.
var userColors = []string{
	"#FF5733", "#33FF57", "#3357FF", "#FF33F1", "#FFB733",
	"#33FFF1", "#F133FF", "#57FF33", "#FF3357", "#3397FF",
}

func randomBase36(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(base36[rand.Intn(len(base36))])
	}
	return b.String()
}

// GenerateTableCode returns a 6-character uppercase base-36 table code.
// Uniqueness is probabilistic only; a collision overwrites, matching
// last-write-wins store semantics.
func GenerateTableCode() string {
	return strings.ToUpper(randomBase36(6))
}

// GenerateUserID returns a 13-character base-36 user identifier.
func GenerateUserID() string {
	return randomBase36(13)
}

// ColorForIndex returns the palette color for the nth member to join.
func ColorForIndex(n int) string {
	if n < 0 {
		n = 0
	}
	return userColors[n%len(userColors)]
}
