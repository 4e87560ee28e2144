package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePage(t *testing.T) {
	cases := []struct {
		name      string
		page      string
		limit     string
		wantPage  int
		wantLimit int
	}{
		{"empty", "", "", 1, 20},
		{"valid", "2", "50", 2, 50},
		{"limit clamped", "3", "500", 3, 100},
		{"limit at max", "1", "100", 1, 100},
		{"invalid", "-1", "abc", 1, 20},
		{"zero limit", "1", "0", 1, 20},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, limit := ParsePage(tc.page, tc.limit)
			assert.Equal(t, tc.wantPage, page)
			assert.Equal(t, tc.wantLimit, limit)
		})
	}
}

func TestMustParseUint(t *testing.T) {
	assert.Equal(t, uint(42), MustParseUint("42"))
	assert.Equal(t, uint(0), MustParseUint("x"))
}
