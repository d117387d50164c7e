package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSameName(t *testing.T) {
	assert.True(t, SameName("Lima", "lima"))
	assert.True(t, SameName("  Lima ", "LIMA"))
	assert.False(t, SameName("Lima", "Cusco"))
	assert.True(t, SameName("", "  "))
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		t    time.Time
		want string
	}{
		{"секунды", now.Add(-30 * time.Second), "30 seconds ago"},
		{"одна минута", now.Add(-90 * time.Second), "1 minute ago"},
		{"часы", now.Add(-5 * time.Hour), "5 hours ago"},
		{"один день", now.Add(-30 * time.Hour), "1 day ago"},
		{"недели", now.Add(-16 * 24 * time.Hour), "2 weeks ago"},
		{"будущее не ломает формат", now.Add(time.Hour), "0 seconds ago"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TimeAgo(tc.t, now))
		})
	}
}

func TestShortLocationsString(t *testing.T) {
	lima := LocationLabel{City: "Lima", Country: "Peru"}
	paris := LocationLabel{City: "Paris", Country: "France"}
	rome := LocationLabel{City: "Rome", Country: "Italy"}

	assert.Equal(t, "", ShortLocationsString(nil))
	assert.Equal(t, "Lima, Peru", ShortLocationsString([]LocationLabel{lima}))
	assert.Equal(t, "Lima, Peru and Paris, France", ShortLocationsString([]LocationLabel{lima, paris}))
	assert.Equal(t, "Lima, Peru and 2 more", ShortLocationsString([]LocationLabel{lima, paris, rome}))
}

func TestFullLocationsString(t *testing.T) {
	got := FullLocationsString([]LocationLabel{
		{City: "Lima", Country: "Peru"},
		{City: "Paris", Country: "France"},
	})
	assert.Equal(t, "Lima, Peru; Paris, France", got)
}
