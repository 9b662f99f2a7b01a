package finder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateNormalizer_Normalize(t *testing.T) {
	normalizer := NewDateNormalizer(time.UTC, func() time.Time { return referenceNow })

	tests := []struct {
		name      string
		startDate string
		when      string
		want      time.Time
		wantOK    bool
	}{
		{
			name:      "short month and day",
			startDate: "Oct 21",
			want:      time.Date(2026, time.October, 21, 0, 0, 0, 0, time.UTC),
			wantOK:    true,
		},
		{
			name:      "full month name",
			startDate: "November 3",
			want:      time.Date(2026, time.November, 3, 0, 0, 0, 0, time.UTC),
			wantOK:    true,
		},
		{
			name:      "start date wins over when",
			startDate: "Dec 1",
			when:      "Today, 7 PM",
			want:      time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC),
			wantOK:    true,
		},
		{
			name:   "today marker without start date",
			when:   "Today, 7 PM",
			want:   referenceNow,
			wantOK: true,
		},
		{
			name:      "unreadable start date falls back to today marker",
			startDate: "TBD",
			when:      "TODAY 8 PM",
			want:      referenceNow,
			wantOK:    true,
		},
		{
			name:   "date phrase in when",
			when:   "Sat, Nov 7 – Sun, Nov 8",
			want:   time.Date(2026, time.November, 7, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "when without a date phrase",
			when:   "Every Friday",
			wantOK: false,
		},
		{
			name:      "unreadable start date and no when",
			startDate: "TBD",
			wantOK:    false,
		},
		{
			name:   "nothing supplied",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := normalizer.Normalize(tt.startDate, tt.when, referenceNow)

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
			} else {
				assert.True(t, got.IsZero())
			}
		})
	}
}

func TestDateNormalizer_UsesYearOfNow(t *testing.T) {
	normalizer := NewDateNormalizer(time.UTC, nil)

	got, ok := normalizer.Normalize("Feb 29", "", time.Date(2028, time.January, 5, 0, 0, 0, 0, time.UTC))
	assert.True(t, ok)
	assert.Equal(t, 2028, got.Year())

	_, ok = normalizer.Normalize("Feb 29", "", time.Date(2027, time.January, 5, 0, 0, 0, 0, time.UTC))
	assert.False(t, ok, "Feb 29 does not exist in 2027")
}

func TestDateNormalizer_ReadsInLocation(t *testing.T) {
	loc := time.FixedZone("CDT", -5*60*60)
	normalizer := NewDateNormalizer(loc, nil)

	got, ok := normalizer.Normalize("Jul 2", "", time.Date(2026, time.March, 1, 12, 0, 0, 0, loc))
	assert.True(t, ok)
	assert.Equal(t, time.Date(2026, time.July, 2, 0, 0, 0, 0, loc), got)
}

func TestDateNormalizer_TodayResolvesToGivenNow(t *testing.T) {
	normalizer := NewDateNormalizer(time.UTC, nil)
	now := time.Date(2025, time.July, 2, 12, 0, 0, 0, time.UTC)

	got, ok := normalizer.Normalize("TBD", "Today, 6 PM", now)

	assert.True(t, ok)
	assert.Equal(t, now, got)
}
