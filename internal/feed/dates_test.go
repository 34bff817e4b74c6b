package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolvePubDate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{
			name: "rfc2822 with numeric timezone",
			raw:  "Mon, 15 Jul 2024 10:30:00 +0200",
			want: time.Date(2024, 7, 15, 8, 30, 0, 0, time.UTC),
		},
		{
			name: "rfc2822 with named timezone",
			raw:  "Mon, 15 Jul 2024 10:30:00 GMT",
			want: time.Date(2024, 7, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name: "no timezone reads as UTC",
			raw:  "Mon, 15 Jul 2024 10:30:00",
			want: time.Date(2024, 7, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name: "single digit day",
			raw:  "Tue, 2 Jul 2024 08:00:00 +0000",
			want: time.Date(2024, 7, 2, 8, 0, 0, 0, time.UTC),
		},
		{
			name: "empty",
			raw:  "",
			want: time.Time{},
		},
		{
			name: "garbage",
			raw:  "not a date at all",
			want: time.Time{},
		},
		{
			name: "iso 8601 is not a feed date",
			raw:  "2024-07-15T10:30:00Z",
			want: time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolvePubDate(tt.raw)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestResolvePubDateUnknownNeverNew(t *testing.T) {
	channel := &Channel{Episodes: episodesFromDates("garbage", "", "also not a date")}

	// Whatever the watermark, unresolvable dates never count as new.
	for _, watermark := range []time.Time{
		{},
		time.Unix(0, 0),
		time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Now(),
	} {
		assert.Empty(t, channel.NewerThan(watermark))
	}
	assert.Len(t, channel.All(), 3)
}
