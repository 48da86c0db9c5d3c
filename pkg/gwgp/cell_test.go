package gwgp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCell(t *testing.T) {
	tests := []struct {
		name     string
		segments []string
		want     Price
		err      bool
	}{
		{
			name:     "value_and_change",
			segments: []string{"1.53", "+0.02"},
			want:     Price{Value: "1.53", Change: "+0.02"},
		},
		{
			name:     "trimmed",
			segments: []string{" 1.53\n", "\t-0.03 "},
			want:     Price{Value: "1.53", Change: "-0.03"},
		},
		{
			name:     "extra_segments_ignored",
			segments: []string{"1.53", "n/c", "footnote"},
			want:     Price{Value: "1.53", Change: "n/c"},
		},
		{
			name:     "empty_segments_kept",
			segments: []string{"", ""},
			want:     Price{},
		},
		{
			name:     "single_segment",
			segments: []string{"1.53"},
			err:      true,
		},
		{
			name:     "no_segments",
			segments: nil,
			err:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCell(tt.segments)
			if tt.err {
				var malformed *MalformedCellError
				assert.True(t, errors.As(err, &malformed))
				assert.Equal(t, len(tt.segments), malformed.Segments)
				assert.Equal(t, Price{}, got)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
