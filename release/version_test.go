package release

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		input   string
		want    Version
		wantErr bool
	}{
		{input: "1.0.0", want: Version{1, 0, 0}},
		{input: "0.5.12", want: Version{0, 5, 12}},
		{input: " 2.1.3 ", want: Version{2, 1, 3}},
		{input: "1.0", wantErr: true},
		{input: "1.0.0.0", wantErr: true},
		{input: "1.0.x", wantErr: true},
		{input: "1.-1.0", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseVersion(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVersionRendering(t *testing.T) {
	v := Version{1, 2, 3}
	assert.Equal(t, "1.2.3", v.String())
	assert.Equal(t, "1-2-3", v.Dashed())
}

func TestVersionCompare(t *testing.T) {
	tests := []struct {
		a, b Version
		want int
	}{
		{Version{1, 0, 0}, Version{1, 0, 0}, 0},
		{Version{0, 9, 9}, Version{1, 0, 0}, -1},
		{Version{1, 0, 1}, Version{1, 0, 0}, 1},
		{Version{1, 2, 0}, Version{1, 10, 0}, -1},
		{Version{2, 0, 0}, Version{1, 99, 99}, 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.a.Compare(tt.b), "%s vs %s", tt.a, tt.b)
	}

	assert.True(t, Version{0, 5, 0}.LessOrEqual(Version{1, 0, 0}))
	assert.True(t, Version{1, 0, 0}.LessOrEqual(Version{1, 0, 0}))
	assert.False(t, Version{9, 9, 9}.LessOrEqual(Version{1, 0, 0}))
}
