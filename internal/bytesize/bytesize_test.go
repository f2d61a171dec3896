package bytesize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ByteSize
		wantErr bool
	}{
		{"plain zero", "0", 0, false},
		{"plain bytes", "1024", 1024, false},
		{"bytes suffix", "512B", 512, false},
		{"kibibytes", "1Ki", 1024, false},
		{"mebibytes long", "10MiB", 10 * 1024 * 1024, false},
		{"gibibytes", "2Gi", 2 * 1024 * 1024 * 1024, false},
		{"kilobytes", "1KB", 1000, false},
		{"megabytes short", "5M", 5 * 1000 * 1000, false},
		{"case insensitive", "1mi", 1024 * 1024, false},
		{"surrounding space", "  4 Ki ", 4096, false},
		{"fraction", "1.5Ki", 1536, false},
		{"empty", "", 0, true},
		{"negative", "-1Mi", 0, true},
		{"unknown unit", "1Pb", 0, true},
		{"garbage", "lots", 0, true},
		{"overflow", "99999999999999999Gi", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "0", ByteSize(0).String())
	assert.Equal(t, "1000", ByteSize(1000).String())
	assert.Equal(t, "1Ki", KiB.String())
	assert.Equal(t, "3Mi", (3 * MiB).String())
	assert.Equal(t, "1Gi", GiB.String())
	assert.Equal(t, "1536", ByteSize(1536).String())
}

func TestTextRoundTrip(t *testing.T) {
	var b ByteSize
	require.NoError(t, b.UnmarshalText([]byte("64Mi")))
	assert.Equal(t, 64*MiB, b)

	text, err := b.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "64Mi", string(text))

	assert.Error(t, b.UnmarshalText([]byte("nope")))
}
