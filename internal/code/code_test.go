package code

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const testSalt = "exammaster-xinmi"

func TestMatchesFormat(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  bool
	}{
		{
			name:  "well-formed code",
			input: "T00010-5E7",
			want:  true,
		},
		{
			name:  "lowercase input is accepted",
			input: "t00010-5e7",
			want:  true,
		},
		{
			name:  "empty string",
			input: "",
			want:  false,
		},
		{
			name:  "four-digit index",
			input: "T0010-5E7",
			want:  false,
		},
		{
			name:  "six-digit index",
			input: "T000100-5E7",
			want:  false,
		},
		{
			name:  "four-char checksum",
			input: "T00010-5E7A",
			want:  false,
		},
		{
			name:  "two-char checksum",
			input: "T00010-5E",
			want:  false,
		},
		{
			name:  "missing hyphen",
			input: "T000105E7",
			want:  false,
		},
		{
			name:  "non-hex checksum",
			input: "T00010-5G7",
			want:  false,
		},
		{
			name:  "digit prefix",
			input: "700010-5E7",
			want:  false,
		},
		{
			name:  "trailing garbage",
			input: "T00010-5E7x",
			want:  false,
		},
		{
			name:  "leading whitespace is not the format layer's job",
			input: " T00010-5E7",
			want:  false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MatchesFormat(tc.input))
		})
	}
}

func TestChecksum(t *testing.T) {
	testCases := []struct {
		index string
		want  string
	}{
		{index: "T00000", want: "358"},
		{index: "T00001", want: "79C"},
		{index: "T00010", want: "5E7"},
		{index: "T00042", want: "16D"},
		{index: "A12345", want: "240"},
		{index: "B00007", want: "B3B"},
		{index: "Z99999", want: "132"},
	}

	for _, tc := range testCases {
		t.Run(tc.index, func(t *testing.T) {
			assert.Equal(t, tc.want, Checksum(tc.index, testSalt))
		})
	}
}

func TestChecksumIsDeterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		assert.Equal(t, "5E7", Checksum("T00010", testSalt))
	}
}

func TestChecksumDependsOnSalt(t *testing.T) {
	assert.Equal(t, "5E7", Checksum("T00010", testSalt))
	assert.Equal(t, "456", Checksum("T00010", "other-salt"))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "T00010-5E7", Normalize("  t00010-5e7\n"))
}

func TestExtractIndex(t *testing.T) {
	index, ok := ExtractIndex("T00042-16D")
	assert.True(t, ok)
	assert.Equal(t, "T00042", index)

	index, ok = ExtractIndex("t00042-16d")
	assert.True(t, ok)
	assert.Equal(t, "T00042", index)

	_, ok = ExtractIndex("not-a-code")
	assert.False(t, ok)
}
