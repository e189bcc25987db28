package code

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Generate(t *testing.T) {
	g := NewGenerator(testSalt)

	testCases := []struct {
		name   string
		index  int
		prefix string
		want   string
		hasErr bool
	}{
		{
			name:   "known vector for index 10",
			index:  10,
			prefix: "T",
			want:   "T00010-5E7",
		},
		{
			name:   "known vector for index 42",
			index:  42,
			prefix: "T",
			want:   "T00042-16D",
		},
		{
			name:   "lowercase prefix is uppercased",
			index:  10,
			prefix: "t",
			want:   "T00010-5E7",
		},
		{
			name:   "zero index pads to five digits",
			index:  0,
			prefix: "T",
			want:   "T00000-358",
		},
		{
			name:   "upper bound of the index range",
			index:  99999,
			prefix: "Z",
			want:   "Z99999-132",
		},
		{
			name:   "negative index",
			index:  -1,
			prefix: "T",
			hasErr: true,
		},
		{
			name:   "index past the range",
			index:  100000,
			prefix: "T",
			hasErr: true,
		},
		{
			name:   "empty prefix",
			index:  10,
			prefix: "",
			hasErr: true,
		},
		{
			name:   "multi-letter prefix",
			index:  10,
			prefix: "TT",
			hasErr: true,
		},
		{
			name:   "non-alphabetic prefix",
			index:  10,
			prefix: "7",
			hasErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := g.Generate(tc.index, tc.prefix)
			if tc.hasErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestGeneratedCodesValidate(t *testing.T) {
	g := NewGenerator(testSalt)
	v := NewValidator(testSalt)

	for _, index := range []int{0, 1, 10, 42, 500, 12345, 99999} {
		for _, prefix := range []string{"T", "A", "Z"} {
			c, err := g.Generate(index, prefix)
			require.NoError(t, err)
			assert.True(t, v.IsValid(c), "generated code %s should validate", c)
		}
	}
}

func TestGeneratedCodeRoundTrip(t *testing.T) {
	g := NewGenerator(testSalt)

	c, err := g.Generate(42, "T")
	require.NoError(t, err)

	index, ok := ExtractIndex(c)
	require.True(t, ok)
	assert.Equal(t, "T00042", index)
}

func TestValidator_IsValid(t *testing.T) {
	v := NewValidator(testSalt)

	t.Run("valid code", func(t *testing.T) {
		assert.True(t, v.IsValid("T00010-5E7"))
	})

	t.Run("lowercase and padding are normalized", func(t *testing.T) {
		assert.True(t, v.IsValid("  t00010-5e7  "))
	})

	t.Run("bad format", func(t *testing.T) {
		assert.False(t, v.IsValid("T0010-5E7"))
	})

	t.Run("mutating any checksum char invalidates the code", func(t *testing.T) {
		valid := "T00010-5E7"
		for i := 7; i < len(valid); i++ {
			mutated := []byte(valid)
			if mutated[i] == 'F' {
				mutated[i] = '0'
			} else {
				mutated[i] = 'F'
			}
			assert.False(t, v.IsValid(string(mutated)), "mutation at %d should fail", i)
		}
	})

	t.Run("different salt rejects the code", func(t *testing.T) {
		other := NewValidator("other-salt")
		assert.False(t, other.IsValid("T00010-5E7"))
		assert.True(t, other.IsValid("T00010-456"))
	})
}

func TestValidatorSaltIsNotConstant(t *testing.T) {
	// A sample of codes must not hash identically under two salts.
	g1 := NewGenerator(testSalt)
	g2 := NewGenerator("another-salt")

	differs := false
	for index := 0; index < 20; index++ {
		c1, err := g1.Generate(index, "T")
		require.NoError(t, err)
		c2, err := g2.Generate(index, "T")
		require.NoError(t, err)
		if c1 != c2 {
			differs = true
			break
		}
	}
	assert.True(t, differs, fmt.Sprintf("salts %q and %q produced identical codes", testSalt, "another-salt"))
}
