package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	for _, text := range []string{"0.0.0", "1.0.0", "1.2.3", "10.20.30", "2.0.15"} {
		v, err := Parse(text)
		require.NoError(t, err, text)
		assert.Equal(t, text, v.String())
	}
}

func TestParseInvalid(t *testing.T) {
	for _, text := range []string{
		"", "1", "1.2", "1.2.3.4", "v1.2.3", "1.2.3-rc1", "1.2.3+build",
		"1.02.3", "01.2.3", "a.b.c", "1.2.x", " 1.2.3",
	} {
		_, err := Parse(text)
		assert.ErrorIs(t, err, ErrInvalidFormat, text)
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.0.0", "1.0.1", -1},
		{"1.1.0", "1.0.9", 1},
		{"2.0.0", "1.99.99", 1},
		{"0.9.9", "1.0.0", -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MustParse(tt.a).Compare(MustParse(tt.b)), "%s vs %s", tt.a, tt.b)
	}
}

func TestBump(t *testing.T) {
	v := MustParse("1.2.3")

	assert.Equal(t, "1.2.4", Bump(v, KindRevision).String())
	assert.Equal(t, "1.3.0", Bump(v, KindMinor).String())
	assert.Equal(t, "2.0.0", Bump(v, KindMajor).String())

	// Major and minor bumps always reset the lower components.
	major := Bump(v, KindMajor)
	assert.Zero(t, major.Minor)
	assert.Zero(t, major.Revision)
	minor := Bump(v, KindMinor)
	assert.Zero(t, minor.Revision)
}

func TestSetRejectsRegression(t *testing.T) {
	current := MustParse("2.1.0")

	_, err := Set(current, MustParse("2.0.0"), false)
	assert.ErrorIs(t, err, ErrRegression)

	forced, err := Set(current, MustParse("2.0.0"), true)
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", forced.String())

	same, err := Set(current, current, false)
	require.NoError(t, err)
	assert.True(t, same.Equal(current))
}

func TestLatest(t *testing.T) {
	_, ok := Latest(nil)
	assert.False(t, ok)

	latest, ok := Latest([]Version{MustParse("1.0.0"), MustParse("1.10.0"), MustParse("1.2.0")})
	require.True(t, ok)
	assert.Equal(t, "1.10.0", latest.String())
}

func TestTagHelpers(t *testing.T) {
	v := MustParse("1.3.0")
	assert.Equal(t, "SamplePack-v1.3.0", TagName("SamplePack", v))

	parsed, ok := ParseTag("SamplePack-v1.3.0", "SamplePack")
	require.True(t, ok)
	assert.True(t, parsed.Equal(v))

	_, ok = ParseTag("OtherPack-v1.3.0", "SamplePack")
	assert.False(t, ok)
	_, ok = ParseTag("SamplePack-v1.3", "SamplePack")
	assert.False(t, ok)
}

func TestLatestTag(t *testing.T) {
	tags := []string{
		"SamplePack-v1.0.0",
		"SamplePack-v1.2.0",
		"SamplePack-v1.10.0",
		"OtherPack-v9.9.9",
		"not-a-tag",
	}

	latest, ok := LatestTag(tags, "SamplePack")
	require.True(t, ok)
	assert.Equal(t, "1.10.0", latest.String())

	_, ok = LatestTag(tags, "MissingPack")
	assert.False(t, ok)
}

func TestCheckConstraint(t *testing.T) {
	ok, err := CheckConstraint(MustParse("1.5.0"), ">= 1.2.0, < 2.0.0")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckConstraint(MustParse("2.1.0"), ">= 1.2.0, < 2.0.0")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = CheckConstraint(MustParse("1.0.0"), ">>nonsense")
	assert.ErrorIs(t, err, ErrInvalidConstraint)
}
