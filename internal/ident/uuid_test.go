package ident

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUID_String(t *testing.T) {
	root := New(nil, 7)
	child := New(&root, 42)

	assert.Equal(t, "[UUID:7]", root.String())
	assert.Equal(t, "[UUID:7.42]", child.String())
	assert.Equal(t, []uint32{7, 42}, child.Path())
}

func TestParse_RoundTrip(t *testing.T) {
	for _, text := range []string{"[UUID:1]", "[UUID:7.42]", "[UUID:1.2.3.4294967295]"} {
		t.Run(text, func(t *testing.T) {
			u, err := Parse(text)
			require.NoError(t, err)
			assert.Equal(t, text, u.String())
		})
	}
}

func TestParse_BarePath(t *testing.T) {
	u, err := Parse("3.9")
	require.NoError(t, err)
	assert.Equal(t, uint32(9), u.ID())
	root, ok := u.Root()
	require.True(t, ok)
	assert.Equal(t, uint32(3), root.ID())
	_, ok = root.Root()
	assert.False(t, ok)
}

func TestRoot_ReturnsCopy(t *testing.T) {
	u := MustParse("1.5")

	root, ok := u.Root()
	require.True(t, ok)
	root = New(nil, 9)

	assert.Equal(t, "[UUID:9]", root.String())
	assert.Equal(t, "[UUID:1.5]", u.String())
}

func TestNew_DoesNotAliasRoot(t *testing.T) {
	root := New(nil, 1)
	u := New(&root, 5)

	root.id = 9

	assert.Equal(t, "[UUID:1.5]", u.String())
	assert.Equal(t, 0, Compare(u, MustParse("1.5")))
}

func TestIsZero(t *testing.T) {
	assert.True(t, UUID{}.IsZero())
	assert.False(t, New(nil, 1).IsZero())
	assert.False(t, MustParse("1.0").IsZero())
}

func TestParse_Errors(t *testing.T) {
	cases := []string{"", "[UUID:]", "[UUID:1.2", "abc", "1..2", "-1", "4294967296"}
	for _, text := range cases {
		t.Run(text, func(t *testing.T) {
			_, err := Parse(text)
			require.Error(t, err)
			var pe *ParseError
			assert.ErrorAs(t, err, &pe)
			assert.Equal(t, text, pe.Input)
		})
	}
}

func TestCompare_IDFirst(t *testing.T) {
	a := MustParse("9.1")
	b := MustParse("1.2")
	assert.Equal(t, -1, Compare(a, b))
	assert.Equal(t, 1, Compare(b, a))
}

func TestCompare_RootTieBreak(t *testing.T) {
	noRoot := MustParse("5")
	lowRoot := MustParse("1.5")
	highRoot := MustParse("2.5")

	assert.Equal(t, -1, Compare(noRoot, lowRoot), "nil root sorts first")
	assert.Equal(t, 1, Compare(lowRoot, noRoot))
	assert.Equal(t, -1, Compare(lowRoot, highRoot))
	assert.Equal(t, 0, Compare(lowRoot, MustParse("[UUID:1.5]")))
	assert.True(t, Equal(highRoot, MustParse("2.5")))
}

func TestCompare_Transitive(t *testing.T) {
	ids := []UUID{
		MustParse("3"), MustParse("1.3"), MustParse("2.3"), MustParse("1.1.3"),
		MustParse("1"), MustParse("4.1"), MustParse("2"),
	}
	for _, a := range ids {
		for _, b := range ids {
			assert.Equal(t, -Compare(b, a), Compare(a, b), "antisymmetry %s %s", a, b)
			for _, c := range ids {
				if Compare(a, b) <= 0 && Compare(b, c) <= 0 {
					assert.LessOrEqual(t, Compare(a, c), 0, "transitivity %s %s %s", a, b, c)
				}
			}
		}
	}
}
