package composer

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	perrors "github.com/conneroisu/passforge/internal/errors"
	"github.com/conneroisu/passforge/internal/random"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func onlyFrom(t *testing.T, s, allowed string) {
	t.Helper()
	for _, r := range s {
		assert.Truef(t, strings.ContainsRune(allowed, r), "%q is not in %q", r, allowed)
	}
}

func TestComposeScenarios(t *testing.T) {
	t.Run("prefix with lowercase fill", func(t *testing.T) {
		req := Request{Length: 10, Classes: Classes(Lower), Prefix: "ab"}

		res, err := Compose(req, random.NewSeeded(1))
		require.NoError(t, err)

		assert.Equal(t, 10, utf8.RuneCountInString(res.Password))
		assert.True(t, strings.HasPrefix(res.Password, "ab"))
		onlyFrom(t, res.Password[2:], LowerChars)
		assert.Equal(t, "ab"+res.Fill, res.Password)
	})

	t.Run("must include with uppercase fill", func(t *testing.T) {
		req := Request{Length: 5, Classes: Classes(Upper), MustInclude: "XY"}

		res, err := Compose(req, random.NewSeeded(2))
		require.NoError(t, err)

		assert.Len(t, res.Password, 5)
		assert.Contains(t, res.Password, "XY")
		rest := res.Password[:res.InsertAt] + res.Password[res.InsertAt+2:]
		assert.Equal(t, res.Fill, rest)
		onlyFrom(t, rest, UpperChars)
	})

	t.Run("must include conflicts with exclusion", func(t *testing.T) {
		req := Request{Length: 8, Classes: Classes(Lower), MustInclude: "a", Exclude: "a"}

		_, err := Compose(req, random.NewSeeded(3))
		assert.ErrorIs(t, err, ErrMustIncludeConflictsWithExclusion)
	})

	t.Run("prefix too long", func(t *testing.T) {
		req := Request{Length: 3, Classes: Classes(Lower), Prefix: "abcd"}

		_, err := Compose(req, random.NewSeeded(4))
		assert.ErrorIs(t, err, ErrPrefixTooLong)
	})

	t.Run("empty alphabet", func(t *testing.T) {
		req := Request{Length: 4}

		_, err := Compose(req, random.NewSeeded(5))
		assert.ErrorIs(t, err, ErrEmptyAlphabet)
	})
}

func TestValidationOrder(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want *perrors.PassforgeError
	}{
		{
			name: "zero length",
			req:  Request{Length: 0, Classes: Classes(Lower)},
			want: ErrInvalidLength,
		},
		{
			name: "negative length beats everything else",
			req:  Request{Length: -1, MustInclude: "abc", Exclude: "a"},
			want: ErrInvalidLength,
		},
		{
			name: "must include too long beats prefix too long",
			req:  Request{Length: 2, Classes: Classes(Lower), Prefix: "abc", MustInclude: "xyz"},
			want: ErrMustIncludeTooLong,
		},
		{
			name: "exclusion conflict beats empty alphabet",
			req:  Request{Length: 6, MustInclude: "q", Exclude: "q"},
			want: ErrMustIncludeConflictsWithExclusion,
		},
		{
			name: "exclusions can empty the alphabet",
			req:  Request{Length: 4, Classes: Classes(Digit), Exclude: DigitChars},
			want: ErrEmptyAlphabet,
		},
		{
			name: "empty alphabet with a short prefix",
			req:  Request{Length: 4, Prefix: "ab"},
			want: ErrEmptyAlphabet,
		},
		{
			name: "prefix too long even without classes",
			req:  Request{Length: 3, Prefix: "abcd"},
			want: ErrPrefixTooLong,
		},
		{
			name: "prefix and must include exceed length",
			req:  Request{Length: 5, Classes: Classes(Lower), Prefix: "ab", MustInclude: "wxyz"},
			want: ErrLengthBudgetExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &random.Sequence{}

			res, err := Compose(tt.req, src)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, perrors.IsValidationError(err))
			assert.Equal(t, Result{}, res)

			// Validation happens before any randomness is drawn.
			assert.Zero(t, src.PickCalls)
			assert.Zero(t, src.IntCalls)

			assert.ErrorIs(t, Validate(tt.req), tt.want)
		})
	}
}

func TestErrorContext(t *testing.T) {
	_, err := Compose(Request{Length: 5, Classes: Classes(Lower), Prefix: "ab", MustInclude: "wxyz"}, &random.Sequence{})

	var pe *perrors.PassforgeError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 6, pe.Context["required"])
	assert.Equal(t, 5, pe.Context["available"])

	// The sentinel itself stays untouched.
	assert.Nil(t, ErrLengthBudgetExceeded.Context)

	_, err = Compose(Request{Length: 5, Classes: Classes(Lower), MustInclude: "a-b", Exclude: "-"}, &random.Sequence{})
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "-", pe.Context["char"])
}

func TestZeroLengthFill(t *testing.T) {
	req := Request{Length: 5, Prefix: "ab", MustInclude: "XYZ"}
	src := &random.Sequence{Ints: []int{1}}

	res, err := Compose(req, src)
	require.NoError(t, err)

	assert.Equal(t, "", res.Fill)
	assert.Equal(t, "aXYZb", res.Password)
	assert.Zero(t, src.PickCalls)
}

func TestInsertionPositions(t *testing.T) {
	req := Request{Length: 6, Classes: Classes(Upper), Prefix: "ab", MustInclude: "xy"}

	tests := []struct {
		offset   int
		expected string
	}{
		{0, "xyabAB"},
		{1, "axybAB"}, // may land inside the prefix region
		{2, "abxyAB"},
		{4, "abABxy"},
	}

	for _, tt := range tests {
		src := &random.Sequence{Picks: []int{0, 1}, Ints: []int{tt.offset}}

		res, err := Compose(req, src)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, res.Password)
		assert.Equal(t, tt.offset, res.InsertAt)
	}
}

func TestNoInsertionDrawWithoutMustInclude(t *testing.T) {
	src := &random.Sequence{}
	_, err := Compose(Request{Length: 4, Classes: Classes(Digit)}, src)
	require.NoError(t, err)

	assert.Equal(t, 4, src.PickCalls)
	assert.Zero(t, src.IntCalls)
}

func TestUnicodeLengthsAreRunes(t *testing.T) {
	req := Request{Length: 6, Classes: Classes(Lower), Prefix: "日本", MustInclude: "é"}

	res, err := Compose(req, random.NewSeeded(9))
	require.NoError(t, err)

	assert.Equal(t, 6, utf8.RuneCountInString(res.Password))
	assert.Contains(t, res.Password, "é")
	assert.Equal(t, 3, utf8.RuneCountInString(res.Fill))

	_, err = Compose(Request{Length: 1, Classes: Classes(Lower), Prefix: "日本"}, random.NewSeeded(9))
	assert.ErrorIs(t, err, ErrPrefixTooLong)
}

func TestDeterminism(t *testing.T) {
	req := Request{Length: 32, Classes: Classes(AllClasses...), Prefix: "p-", MustInclude: "MUST"}

	a, err := Password(req, random.NewSeeded(42))
	require.NoError(t, err)
	b, err := Password(req, random.NewSeeded(42))
	require.NoError(t, err)
	c, err := Password(req, random.NewSeeded(43))
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestPasswordReturnsEmptyOnError(t *testing.T) {
	pw, err := Password(Request{Length: 4}, random.NewSeeded(1))
	assert.Error(t, err)
	assert.Empty(t, pw)
}

func TestAlphabet(t *testing.T) {
	assert.Equal(t, []rune(UpperChars+DigitChars), Alphabet(Classes(Digit, Upper), ""))
	assert.Equal(t, []rune("0123456789"), Alphabet(Classes(Digit), "abc"))
	assert.Equal(t, []rune("02468"), Alphabet(Classes(Digit), "13579"))
	assert.Empty(t, Alphabet(0, ""))
	assert.Len(t, Alphabet(Classes(AllClasses...), ""), 26+26+10+32)
}

func TestFillLength(t *testing.T) {
	assert.Equal(t, 6, Request{Length: 10, Prefix: "ab", MustInclude: "cd"}.FillLength())
	assert.Equal(t, -1, Request{Length: 3, Prefix: "abcd"}.FillLength())
}
