package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLitSkipsLeadingWhitespace(t *testing.T) {
	v, next, ok := Lit("/")(NewInput("  /rest"))
	require.True(t, ok)
	assert.Equal(t, "/", v)
	assert.Equal(t, "rest", next.Rest())

	_, next, ok = Lit("/")(NewInput("x/"))
	assert.False(t, ok)
	assert.Equal(t, 0, next.Pos())
}

func TestOptNeverFails(t *testing.T) {
	v, next, ok := Opt(Lit("also"))(NewInput("and"))
	require.True(t, ok)
	assert.Equal(t, "", v)
	assert.Equal(t, "and", next.Rest())
}

func TestAltPicksFirstMatch(t *testing.T) {
	p := Alt(Lit("ab"), Lit("a"))
	v, next, ok := p(NewInput("abc"))
	require.True(t, ok)
	assert.Equal(t, "ab", v)
	assert.Equal(t, "c", next.Rest())
}

func TestSeq(t *testing.T) {
	p := Seq(Lit("Word"), Lit("List"))
	v, next, ok := p(NewInput("Word  List 3"))
	require.True(t, ok)
	assert.Equal(t, []string{"Word", "List"}, v)
	assert.Equal(t, " 3", next.Rest())

	_, next, ok = p(NewInput("Word Lost"))
	assert.False(t, ok)
	assert.Equal(t, 0, next.Pos())
}

func TestRepeatBounds(t *testing.T) {
	p := Repeat(Word, 1, 2)
	v, next, ok := p(NewInput("one two three"))
	require.True(t, ok)
	assert.Equal(t, []string{"one", "two"}, v)
	assert.Equal(t, " three", next.Rest())

	_, _, ok = p(NewInput(", one"))
	assert.False(t, ok)
}

func TestSepBy1LeavesDanglingSeparator(t *testing.T) {
	v, next, ok := SepBy1(Word, Lit(","))(NewInput("a, b, ;"))
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, v)
	assert.Equal(t, ", ;", next.Rest())
}

func TestSpanTrimsWhitespace(t *testing.T) {
	v, next, ok := Span(Many(Alt(Word, Whitespace())))(NewInput("  give up  ;"))
	require.True(t, ok)
	assert.Equal(t, "give up", v)
	assert.Equal(t, ";", next.Rest())
}

func TestSkipTo(t *testing.T) {
	t.Run("exclusive", func(t *testing.T) {
		v, next, ok := SkipTo(Lit("."), false, nil)(NewInput(" ab c. d"))
		require.True(t, ok)
		assert.Equal(t, "ab c", v)
		assert.Equal(t, ". d", next.Rest())
	})

	t.Run("inclusive", func(t *testing.T) {
		v, next, ok := SkipTo(Lit("."), true, nil)(NewInput("ab c. d"))
		require.True(t, ok)
		assert.Equal(t, "ab c.", v)
		assert.Equal(t, " d", next.Rest())
	})

	t.Run("fail on", func(t *testing.T) {
		_, next, ok := SkipTo(Lit("."), true, Matches(Lit("stop")))(NewInput("ab stop."))
		assert.False(t, ok)
		assert.Equal(t, 0, next.Pos())
	})

	t.Run("no target", func(t *testing.T) {
		_, _, ok := SkipTo(Lit("."), true, nil)(NewInput("no period"))
		assert.False(t, ok)
	})
}

func TestEnd(t *testing.T) {
	_, _, ok := End()(NewInput("  \n"))
	assert.True(t, ok)
	_, _, ok = End()(NewInput(" x"))
	assert.False(t, ok)
}

func TestWhitespaceRequiresSpace(t *testing.T) {
	_, _, ok := Whitespace()(NewInput("x"))
	assert.False(t, ok)
	v, _, ok := Whitespace()(NewInput(" \tx"))
	require.True(t, ok)
	assert.Equal(t, " \t", v)
}
