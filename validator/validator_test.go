package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatorCheck(t *testing.T) {
	v := New()
	assert.True(t, v.Valid())

	v.Check(false, "name", "first message")
	v.Check(false, "name", "second message")
	assert.False(t, v.Valid())
	// the first failure for a field is the one that is reported
	assert.Equal(t, "first message", v.Errors["name"])
}

func TestIn(t *testing.T) {
	assert.True(t, In("b", "a", "b", "c"))
	assert.False(t, In("d", "a", "b", "c"))
}

func TestMatchesAlphaNum(t *testing.T) {
	assert.True(t, Matches("Jane", AlphaNumRX))
	assert.True(t, Matches("José", AlphaNumRX)) // unicode letters count
	assert.False(t, Matches("J@ne", AlphaNumRX))
	assert.False(t, Matches("Le Guin", AlphaNumRX)) // no spaces
	assert.False(t, Matches("", AlphaNumRX))
}

func TestRunesBetween(t *testing.T) {
	assert.True(t, RunesBetween("abc", 3, 100))
	assert.False(t, RunesBetween("ab", 3, 100))
	assert.True(t, RunesBetween("ééé", 3, 3)) // counted in runes, not bytes
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "Fantasy", Sanitize("  Fantasy  "))
	assert.Equal(t, "a &lt;b&gt;", Sanitize("a <b>"))
}

func TestParseDate(t *testing.T) {
	tm, ok, err := ParseDate("1817-07-18")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1817, tm.Year())

	_, ok, err = ParseDate("")
	assert.NoError(t, err)
	assert.False(t, ok)

	_, _, err = ParseDate("not-a-date")
	assert.Error(t, err)
}
