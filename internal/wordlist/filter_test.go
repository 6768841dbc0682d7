package wordlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterEnglishASCII(t *testing.T) {
	filter := FilterForLang("en")
	assert.True(t, filter("hello"), "expected hello to pass english filter")
	for _, word := range []string{"résumé", "naïve", "don’t", "co-op"} {
		assert.False(t, filter(word), "expected %q to be rejected", word)
	}
}

func TestFilterOtherLanguagesKeepsEverything(t *testing.T) {
	filter := FilterForLang("fi")
	assert.True(t, filter("äiti"))
	assert.True(t, filter("co-op"))
}

func TestValidWord(t *testing.T) {
	assert.True(t, ValidWord("function"))
	assert.True(t, ValidWord("=>"))
	assert.False(t, ValidWord(""))
	assert.False(t, ValidWord("two words"))
	assert.False(t, ValidWord("tab\there"))
	assert.False(t, ValidWord("bell\a"))
}
