package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeString(t *testing.T) {
	assert.Equal(t, "+", Plus.String())
	assert.Equal(t, "EOF", EOF.String())
	assert.Equal(t, "while", While.String())
}

func TestKeywordsTableAgreesWithTypeNames(t *testing.T) {
	for word, typ := range Keywords {
		assert.Equal(t, word, typ.String(), "keyword %q should stringify to itself", word)
	}
}

func TestTokenString(t *testing.T) {
	tok := New(Number, "12.5", 12.5, 3)
	assert.Equal(t, `NUMBER "12.5" 12.5`, tok.String())

	eof := New(EOF, "", nil, 1)
	assert.Equal(t, `EOF ""`, eof.String())
}
