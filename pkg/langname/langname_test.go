package langname

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	assert.Equal(t, "French", Name("fr"))
	assert.Equal(t, "English", Name("en"))
	assert.Equal(t, "Russian", Name("ru"))
	assert.Equal(t, "not-a-code", Name("not-a-code"))
}

func TestBase(t *testing.T) {
	assert.Equal(t, "en", Base("en-US"))
	assert.Equal(t, "pt", Base("pt-BR"))
	assert.Equal(t, "fr", Base("fr"))
	assert.Equal(t, "", Base(""))
	assert.Equal(t, "", Base("???"))
}
