package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Optica-api/pkg/textnorm"
)

func TestFold(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Pérez", "perez"},
		{"  MUÑOZ   Ávila ", "munoz avila"},
		{"José Ñúñez", "jose nunez"},
		{"CC-1020", "cc-1020"},
		{"", ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, textnorm.Fold(tc.in), tc.in)
	}
}

func TestSearchKey(t *testing.T) {
	assert.Equal(t, "maria lopez 3001234567", textnorm.SearchKey("María López", "", "3001234567"))
	assert.Equal(t, "", textnorm.SearchKey("", " "))
}
