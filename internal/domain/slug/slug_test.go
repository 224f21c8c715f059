package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Vitrina-api/internal/domain/slug"
)

// Make debe producir slugs URL-safe, sin tildes y con guiones.
func TestMake(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"Tienda de Doña Ana", "tienda-de-dona-ana"},
		{"Café & Más!!", "cafe-mas"},
		{"  Vitrina   2024  ", "vitrina-2024"},
		{"ÑANDÚ", "nandu"},
		{"", ""},
		{"---", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.expected, slug.Make(tc.in), "entrada: %q", tc.in)
	}
}
