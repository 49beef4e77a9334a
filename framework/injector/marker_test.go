package injector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMarker(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  Key
		ok    bool
	}{
		{"by property", `inject`, TypeKey("prop"), true},
		{"named", `inject(name="one")`, NamedKey("prop", "one"), true},
		{"empty name", `inject(name="")`, NamedKey("prop", ""), true},
		{"by type", `inject:someValue`, TypeKey("someValue"), true},
		{"named type", `inject(name="two"):someValue`, NamedKey("someValue", "two"), true},
		{"name with spaces", `inject(name="a b"):x`, NamedKey("x", "a b"), true},
		{"dotted type", `inject:pkg.Service`, TypeKey("pkg.Service"), true},

		{"plain string", `Hello World`, Key{}, false},
		{"empty", ``, Key{}, false},
		{"prefix word", `injected`, Key{}, false},
		{"leading space", ` inject`, Key{}, false},
		{"trailing space", `inject `, Key{}, false},
		{"empty type", `inject:`, Key{}, false},
		{"type with space", `inject: someValue`, Key{}, false},
		{"unterminated quote", `inject(name="one)`, Key{}, false},
		{"unterminated paren", `inject(name="one"`, Key{}, false},
		{"single quotes", `inject(name='one')`, Key{}, false},
		{"stray quote in name", `inject(name="o"ne")`, Key{}, false},
		{"garbage after name", `inject(name="one")x`, Key{}, false},
		{"other option", `inject(type="one")`, Key{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseMarker("prop", tt.value)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "db", TypeKey("db").String())
	assert.Equal(t, "db by name primary", NamedKey("db", "primary").String())
}
