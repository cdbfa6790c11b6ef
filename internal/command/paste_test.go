package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSignature(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Signature
	}{
		{
			name: "plain signature",
			text: "Erika Mustermann\nDirectrice technique\nerika.mustermann@example.com\n+33 6 12 34 56 78",
			want: Signature{Name: "Erika Mustermann", Email: "erika.mustermann@example.com"},
		},
		{
			name: "labelled name after blank lines",
			text: "\n\n  \nNom : Jean Dupont\nContact: jean@dupont.fr",
			want: Signature{Name: "Jean Dupont", Email: "jean@dupont.fr"},
		},
		{
			name: "email first",
			text: "mail: a.b@c.org\nName: Alice",
			want: Signature{Name: "Alice", Email: "a.b@c.org"},
		},
		{
			name: "first line too long for a name",
			text: "Ceci est une très longue biographie qui ne ressemble pas à un nom\nbob@example.com",
			want: Signature{Email: "bob@example.com"},
		},
		{
			name: "nothing recognizable",
			text: "",
			want: Signature{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSignature(tt.text))
		})
	}
}
