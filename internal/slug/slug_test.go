package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"punctuation dropped", "Tech Corp!", "tech-corp"},
		{"title", "Web Development Bootcamp 2025", "web-development-bootcamp-2025"},
		{"collapses whitespace", "  Digital   Academy  ", "digital-academy"},
		{"underscores and hyphens", "go_lang -- meetup", "go-lang-meetup"},
		{"accents", "Café Résumé", "cafe-resume"},
		{"at sign", "Hack@Home", "hack-at-home"},
		{"apostrophe", "Founder's Talk", "founders-talk"},
		{"only punctuation", "!!!", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.input))
		})
	}
}

func TestMakeIsIdempotent(t *testing.T) {
	once := Make("StartupHub Partners & Friends")
	assert.Equal(t, once, Make(once))
}
