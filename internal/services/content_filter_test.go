package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentFilterCheck(t *testing.T) {
	cf := NewContentFilter()

	tests := []struct {
		name   string
		text   string
		ok     bool
		reason string
	}{
		{"empty", "", true, ""},
		{"plain text", "had a rough day but talked it out", true, ""},
		{"banned word", "this looks like a scam to me", false, "inappropriate_language"},
		{"banned word case insensitive", "SPAM everywhere", false, "inappropriate_language"},
		{"banned word inside another word", "scampi for dinner", true, ""},
		{"http url", "see https://example.com/help", false, "url_not_allowed"},
		{"www url", "go to www.example.com now", false, "url_not_allowed"},
		{"phone number", "call me at +1 555 123 4567", false, "contact_info_not_allowed"},
		{"short digits pass", "room 2041", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := cf.Check(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestRejectionMessages(t *testing.T) {
	cf := NewContentFilter()

	assert.Equal(t, "Links are not allowed in messages.", cf.RejectionMessage("url_not_allowed"))
	assert.Equal(t, "Your message does not meet our content guidelines.", cf.RejectionMessage("unknown"))
}
