package services

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// Words rejected anywhere in user-authored free text (mood notes, chat
// messages). Kept short on purpose: the filter guards against abuse of the
// shared channels, not against venting about a hard day.
var bannedWords = []string{
	"spam", "scam", "scammer", "phishing", "malware",
	"porn", "porno", "nude", "nudes",
}

// ContentFilter screens user-authored free text before it is stored or
// forwarded to the assistant. Patterns compile once at construction.
type ContentFilter struct {
	bannedWordRegexps []*regexp.Regexp
	urlPattern        *regexp.Regexp
	phonePattern      *regexp.Regexp
	mu                sync.RWMutex
}

func NewContentFilter() *ContentFilter {
	cf := &ContentFilter{}
	cf.compilePatterns()
	return cf
}

func (cf *ContentFilter) compilePatterns() {
	cf.mu.Lock()
	defer cf.mu.Unlock()
	for _, word := range bannedWords {
		pattern := fmt.Sprintf(`(?i)\b%s\b`, regexp.QuoteMeta(word))
		cf.bannedWordRegexps = append(cf.bannedWordRegexps, regexp.MustCompile(pattern))
	}
	cf.urlPattern = regexp.MustCompile(`(?i)(https?://|www\.)\S+`)
	cf.phonePattern = regexp.MustCompile(`\+?\d[\d\s\-().]{8,}\d`)
}

// Check returns whether the text is acceptable and, if not, a machine-readable
// reason.
func (cf *ContentFilter) Check(text string) (bool, string) {
	cf.mu.RLock()
	defer cf.mu.RUnlock()
	if strings.TrimSpace(text) == "" {
		return true, ""
	}
	for _, re := range cf.bannedWordRegexps {
		if re.MatchString(text) {
			return false, "inappropriate_language"
		}
	}
	if cf.urlPattern.MatchString(text) {
		return false, "url_not_allowed"
	}
	if cf.phonePattern.MatchString(text) {
		return false, "contact_info_not_allowed"
	}
	return true, ""
}

// RejectionMessage maps a Check reason to the user-facing message.
func (cf *ContentFilter) RejectionMessage(reason string) string {
	messages := map[string]string{
		"inappropriate_language":   "Your message contains language that is not allowed.",
		"url_not_allowed":          "Links are not allowed in messages.",
		"contact_info_not_allowed": "Phone numbers are not allowed in messages.",
	}
	if msg, ok := messages[reason]; ok {
		return msg
	}
	return "Your message does not meet our content guidelines."
}
