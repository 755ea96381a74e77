// Package privacy implements the anonymity-driven redaction rules applied
// whenever one user's identity is shown to another. Every rule is a pure
// function of the subject's current anonymity level (0-100, higher = more
// private), so redaction always reflects the level at response time, never
// the level at the time the underlying record was written.
package privacy

// Name thresholds and placeholders per exposure context. Crisis-alert
// reporters hide their name above 50; mentor and student identities in the
// mentorship flows hide theirs above 70. Email visibility is 30 everywhere.
const (
	ReporterNameThreshold = 50
	MentorNameThreshold   = 70
	StudentNameThreshold  = 70
	EmailThreshold        = 30
	ContactThreshold      = 50

	AnonymousReporter = "Anonymous Student"
	AnonymousMentor   = "Anonymous Mentor"
	AnonymousStudent  = "Anonymous Student"
	AnonymousFallback = "Anonymous"
)

// RedactName returns placeholder when the anonymity level exceeds the
// threshold, otherwise the real name.
func RedactName(name string, level, threshold int, placeholder string) string {
	if level > threshold {
		return placeholder
	}
	return name
}

// RedactEmail returns the email only below the threshold, nil otherwise.
func RedactEmail(email string, level, threshold int) *string {
	if level < threshold {
		return &email
	}
	return nil
}

// CanContact reports whether the subject may be contacted directly.
func CanContact(level, threshold int) bool {
	return level < threshold
}

// Identity is the caller-safe view of another user.
type Identity struct {
	ID         *string `json:"id"`
	Name       string  `json:"name"`
	Email      *string `json:"email"`
	CanContact bool    `json:"can_contact"`
}

// AnonymousIdentity is the no-identity default used when the subject has been
// deleted or was never linked.
func AnonymousIdentity() Identity {
	return Identity{Name: AnonymousFallback}
}

// ReporterIdentity builds the redacted view of a crisis-alert reporter.
func ReporterIdentity(id, fullName, email string, level int) Identity {
	return Identity{
		ID:         &id,
		Name:       RedactName(fullName, level, ReporterNameThreshold, AnonymousReporter),
		Email:      RedactEmail(email, level, EmailThreshold),
		CanContact: CanContact(level, ContactThreshold),
	}
}

// DisplayName returns only the redacted name, for payloads that carry no
// other identity fields (the real-time fan-out notification).
func DisplayName(fullName string, level, threshold int, placeholder string) string {
	if fullName == "" {
		return AnonymousFallback
	}
	return RedactName(fullName, level, threshold, placeholder)
}
