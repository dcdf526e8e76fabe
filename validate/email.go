// Package validate holds the field validators of the edit session, most
// importantly the email uniqueness checks. Validators never mutate the
// store; they only report conflicts.
package validate

import (
	"strings"
)

// NormalizeEmail trims and lowercases an email for comparison. Emails are
// stored as entered and normalized on every check.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// EmailConflicts reports whether the candidate email collides with a stored
// email of another record. The record's own original email is excluded, so
// an unchanged email never conflicts with itself. Empty candidates never
// conflict; the required check reports those.
func EmailConflicts(candidate, originalEmail string, storedEmails []string) bool {
	normalized := NormalizeEmail(candidate)
	if normalized == "" {
		return false
	}
	if normalized == NormalizeEmail(originalEmail) {
		return false
	}
	for _, stored := range storedEmails {
		if NormalizeEmail(stored) == normalized {
			return true
		}
	}
	return false
}

// BatchEmails runs the bulk-mode uniqueness check and returns one flag per
// row, true when that row's email control must be marked notUniqueEmail.
//
// formEmails are the current buffer values of the rows being edited,
// pageEmails the persisted emails of those same rows, storedEmails every
// email in the store. A row conflicts when its normalized value appears more
// than once in the form, or when it appears in the store outside the edited
// page. Subtracting pageEmails keeps a row's own unedited persisted email
// from flagging itself.
func BatchEmails(formEmails, pageEmails, storedEmails []string) []bool {
	normalizedForm := make([]string, len(formEmails))
	for i, email := range formEmails {
		normalizedForm[i] = NormalizeEmail(email)
	}

	onPage := make(map[string]struct{}, len(pageEmails))
	for _, email := range pageEmails {
		if normalized := NormalizeEmail(email); normalized != "" {
			onPage[normalized] = struct{}{}
		}
	}

	offPage := make(map[string]struct{}, len(storedEmails))
	for _, email := range storedEmails {
		normalized := NormalizeEmail(email)
		if normalized == "" {
			continue
		}
		if _, ok := onPage[normalized]; ok {
			continue
		}
		offPage[normalized] = struct{}{}
	}

	counts := make(map[string]int, len(normalizedForm))
	for _, email := range normalizedForm {
		if email != "" {
			counts[email]++
		}
	}

	flags := make([]bool, len(normalizedForm))
	for i, email := range normalizedForm {
		if email == "" {
			continue
		}
		if counts[email] > 1 {
			flags[i] = true
			continue
		}
		if _, ok := offPage[email]; ok {
			flags[i] = true
		}
	}
	return flags
}
