package todo

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Field names used as FieldErrors keys.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
)

// Validation messages shown next to the offending field.
var (
	MsgTitleRequired   = "Title is required."
	MsgTitleTooLong    = fmt.Sprintf("Title cannot exceed %d characters.", TitleMaxLength)
	MsgDescriptionLong = fmt.Sprintf("Description cannot exceed %d characters.", DescriptionMaxLength)
)

// FieldErrors maps a field name to its validation message.
type FieldErrors map[string]string

// Empty reports whether no field failed.
func (fe FieldErrors) Empty() bool {
	return len(fe) == 0
}

// Get returns the message for field, or "".
func (fe FieldErrors) Get(field string) string {
	if fe == nil {
		return ""
	}
	return fe[field]
}

func (fe FieldErrors) Error() string {
	var parts []string
	for _, field := range []string{FieldTitle, FieldDescription} {
		if msg, ok := fe[field]; ok {
			parts = append(parts, field+": "+msg)
		}
	}
	return strings.Join(parts, "; ")
}

// Err returns fe as an error, or nil when it is empty.
func (fe FieldErrors) Err() error {
	if fe.Empty() {
		return nil
	}
	return fe
}

// ValidateDraft checks a draft against the create/edit rules.
func ValidateDraft(d Draft) FieldErrors {
	errs := FieldErrors{}

	title := strings.TrimSpace(d.Title)
	switch {
	case title == "":
		errs[FieldTitle] = MsgTitleRequired
	case utf8.RuneCountInString(title) > TitleMaxLength:
		errs[FieldTitle] = MsgTitleTooLong
	}

	if utf8.RuneCountInString(d.Description) > DescriptionMaxLength {
		errs[FieldDescription] = MsgDescriptionLong
	}

	return errs
}

// Truncate returns at most n characters of s.
func Truncate(s string, n int) string {
	if n < 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
