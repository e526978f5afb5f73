package security

import "strings"

// AdminSet is the configured list of admin emails, compared case-insensitively.
type AdminSet struct {
	emails map[string]struct{}
}

func NewAdminSet(emails []string) *AdminSet {
	s := &AdminSet{emails: make(map[string]struct{}, len(emails))}
	for _, e := range emails {
		if e = normEmail(e); e != "" {
			s.emails[e] = struct{}{}
		}
	}
	return s
}

func (s *AdminSet) IsAdmin(email *string) bool {
	if s == nil || email == nil {
		return false
	}
	_, ok := s.emails[normEmail(*email)]
	return ok
}

func normEmail(e string) string { return strings.ToLower(strings.TrimSpace(e)) }
