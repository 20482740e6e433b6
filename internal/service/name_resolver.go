package service

import (
	"strings"

	"github.com/hireflow/assessment-api/internal/model"
	"github.com/hireflow/assessment-api/internal/repository"
)

// NameResolver produces a display name for a submission by probing the
// student and candidate stores in a fixed fallback order:
//
//  1. by student id, 2. by candidate id, 3. by email in students,
//  4. by email in candidates, 5. the email's local part.
type NameResolver struct {
	students   repository.StudentRepository
	candidates repository.CandidateRepository
}

func NewNameResolver(students repository.StudentRepository, candidates repository.CandidateRepository) *NameResolver {
	return &NameResolver{students: students, candidates: candidates}
}

// Resolve returns a non-blank display name for the invitation's candidate.
func (r *NameResolver) Resolve(inv *model.Invitation) string {
	if inv.StudentID != nil {
		if s, err := r.students.FindByID(*inv.StudentID); err == nil {
			return personDisplayName(s.Salutation, s.FirstName, s.MiddleName, s.LastName, s.Name, inv.Email)
		}
	}
	if inv.CandidateID != nil {
		if c, err := r.candidates.FindByID(*inv.CandidateID); err == nil {
			return personDisplayName(c.Salutation, c.FirstName, c.MiddleName, c.LastName, c.Name, inv.Email)
		}
	}
	if s, err := r.students.FindByEmail(inv.Email); err == nil {
		return personDisplayName(s.Salutation, s.FirstName, s.MiddleName, s.LastName, s.Name, inv.Email)
	}
	if c, err := r.candidates.FindByEmail(inv.Email); err == nil {
		return personDisplayName(c.Salutation, c.FirstName, c.MiddleName, c.LastName, c.Name, inv.Email)
	}
	return EmailLocalPart(inv.Email)
}

// Repair re-resolves a stored candidate name when it looks auto-generated.
// Used when listing historical results; it never writes back.
func (r *NameResolver) Repair(storedName, email string, studentID, candidateID *uint) string {
	if !LooksAutoGenerated(storedName, email) {
		return storedName
	}
	return r.Resolve(&model.Invitation{
		Email:       email,
		StudentID:   studentID,
		CandidateID: candidateID,
	})
}

// LooksAutoGenerated reports whether a stored candidate name was derived from
// the email rather than entered by a person: it equals the email itself, or
// matches the email's local part with no spaces.
func LooksAutoGenerated(name, email string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return true
	}
	if strings.EqualFold(name, email) {
		return true
	}
	return !strings.Contains(name, " ") && strings.EqualFold(name, EmailLocalPart(email))
}

// EmailLocalPart returns everything before the @, or the whole string when no
// @ is present.
func EmailLocalPart(email string) string {
	if at := strings.Index(email, "@"); at >= 0 {
		return email[:at]
	}
	return email
}

// personDisplayName assembles salutation + first + middle + last from the
// non-blank parts, falling back to the record's plain name field and finally
// to the email's local part.
func personDisplayName(salutation, first, middle, last, plain, email string) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{salutation, first, middle, last} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}
	if strings.TrimSpace(plain) != "" {
		return strings.TrimSpace(plain)
	}
	return EmailLocalPart(email)
}
