package service

import (
	"testing"

	"github.com/hireflow/assessment-api/internal/model"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeStudentRepo struct {
	byID    map[uint]*model.Student
	byEmail map[string]*model.Student
}

func (f *fakeStudentRepo) FindByID(id uint) (*model.Student, error) {
	if s, ok := f.byID[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStudentRepo) FindByEmail(email string) (*model.Student, error) {
	if s, ok := f.byEmail[email]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeCandidateRepo struct {
	byID    map[uint]*model.Candidate
	byEmail map[string]*model.Candidate
}

func (f *fakeCandidateRepo) FindByID(id uint) (*model.Candidate, error) {
	if c, ok := f.byID[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCandidateRepo) FindByEmail(email string) (*model.Candidate, error) {
	if c, ok := f.byEmail[email]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func emptyDirectories() (*fakeStudentRepo, *fakeCandidateRepo) {
	return &fakeStudentRepo{byID: map[uint]*model.Student{}, byEmail: map[string]*model.Student{}},
		&fakeCandidateRepo{byID: map[uint]*model.Candidate{}, byEmail: map[string]*model.Candidate{}}
}

func uintPtr(v uint) *uint { return &v }

func TestNameResolver_StudentIDWins(t *testing.T) {
	students, candidates := emptyDirectories()
	students.byID[7] = &model.Student{Salutation: "Dr.", FirstName: "Jane", LastName: "Doe"}
	candidates.byID[9] = &model.Candidate{FirstName: "Wrong", LastName: "Person"}

	r := NewNameResolver(students, candidates)
	name := r.Resolve(&model.Invitation{StudentID: uintPtr(7), CandidateID: uintPtr(9), Email: "jane.doe@x.com"})

	assert.Equal(t, "Dr. Jane Doe", name)
}

func TestNameResolver_FallsThroughToCandidateID(t *testing.T) {
	students, candidates := emptyDirectories()
	candidates.byID[9] = &model.Candidate{FirstName: "Omar", MiddleName: "K.", LastName: "Aziz"}

	r := NewNameResolver(students, candidates)
	name := r.Resolve(&model.Invitation{StudentID: uintPtr(7), CandidateID: uintPtr(9), Email: "omar@x.com"})

	assert.Equal(t, "Omar K. Aziz", name)
}

func TestNameResolver_EmailLookups(t *testing.T) {
	students, candidates := emptyDirectories()
	candidates.byEmail["lee@x.com"] = &model.Candidate{Name: "Lee Minho"}

	r := NewNameResolver(students, candidates)
	name := r.Resolve(&model.Invitation{Email: "lee@x.com"})

	assert.Equal(t, "Lee Minho", name)
}

func TestNameResolver_PlainNameFallback(t *testing.T) {
	students, candidates := emptyDirectories()
	students.byID[3] = &model.Student{Name: "  Priya Sharma  "}

	r := NewNameResolver(students, candidates)
	name := r.Resolve(&model.Invitation{StudentID: uintPtr(3), Email: "priya@x.com"})

	assert.Equal(t, "Priya Sharma", name)
}

func TestNameResolver_EmailLocalPartFallback(t *testing.T) {
	students, candidates := emptyDirectories()

	r := NewNameResolver(students, candidates)
	name := r.Resolve(&model.Invitation{Email: "jane.doe@x.com"})

	assert.Equal(t, "jane.doe", name)
}

func TestNameResolver_RecordWithNoUsableName(t *testing.T) {
	students, candidates := emptyDirectories()
	students.byID[3] = &model.Student{Salutation: " ", Name: ""}

	r := NewNameResolver(students, candidates)
	name := r.Resolve(&model.Invitation{StudentID: uintPtr(3), Email: "blank@x.com"})

	assert.Equal(t, "blank", name)
}

func TestLooksAutoGenerated(t *testing.T) {
	tests := []struct {
		name  string
		value string
		email string
		want  bool
	}{
		{name: "equals email", value: "jane.doe@x.com", email: "jane.doe@x.com", want: true},
		{name: "equals local part", value: "jane.doe", email: "jane.doe@x.com", want: true},
		{name: "blank", value: "  ", email: "jane.doe@x.com", want: true},
		{name: "real name with space", value: "Jane Doe", email: "jane.doe@x.com", want: false},
		{name: "single word name differing from local part", value: "Madonna", email: "m@x.com", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, LooksAutoGenerated(tc.value, tc.email))
		})
	}
}

func TestNameResolver_Repair(t *testing.T) {
	students, candidates := emptyDirectories()
	students.byEmail["jane.doe@x.com"] = &model.Student{FirstName: "Jane", LastName: "Doe"}

	r := NewNameResolver(students, candidates)

	assert.Equal(t, "Jane Doe", r.Repair("jane.doe", "jane.doe@x.com", nil, nil))
	assert.Equal(t, "Janet D.", r.Repair("Janet D.", "jane.doe@x.com", nil, nil))
}
