package resume

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("resume draft not found")

// Draft — черновик резюме, который наполняется в ходе интервью.
type Draft struct {
	ID                uuid.UUID     `json:"id"`
	UserID            uuid.UUID     `json:"userId"`
	FullName          string        `json:"fullName"`
	FullNameKana      string        `json:"fullNameKana"`
	BirthDate         string        `json:"birthDate"` // YYYY-MM-DD or empty
	Gender            string        `json:"gender,omitempty"`
	PostalCode        string        `json:"postalCode"`
	Address           string        `json:"address"`
	Phone             string        `json:"phone"`
	Email             string        `json:"email"`
	PhotoURL          string        `json:"photoUrl,omitempty"`
	PhotoProcessedURL string        `json:"photoProcessedUrl,omitempty"`
	Education         []Education   `json:"education"`
	WorkHistories     []WorkHistory `json:"workHistories"`
	Skills            []string      `json:"skills"`
	Certifications    []string      `json:"certifications"`
	SelfPR            string        `json:"selfPR"`
	CareerObjective   string        `json:"careerObjective"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}

type Education struct {
	SchoolName string `json:"schoolName"`
	Faculty    string `json:"faculty"`
	Degree     string `json:"degree"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	IsCurrent  bool   `json:"isCurrent,omitempty"`
}

type WorkHistory struct {
	CompanyName  string `json:"companyName"`
	Position     string `json:"position"`
	Department   string `json:"department,omitempty"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	IsCurrent    bool   `json:"isCurrent,omitempty"`
	Description  string `json:"description,omitempty"`
	Achievements string `json:"achievements,omitempty"`
	DisplayOrder int    `json:"displayOrder"`
}

// SkillTypeHard is the bucket every chat-extracted skill is tagged with.
const SkillTypeHard = "hard"

// BasicInfo carries the sparse scalar part of a Patch. Nil fields are left untouched.
type BasicInfo struct {
	FullName     *string
	FullNameKana *string
	BirthDate    *string
	Gender       *string
	PostalCode   *string
	Address      *string
	Phone        *string
	Email        *string
}

func (b BasicInfo) Empty() bool {
	return b.FullName == nil && b.FullNameKana == nil && b.BirthDate == nil && b.Gender == nil &&
		b.PostalCode == nil && b.Address == nil && b.Phone == nil && b.Email == nil
}

// Repository — порт хранения черновиков и их коллекций.
type Repository interface {
	GetByUser(ctx context.Context, userID uuid.UUID) (Draft, error)
	// EnsureForUser creates the draft seeded with email unless one already exists.
	EnsureForUser(ctx context.Context, userID uuid.UUID, email string) (uuid.UUID, error)
	SetEducation(ctx context.Context, draftID uuid.UUID, items []Education) error
	SetCertifications(ctx context.Context, draftID uuid.UUID, items []string) error
	DeleteWorkHistories(ctx context.Context, userID uuid.UUID) error
	InsertWorkHistories(ctx context.Context, draftID, userID uuid.UUID, items []WorkHistory) error
	DeleteSkills(ctx context.Context, userID uuid.UUID) error
	InsertSkills(ctx context.Context, draftID, userID uuid.UUID, skills []string, skillType string) error
	SetSelfPR(ctx context.Context, draftID uuid.UUID, text string) error
	SetCareerObjective(ctx context.Context, draftID uuid.UUID, text string) error
	UpdateBasicInfo(ctx context.Context, draftID uuid.UUID, info BasicInfo) error
	// ResetCollections empties every interview-collected field, keeping account scalars.
	ResetCollections(ctx context.Context, userID uuid.UUID) error
}
