package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const maxFieldLength = 255

// CandidateData is the raw, flat shape a Candidate is built from and
// persisted as. ID and timestamps are assigned by the repository and are
// opaque to the entity.
type CandidateData struct {
	ID         int64
	Name       string
	Surname    string
	Email      string
	Phone      string
	Address    string
	Education  string
	Experience string
	CVFilePath string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Candidate is one job-applicant submission. All business fields are
// validated at construction; there is no partially-valid instance. The CV
// file path is the single post-construction mutation, attached before the
// entity is persisted.
type Candidate struct {
	id         int64
	name       string
	surname    string
	email      Email
	phone      PhoneNumber
	address    string
	education  string
	experience string
	cvFilePath string
	createdAt  time.Time
	updatedAt  time.Time
}

// NewCandidate validates data and builds a Candidate. Required fields are
// checked in fixed order (name, surname, email, phone, address, education,
// experience) and the first offender is reported.
func NewCandidate(data CandidateData) (*Candidate, error) {
	required := []struct {
		value string
		name  string
	}{
		{data.Name, "name"},
		{data.Surname, "surname"},
		{data.Email, "email"},
		{data.Phone, "phone"},
		{data.Address, "address"},
		{data.Education, "education"},
		{data.Experience, "experience"},
	}
	for _, f := range required {
		if f.value == "" {
			return nil, NewValidationError(f.name + " is required")
		}
	}

	name, err := validateTextField(data.Name, "Name")
	if err != nil {
		return nil, err
	}
	surname, err := validateTextField(data.Surname, "Surname")
	if err != nil {
		return nil, err
	}
	email, err := NewEmail(data.Email)
	if err != nil {
		return nil, err
	}
	phone, err := NewPhoneNumber(data.Phone)
	if err != nil {
		return nil, err
	}
	address, err := validateTextField(data.Address, "Address")
	if err != nil {
		return nil, err
	}
	education, err := validateTextField(data.Education, "Education")
	if err != nil {
		return nil, err
	}
	experience, err := validateTextField(data.Experience, "Experience")
	if err != nil {
		return nil, err
	}

	return &Candidate{
		id:         data.ID,
		name:       name,
		surname:    surname,
		email:      email,
		phone:      phone,
		address:    address,
		education:  education,
		experience: experience,
		cvFilePath: data.CVFilePath,
		createdAt:  data.CreatedAt,
		updatedAt:  data.UpdatedAt,
	}, nil
}

// CandidateFromPersistence rebuilds a Candidate from stored data through the
// full constructor validation path. Storage corruption or schema drift
// surfaces here as a construction failure instead of leaking out silently.
func CandidateFromPersistence(data CandidateData) (*Candidate, error) {
	return NewCandidate(data)
}

func validateTextField(value, label string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", NewValidationError(label + " cannot be empty")
	}
	if len([]rune(trimmed)) > maxFieldLength {
		return "", NewValidationError(label + " cannot exceed 255 characters")
	}
	return trimmed, nil
}

func (c *Candidate) ID() int64            { return c.id }
func (c *Candidate) Name() string         { return c.name }
func (c *Candidate) Surname() string      { return c.surname }
func (c *Candidate) Email() string        { return c.email.Value() }
func (c *Candidate) Phone() string        { return c.phone.Value() }
func (c *Candidate) Address() string      { return c.address }
func (c *Candidate) Education() string    { return c.education }
func (c *Candidate) Experience() string   { return c.experience }
func (c *Candidate) CVFilePath() string   { return c.cvFilePath }
func (c *Candidate) CreatedAt() time.Time { return c.createdAt }
func (c *Candidate) UpdatedAt() time.Time { return c.updatedAt }

func (c *Candidate) FullName() string {
	return fmt.Sprintf("%s %s", c.name, c.surname)
}

// SetCVFilePath attaches the derived CV storage path. The path format is the
// caller's responsibility; the entity stores it as-is.
func (c *Candidate) SetCVFilePath(path string) {
	c.cvFilePath = path
}

// ToPersistence flattens the entity for the repository, unwrapping the
// email and phone value objects into primitives.
func (c *Candidate) ToPersistence() CandidateData {
	return CandidateData{
		ID:         c.id,
		Name:       c.name,
		Surname:    c.surname,
		Email:      c.email.Value(),
		Phone:      c.phone.Value(),
		Address:    c.address,
		Education:  c.education,
		Experience: c.experience,
		CVFilePath: c.cvFilePath,
		CreatedAt:  c.createdAt,
		UpdatedAt:  c.updatedAt,
	}
}

// CandidatePayload is the public API view of a persisted candidate.
type CandidatePayload struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	Education  string `json:"education"`
	Experience string `json:"experience"`
	CVFilePath string `json:"cvFilePath,omitempty"`
}

func (c *Candidate) Payload() *CandidatePayload {
	return &CandidatePayload{
		ID:         c.id,
		Name:       c.name,
		Surname:    c.surname,
		Email:      c.email.Value(),
		Phone:      c.phone.Value(),
		Address:    c.address,
		Education:  c.education,
		Experience: c.experience,
		CVFilePath: c.cvFilePath,
	}
}

// CVFile describes an uploaded CV as seen by the usecase: the transport
// layer hands over metadata only, the bytes are written by the handler once
// the submission is accepted.
type CVFile struct {
	OriginalName string
	Mimetype     string
	Size         int64
}

// AddCandidateRequest carries one submission from the HTTP layer.
type AddCandidateRequest struct {
	Name       string
	Surname    string
	Email      string
	Phone      string
	Address    string
	Education  string
	Experience string
	CVFile     *CVFile
}

// AddCandidateResponse is the structured outcome of a submission. Every
// failure inside the usecase is converted into this shape; no error escapes.
type AddCandidateResponse struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	Candidate *CandidatePayload `json:"candidate,omitempty"`
	Errors    []string          `json:"errors,omitempty"`
}

type CandidateRepository interface {
	// Save persists the candidate and returns it with identity and
	// timestamps populated. A unique-email violation yields ErrDuplicateEmail
	// even when ExistsByEmail was not called or raced.
	Save(ctx context.Context, candidate *Candidate) (*Candidate, error)
	FindByEmail(ctx context.Context, email string) (*Candidate, error)
	FindByID(ctx context.Context, id int64) (*Candidate, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindAll(ctx context.Context) ([]*Candidate, error)
}

type CandidateUsecase interface {
	AddCandidate(ctx context.Context, req *AddCandidateRequest) *AddCandidateResponse
	GetCandidateByID(ctx context.Context, id int64) (*Candidate, error)
	GetAllCandidates(ctx context.Context) ([]*Candidate, error)
}
