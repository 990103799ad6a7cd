package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ats-backend/internal/domain"
	"ats-backend/pkg/apperror"

	"github.com/google/uuid"
)

const maxCVSize = 5 * 1024 * 1024 // 5MB

var allowedCVMimetypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

type candidateUsecase struct {
	repo      domain.CandidateRepository
	uploadDir string
}

func NewCandidateUsecase(repo domain.CandidateRepository, uploadDir string) domain.CandidateUsecase {
	return &candidateUsecase{
		repo:      repo,
		uploadDir: uploadDir,
	}
}

// AddCandidate runs the full submission pipeline: duplicate pre-check,
// entity construction, CV validation and path derivation, save. It never
// returns an error; every failure is folded into the structured response.
func (u *candidateUsecase) AddCandidate(ctx context.Context, req *domain.AddCandidateRequest) *domain.AddCandidateResponse {
	// Latency optimization and better error message only. The unique index
	// on candidates.email is the real arbiter; Save handles the race.
	exists, err := u.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return failure("Failed to add candidate", err.Error())
	}
	if exists {
		return duplicateEmailResponse()
	}

	candidate, err := domain.NewCandidate(domain.CandidateData{
		Name:       req.Name,
		Surname:    req.Surname,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		Education:  req.Education,
		Experience: req.Experience,
	})
	if err != nil {
		return failure("Failed to add candidate", err.Error())
	}

	if req.CVFile != nil {
		if err := validateCVFile(req.CVFile); err != nil {
			return failure("Failed to add candidate", err.Error())
		}
		candidate.SetCVFilePath(u.buildCVFilePath(req.CVFile, candidate.Email()))
	}

	saved, err := u.repo.Save(ctx, candidate)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return duplicateEmailResponse()
		}
		return failure("Failed to add candidate", err.Error())
	}

	return &domain.AddCandidateResponse{
		Success:   true,
		Message:   "Candidate added successfully",
		Candidate: saved.Payload(),
	}
}

// GetCandidateByID returns a single candidate or apperror.NotFound.
func (u *candidateUsecase) GetCandidateByID(ctx context.Context, id int64) (*domain.Candidate, error) {
	candidate, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if candidate == nil {
		return nil, apperror.NotFound("Candidate not found")
	}
	return candidate, nil
}

// GetAllCandidates is a thin read-through: whatever FindAll returns, in the
// order the repository provides, errors included.
func (u *candidateUsecase) GetAllCandidates(ctx context.Context) ([]*domain.Candidate, error) {
	return u.repo.FindAll(ctx)
}

func validateCVFile(file *domain.CVFile) error {
	if !allowedCVMimetypes[file.Mimetype] {
		return domain.NewValidationError("Invalid file format. Only PDF and DOCX files are allowed.")
	}
	if file.Size > maxCVSize {
		return domain.NewValidationError("File size exceeds 5MB limit.")
	}
	return nil
}

// buildCVFilePath derives a collision-safe storage path from the normalized
// email. The uuid fragment keeps simultaneous submissions within the same
// millisecond from clashing.
func (u *candidateUsecase) buildCVFilePath(file *domain.CVFile, email string) string {
	sanitized := sanitizeForFilename(email)
	ext := fileExtension(file.OriginalName)
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("%s/%s_%d_%s.%s", u.uploadDir, sanitized, time.Now().UnixMilli(), suffix, ext)
}

func sanitizeForFilename(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

func fileExtension(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 && i < len(name)-1 {
		return name[i+1:]
	}
	return ""
}

func failure(message string, errs ...string) *domain.AddCandidateResponse {
	return &domain.AddCandidateResponse{
		Success: false,
		Message: message,
		Errors:  errs,
	}
}

func duplicateEmailResponse() *domain.AddCandidateResponse {
	return failure("A candidate with this email already exists", "Email is already registered")
}
