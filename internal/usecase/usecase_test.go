package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"ats-backend/internal/domain"
	"ats-backend/internal/usecase"
	"ats-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock Repository
type MockCandidateRepo struct {
	mock.Mock
}

func (m *MockCandidateRepo) Save(ctx context.Context, candidate *domain.Candidate) (*domain.Candidate, error) {
	args := m.Called(ctx, candidate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) FindByEmail(ctx context.Context, email string) (*domain.Candidate, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) FindByID(ctx context.Context, id int64) (*domain.Candidate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockCandidateRepo) FindAll(ctx context.Context) ([]*domain.Candidate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Candidate), args.Error(1)
}

func validRequest() *domain.AddCandidateRequest {
	return &domain.AddCandidateRequest{
		Name:       "John",
		Surname:    "Doe",
		Email:      "John.Doe@Example.com",
		Phone:      "123-456-7890",
		Address:    "123 Main Street",
		Education:  "Computer Science - Bachelor's Degree",
		Experience: "Software Developer - 3 years at Tech Corp",
	}
}

func persistedCandidate(t *testing.T, cvFilePath string) *domain.Candidate {
	t.Helper()
	now := time.Now()
	candidate, err := domain.CandidateFromPersistence(domain.CandidateData{
		ID:         1,
		Name:       "John",
		Surname:    "Doe",
		Email:      "john.doe@example.com",
		Phone:      "1234567890",
		Address:    "123 Main Street",
		Education:  "Computer Science - Bachelor's Degree",
		Experience: "Software Developer - 3 years at Tech Corp",
		CVFilePath: cvFilePath,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	require.NoError(t, err)
	return candidate
}

func TestAddCandidateDuplicatePreCheck(t *testing.T) {
	mockRepo := new(MockCandidateRepo)
	uc := usecase.NewCandidateUsecase(mockRepo, "uploads")

	mockRepo.On("ExistsByEmail", mock.Anything, "John.Doe@Example.com").Return(true, nil)

	resp := uc.AddCandidate(context.Background(), validRequest())

	assert.False(t, resp.Success)
	assert.Equal(t, "A candidate with this email already exists", resp.Message)
	assert.Equal(t, []string{"Email is already registered"}, resp.Errors)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAddCandidateValidationFailures(t *testing.T) {
	cases := []struct {
		name     string
		mutate   func(*domain.AddCandidateRequest)
		expected string
	}{
		{"missing surname", func(r *domain.AddCandidateRequest) { r.Surname = "" }, "surname is required"},
		{"whitespace name", func(r *domain.AddCandidateRequest) { r.Name = "   " }, "Name cannot be empty"},
		{"overlong education", func(r *domain.AddCandidateRequest) { r.Education = strings.Repeat("x", 256) }, "Education cannot exceed 255 characters"},
		{"bad email", func(r *domain.AddCandidateRequest) { r.Email = "nope" }, "Invalid email format"},
		{"short phone", func(r *domain.AddCandidateRequest) { r.Phone = "1234" }, "Phone number must be between 9 and 15 digits"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := new(MockCandidateRepo)
			uc := usecase.NewCandidateUsecase(mockRepo, "uploads")
			mockRepo.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil)

			req := validRequest()
			tc.mutate(req)
			resp := uc.AddCandidate(context.Background(), req)

			assert.False(t, resp.Success)
			assert.Equal(t, "Failed to add candidate", resp.Message)
			assert.Equal(t, []string{tc.expected}, resp.Errors)
			mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

func TestAddCandidateCVRejection(t *testing.T) {
	cases := []struct {
		name     string
		file     *domain.CVFile
		expected string
	}{
		{
			"wrong mimetype",
			&domain.CVFile{OriginalName: "cv.png", Mimetype: "image/png", Size: 1024},
			"Invalid file format. Only PDF and DOCX files are allowed.",
		},
		{
			"oversize file",
			&domain.CVFile{OriginalName: "cv.pdf", Mimetype: "application/pdf", Size: 5*1024*1024 + 1},
			"File size exceeds 5MB limit.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := new(MockCandidateRepo)
			uc := usecase.NewCandidateUsecase(mockRepo, "uploads")
			mockRepo.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil)

			req := validRequest()
			req.CVFile = tc.file
			resp := uc.AddCandidate(context.Background(), req)

			assert.False(t, resp.Success)
			assert.Equal(t, []string{tc.expected}, resp.Errors)
			mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

func TestAddCandidateSuccessWithCV(t *testing.T) {
	mockRepo := new(MockCandidateRepo)
	uc := usecase.NewCandidateUsecase(mockRepo, "uploads")

	mockRepo.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil)

	// The derived path embeds the sanitized normalized email and keeps the
	// original extension; timestamp and random fragment sit in between.
	saved := persistedCandidate(t, "uploads/john_doe_example_com_1714000000000_ab12cd34.pdf")
	mockRepo.On("Save", mock.Anything, mock.MatchedBy(func(c *domain.Candidate) bool {
		return strings.HasPrefix(c.CVFilePath(), "uploads/john_doe_example_com_") &&
			strings.HasSuffix(c.CVFilePath(), ".pdf")
	})).Return(saved, nil)

	req := validRequest()
	req.CVFile = &domain.CVFile{OriginalName: "resume.pdf", Mimetype: "application/pdf", Size: 2048}
	resp := uc.AddCandidate(context.Background(), req)

	require.True(t, resp.Success)
	assert.Equal(t, "Candidate added successfully", resp.Message)
	require.NotNil(t, resp.Candidate)
	assert.Equal(t, int64(1), resp.Candidate.ID)
	assert.Equal(t, "john.doe@example.com", resp.Candidate.Email)
	assert.Equal(t, "1234567890", resp.Candidate.Phone)
	assert.Equal(t, saved.CVFilePath(), resp.Candidate.CVFilePath)
	mockRepo.AssertExpectations(t)
}

func TestAddCandidateWithoutCV(t *testing.T) {
	mockRepo := new(MockCandidateRepo)
	uc := usecase.NewCandidateUsecase(mockRepo, "uploads")

	mockRepo.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil)
	saved := persistedCandidate(t, "")
	mockRepo.On("Save", mock.Anything, mock.MatchedBy(func(c *domain.Candidate) bool {
		return c.CVFilePath() == ""
	})).Return(saved, nil)

	resp := uc.AddCandidate(context.Background(), validRequest())

	require.True(t, resp.Success)
	assert.Empty(t, resp.Candidate.CVFilePath)
}

func TestAddCandidateDuplicateAtSave(t *testing.T) {
	mockRepo := new(MockCandidateRepo)
	uc := usecase.NewCandidateUsecase(mockRepo, "uploads")

	// The pre-check raced: Save hits the unique index instead.
	mockRepo.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil)
	mockRepo.On("Save", mock.Anything, mock.Anything).Return(nil, domain.ErrDuplicateEmail)

	resp := uc.AddCandidate(context.Background(), validRequest())

	assert.False(t, resp.Success)
	assert.Equal(t, "A candidate with this email already exists", resp.Message)
	assert.Equal(t, []string{"Email is already registered"}, resp.Errors)
}

func TestAddCandidateStorageFault(t *testing.T) {
	mockRepo := new(MockCandidateRepo)
	uc := usecase.NewCandidateUsecase(mockRepo, "uploads")

	mockRepo.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, errors.New("connection refused"))

	resp := uc.AddCandidate(context.Background(), validRequest())

	assert.False(t, resp.Success)
	assert.Equal(t, "Failed to add candidate", resp.Message)
	assert.Equal(t, []string{"connection refused"}, resp.Errors)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestGetAllCandidates(t *testing.T) {
	t.Run("Should return the repository result unmodified", func(t *testing.T) {
		mockRepo := new(MockCandidateRepo)
		uc := usecase.NewCandidateUsecase(mockRepo, "uploads")

		expected := []*domain.Candidate{persistedCandidate(t, "")}
		mockRepo.On("FindAll", mock.Anything).Return(expected, nil)

		candidates, err := uc.GetAllCandidates(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, expected, candidates)
	})

	t.Run("Should return an empty collection as-is", func(t *testing.T) {
		mockRepo := new(MockCandidateRepo)
		uc := usecase.NewCandidateUsecase(mockRepo, "uploads")

		mockRepo.On("FindAll", mock.Anything).Return([]*domain.Candidate{}, nil)

		candidates, err := uc.GetAllCandidates(context.Background())
		assert.NoError(t, err)
		assert.Empty(t, candidates)
	})

	t.Run("Should propagate storage faults", func(t *testing.T) {
		mockRepo := new(MockCandidateRepo)
		uc := usecase.NewCandidateUsecase(mockRepo, "uploads")

		storageErr := errors.New("connection refused")
		mockRepo.On("FindAll", mock.Anything).Return(nil, storageErr)

		_, err := uc.GetAllCandidates(context.Background())
		assert.ErrorIs(t, err, storageErr)
	})
}

func TestGetCandidateByID(t *testing.T) {
	t.Run("Should return the candidate when found", func(t *testing.T) {
		mockRepo := new(MockCandidateRepo)
		uc := usecase.NewCandidateUsecase(mockRepo, "uploads")

		expected := persistedCandidate(t, "")
		mockRepo.On("FindByID", mock.Anything, int64(1)).Return(expected, nil)

		candidate, err := uc.GetCandidateByID(context.Background(), 1)
		assert.NoError(t, err)
		assert.Equal(t, expected, candidate)
	})

	t.Run("Should return NotFound for an absent id", func(t *testing.T) {
		mockRepo := new(MockCandidateRepo)
		uc := usecase.NewCandidateUsecase(mockRepo, "uploads")

		mockRepo.On("FindByID", mock.Anything, int64(404)).Return(nil, nil)

		_, err := uc.GetCandidateByID(context.Background(), 404)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})
}
