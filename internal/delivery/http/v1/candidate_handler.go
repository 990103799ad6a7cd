package v1

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"ats-backend/internal/delivery/http/response"
	"ats-backend/internal/domain"
	"ats-backend/pkg/apperror"
	"ats-backend/pkg/logger"
	"ats-backend/pkg/security"
	"ats-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

type CandidateHandler struct {
	candidateUC domain.CandidateUsecase
}

// NewCandidateHandler registers the candidate routes (public, no auth).
// The submission endpoint carries its own stricter rate limiter because it
// accepts file uploads.
func NewCandidateHandler(public *gin.RouterGroup, candidateUC domain.CandidateUsecase, submitLimiter gin.HandlerFunc) {
	handler := &CandidateHandler{
		candidateUC: candidateUC,
	}

	candidates := public.Group("/candidates")
	{
		candidates.POST("", submitLimiter, handler.Create)
		candidates.GET("", handler.GetAll)
		candidates.GET("/autocomplete", handler.Autocomplete)
		candidates.GET("/:id", handler.GetByID)
	}
}

// addCandidateForm is the multipart form shape of one submission. The
// binding check mirrors the domain's required-field rule so obviously broken
// requests are rejected before touching the repository.
type addCandidateForm struct {
	Name       string `form:"name" binding:"required"`
	Surname    string `form:"surname" binding:"required"`
	Email      string `form:"email" binding:"required"`
	Phone      string `form:"phone" binding:"required"`
	Address    string `form:"address" binding:"required"`
	Education  string `form:"education" binding:"required"`
	Experience string `form:"experience" binding:"required"`
}

// Create godoc
// @Summary      Submit a candidate
// @Description  Add a new job candidate with an optional CV file (PDF, DOC or DOCX, max 5MB).
// @Tags         candidates
// @Accept       multipart/form-data
// @Produce      json
// @Param        name        formData  string  true   "First name"
// @Param        surname     formData  string  true   "Surname"
// @Param        email       formData  string  true   "Email address (unique)"
// @Param        phone       formData  string  true   "Phone number"
// @Param        address     formData  string  true   "Address"
// @Param        education   formData  string  true   "Education"
// @Param        experience  formData  string  true   "Experience"
// @Param        cvFile      formData  file    false  "CV file"
// @Success      201  {object}  domain.AddCandidateResponse
// @Failure      400  {object}  domain.AddCandidateResponse
// @Router       /candidates [post]
func (h *CandidateHandler) Create(c *gin.Context) {
	var form addCandidateForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, &domain.AddCandidateResponse{
			Success: false,
			Message: "Validation failed",
			Errors:  validation.FormatValidationErrors(err),
		})
		return
	}

	req := &domain.AddCandidateRequest{
		Name:       form.Name,
		Surname:    form.Surname,
		Email:      form.Email,
		Phone:      form.Phone,
		Address:    form.Address,
		Education:  form.Education,
		Experience: form.Experience,
	}

	fileHeader, err := c.FormFile("cvFile")
	switch {
	case err == http.ErrMissingFile || err == http.ErrNotMultipart:
		fileHeader = nil
	case err != nil:
		c.JSON(http.StatusBadRequest, &domain.AddCandidateResponse{
			Success: false,
			Message: "Failed to add candidate",
			Errors:  []string{"Could not read uploaded file"},
		})
		return
	default:
		// Content check beyond the declared mimetype: a renamed binary is
		// rejected here even though the usecase only sees the metadata.
		if err := validateCVContent(fileHeader); err != nil {
			c.JSON(http.StatusBadRequest, &domain.AddCandidateResponse{
				Success: false,
				Message: "Failed to add candidate",
				Errors:  []string{err.Error()},
			})
			return
		}
		req.CVFile = &domain.CVFile{
			OriginalName: fileHeader.Filename,
			Mimetype:     fileHeader.Header.Get("Content-Type"),
			Size:         fileHeader.Size,
		}
	}

	resp := h.candidateUC.AddCandidate(c.Request.Context(), req)
	if !resp.Success {
		c.JSON(http.StatusBadRequest, resp)
		return
	}

	if fileHeader != nil && resp.Candidate.CVFilePath != "" {
		if err := c.SaveUploadedFile(fileHeader, resp.Candidate.CVFilePath); err != nil {
			logger.Log.Error("Failed to store uploaded CV", "path", resp.Candidate.CVFilePath, "error", err)
			response.Error(c, http.StatusInternalServerError, "Failed to store uploaded CV", nil)
			return
		}
	}

	c.JSON(http.StatusCreated, resp)
}

func validateCVContent(fileHeader *multipart.FileHeader) error {
	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	head := make([]byte, 512)
	n, _ := file.Read(head)
	return security.ValidateCVContent(fileHeader.Filename, head[:n])
}

// GetAll godoc
// @Summary      List candidates
// @Description  Return every stored candidate in insertion order.
// @Tags         candidates
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.CandidatePayload}
// @Failure      500  {object}  response.Response
// @Router       /candidates [get]
func (h *CandidateHandler) GetAll(c *gin.Context) {
	candidates, err := h.candidateUC.GetAllCandidates(c.Request.Context())
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	payloads := make([]*domain.CandidatePayload, 0, len(candidates))
	for _, candidate := range candidates {
		payloads = append(payloads, candidate.Payload())
	}
	response.Success(c, http.StatusOK, "Candidates retrieved successfully", payloads)
}

// GetByID godoc
// @Summary      Get a candidate
// @Tags         candidates
// @Produce      json
// @Param        id   path      int  true  "Candidate ID"
// @Success      200  {object}  response.Response{data=domain.CandidatePayload}
// @Failure      404  {object}  response.Response
// @Router       /candidates/{id} [get]
func (h *CandidateHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid candidate id"))
		return
	}

	candidate, err := h.candidateUC.GetCandidateByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidate retrieved successfully", candidate.Payload())
}

// Static suggestion pools for the submission form. Replacing these with
// real aggregation queries is deliberately out of scope for now.
var autocompleteSuggestions = map[string][]string{
	"education": {
		"Computer Science - Bachelor's Degree",
		"Software Engineering - Master's Degree",
		"Information Technology - Bachelor's Degree",
		"Business Administration - MBA",
		"Marketing - Bachelor's Degree",
		"Data Science - Master's Degree",
		"Cybersecurity - Bachelor's Degree",
		"Artificial Intelligence - PhD",
		"Web Development - Certificate",
		"Mobile Development - Certificate",
	},
	"experience": {
		"Software Developer - 3 years at Tech Corp",
		"Frontend Developer - 2 years at StartupXYZ",
		"Full Stack Engineer - 5 years at Enterprise Inc",
		"Project Manager - 4 years at Consulting Ltd",
		"UX/UI Designer - 2 years at Design Studio",
		"DevOps Engineer - 3 years at CloudTech",
		"Data Analyst - 2 years at Analytics Co",
		"QA Engineer - 4 years at TestLab",
		"Product Manager - 5 years at Product Inc",
		"Technical Lead - 6 years at Development Corp",
	},
}

// Autocomplete godoc
// @Summary      Form field suggestions
// @Description  Suggest education or experience values matching the query (min 2 characters).
// @Tags         candidates
// @Produce      json
// @Param        field  query     string  true  "Field name (education or experience)"
// @Param        query  query     string  true  "Search text"
// @Success      200    {object}  map[string][]string
// @Router       /candidates/autocomplete [get]
func (h *CandidateHandler) Autocomplete(c *gin.Context) {
	field := c.Query("field")
	query := c.Query("query")

	suggestions := []string{}
	if field != "" && len(query) >= 2 {
		lowered := strings.ToLower(query)
		for _, suggestion := range autocompleteSuggestions[field] {
			if strings.Contains(strings.ToLower(suggestion), lowered) {
				suggestions = append(suggestions, suggestion)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}
