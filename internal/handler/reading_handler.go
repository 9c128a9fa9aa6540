package handler

import (
	"ielts-reading/internal/domain"
	"ielts-reading/internal/dto"
	"ielts-reading/internal/logger"
	"ielts-reading/internal/middleware"
	"ielts-reading/internal/service"
	"ielts-reading/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ReadingHandler handles IELTS reading HTTP requests
type ReadingHandler struct {
	service   service.ReadingService
	validator *validation.Validator
}

// NewReadingHandler creates a new ReadingHandler instance
func NewReadingHandler(service service.ReadingService) *ReadingHandler {
	return &ReadingHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// RegisterRoutes mounts the reading endpoints on router
func (h *ReadingHandler) RegisterRoutes(router fiber.Router, vm *middleware.ValidationMiddleware) {
	router.Post("/passages", h.GeneratePassage)
	router.Post("/questions", h.GenerateQuestions)
	router.Post("/score", h.ScoreTest)
	router.Get("/results/:id", h.GetResult)
	router.Get("/attempts", vm.ValidateLimitQuery(), h.ListAttempts)
	router.Get("/distribution/:testType", vm.ValidateTestTypeParam(), h.GetDistribution)
}

// bind parses the JSON body into req and runs struct validation
func (h *ReadingHandler) bind(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		logger.Get().Warn("Failed to parse request body", zap.String("path", c.Path()), zap.Error(err))
		return domain.ValidationErrors{domain.NewInvalidFormatError("body", "malformed JSON")}
	}
	if errs := h.validator.ValidateStruct(req); len(errs) > 0 {
		return errs
	}
	return nil
}

// GeneratePassage godoc
// @Summary Generate a reading passage
// @Description Generates an IELTS reading passage for the given test type, topic and difficulty
// @Tags reading
// @Accept json
// @Produce json
// @Param request body dto.GeneratePassageRequest true "Passage parameters"
// @Success 200 {object} dto.PassageResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /reading/passages [post]
func (h *ReadingHandler) GeneratePassage(c *fiber.Ctx) error {
	var req dto.GeneratePassageRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	variant, errs := h.validator.ValidateTestVariant("testType", req.TestType)
	if len(errs) > 0 {
		return errs
	}

	passage, err := h.service.GeneratePassage(c.UserContext(), variant, req.Topic, req.Difficulty)
	if err != nil {
		return err
	}
	return c.JSON(dto.PassageResponse{Passage: passage})
}

// GenerateQuestions godoc
// @Summary Generate questions for a passage
// @Description Generates a full set of IELTS reading questions following the question type distribution
// @Tags reading
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuestionsRequest true "Passage and test type"
// @Success 200 {object} dto.QuestionsResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /reading/questions [post]
func (h *ReadingHandler) GenerateQuestions(c *fiber.Ctx) error {
	var req dto.GenerateQuestionsRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	variant, errs := h.validator.ValidateTestVariant("testType", req.TestType)
	if len(errs) > 0 {
		return errs
	}

	questions, err := h.service.GenerateQuestions(c.UserContext(), req.Passage, variant, req.QuestionCount)
	if err != nil {
		return err
	}
	return c.JSON(dto.QuestionsResponse{Questions: questions})
}

// ScoreTest godoc
// @Summary Score a completed test
// @Description Evaluates the submitted answers, converts the raw score to a band and returns feedback
// @Tags reading
// @Accept json
// @Produce json
// @Param request body dto.ScoreTestRequest true "Questions, answers and test type"
// @Success 200 {object} domain.TestResult
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /reading/score [post]
func (h *ReadingHandler) ScoreTest(c *fiber.Ctx) error {
	var req dto.ScoreTestRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	variant, errs := h.validator.ValidateTestVariant("testType", req.TestType)
	if len(errs) > 0 {
		return errs
	}

	result, err := h.service.ScoreTest(c.UserContext(), req.Questions, req.UserAnswers, variant)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// GetResult godoc
// @Summary Get a scored result
// @Description Returns a previously scored test result while it is still cached
// @Tags reading
// @Produce json
// @Param id path string true "Result ID"
// @Success 200 {object} domain.TestResult
// @Failure 404 {object} middleware.ErrorResponse
// @Router /reading/results/{id} [get]
func (h *ReadingHandler) GetResult(c *fiber.Ctx) error {
	result, err := h.service.GetResult(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// ListAttempts godoc
// @Summary List recent attempts
// @Description Returns the most recent scoring summaries, newest first
// @Tags reading
// @Produce json
// @Param limit query int false "Maximum number of attempts (1-100)"
// @Success 200 {object} dto.AttemptsResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /reading/attempts [get]
func (h *ReadingHandler) ListAttempts(c *fiber.Ctx) error {
	limit, ok := c.Locals(middleware.ValidatedLimitKey).(int)
	if !ok {
		limit = middleware.DefaultAttemptsLimit
	}

	attempts, err := h.service.ListAttempts(c.UserContext(), limit)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAttemptsResponse(attempts))
}

// GetDistribution godoc
// @Summary Get the question type distribution
// @Description Returns how many questions of each type a full test of the given variant contains
// @Tags reading
// @Produce json
// @Param testType path string true "Test type (academic or general)"
// @Success 200 {object} dto.DistributionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /reading/distribution/{testType} [get]
func (h *ReadingHandler) GetDistribution(c *fiber.Ctx) error {
	variant, ok := c.Locals(middleware.ValidatedTestTypeKey).(domain.TestVariant)
	if !ok {
		var errs domain.ValidationErrors
		if variant, errs = h.validator.ValidateTestVariant("testType", c.Params("testType")); len(errs) > 0 {
			return errs
		}
	}

	rows, err := h.service.Distribution(variant)
	if err != nil {
		return err
	}
	total := 0
	for _, row := range rows {
		total += row.Count
	}
	return c.JSON(dto.DistributionResponse{TestType: string(variant), Total: total, Items: rows})
}
