package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bursa-register/internal/api/dto"
	"github.com/spec-kit/bursa-register/internal/auth"
	"github.com/spec-kit/bursa-register/internal/domain"
	"github.com/spec-kit/bursa-register/internal/service"
	apperrors "github.com/spec-kit/bursa-register/pkg/util/errorutil"
)

// SubmissionsHandler serves the directory's status and submission endpoints.
type SubmissionsHandler struct {
	submissions *service.SubmissionService
}

// NewSubmissionsHandler creates a new submissions handler.
func NewSubmissionsHandler(submissions *service.SubmissionService) *SubmissionsHandler {
	return &SubmissionsHandler{submissions: submissions}
}

// Status lists the caller's submissions and remaining slots.
func (h *SubmissionsHandler) Status(c *fiber.Ctx) error {
	session, err := principal(c)
	if err != nil {
		return err
	}
	report, err := h.submissions.Status(c.UserContext(), session)
	if err != nil {
		return err
	}
	return c.JSON(report)
}

// Create stores a new submission.
func (h *SubmissionsHandler) Create(c *fiber.Ctx) error {
	session, err := principal(c)
	if err != nil {
		return err
	}
	result, err := h.submissions.Submit(c.UserContext(), session, c.Body())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// Get returns one of the caller's submissions.
func (h *SubmissionsHandler) Get(c *fiber.Ctx) error {
	session, err := principal(c)
	if err != nil {
		return err
	}
	record, err := h.submissions.Get(c.UserContext(), session, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSubmissionDetail(record))
}

func principal(c *fiber.Ctx) (*domain.Session, error) {
	session, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("missing principal")
	}
	return session, nil
}
