package handlers

import (
	"errors"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/bursa-register/internal/api/dto"
	"github.com/spec-kit/bursa-register/internal/service"
	"github.com/spec-kit/bursa-register/internal/wizard"
	apperrors "github.com/spec-kit/bursa-register/pkg/util/errorutil"
)

const (
	logoFormField   = "file"
	photosFormField = "files"
)

// WizardHandler exposes the registration wizard.
type WizardHandler struct {
	wizards   *service.WizardService
	redirects Redirects
	logger    *zap.Logger
}

// NewWizardHandler creates a new wizard handler.
func NewWizardHandler(wizards *service.WizardService, redirects Redirects, logger *zap.Logger) *WizardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WizardHandler{wizards: wizards, redirects: redirects, logger: logger}
}

// Status returns the caller's submissions for the manage view.
func (h *WizardHandler) Status(c *fiber.Ctx) error {
	report, err := h.wizards.Status(c.UserContext())
	if err != nil {
		return h.redirects.mapError(err)
	}
	return c.JSON(dto.NewStatusResponse(report))
}

// Start opens a wizard when the caller may still register a business.
func (h *WizardHandler) Start(c *fiber.Ctx) error {
	view, err := h.wizards.Start(c.UserContext())
	if err != nil {
		return h.redirects.mapError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.WizardResponse{Wizard: view})
}

// Get returns the wizard state.
func (h *WizardHandler) Get(c *fiber.Ctx) error {
	view, err := h.wizards.View(c.UserContext(), c.Params("id"))
	return h.respond(c, view, err)
}

// Discard abandons the wizard.
func (h *WizardHandler) Discard(c *fiber.Ctx) error {
	if err := h.wizards.Discard(c.UserContext(), c.Params("id")); err != nil {
		return h.redirects.mapError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateDraft merges a partial draft.
func (h *WizardHandler) UpdateDraft(c *fiber.Ctx) error {
	var patch wizard.DraftPatch
	if err := c.BodyParser(&patch); err != nil {
		return apperrors.NewValidationError("invalid request body", map[string]any{"reason": err.Error()})
	}
	view, err := h.wizards.Apply(c.UserContext(), c.Params("id"), patch)
	return h.respond(c, view, err)
}

// SetOnline toggles the online business flag.
func (h *WizardHandler) SetOnline(c *fiber.Ctx) error {
	var req dto.OnlineBusinessRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", map[string]any{"reason": err.Error()})
	}
	if req.IsOnlineBusiness == nil {
		return apperrors.NewValidationError("isOnlineBusiness is required", map[string]any{"field": "isOnlineBusiness"})
	}
	view, err := h.wizards.SetOnlineBusiness(c.UserContext(), c.Params("id"), *req.IsOnlineBusiness)
	return h.respond(c, view, err)
}

// Next advances to the following step.
func (h *WizardHandler) Next(c *fiber.Ctx) error {
	view, err := h.wizards.Next(c.UserContext(), c.Params("id"))
	return h.respond(c, view, err)
}

// Back returns to the previous step.
func (h *WizardHandler) Back(c *fiber.Ctx) error {
	view, err := h.wizards.Back(c.UserContext(), c.Params("id"))
	return h.respond(c, view, err)
}

// Submit sends the draft to the directory.
func (h *WizardHandler) Submit(c *fiber.Ctx) error {
	result, err := h.wizards.Submit(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.redirects.mapError(err)
	}
	return c.JSON(dto.SubmitResponse{Redirect: h.redirects.Success, Business: result.Business})
}

// UploadLogo replaces the logo with the uploaded file.
func (h *WizardHandler) UploadLogo(c *fiber.Ctx) error {
	header, err := c.FormFile(logoFormField)
	if err != nil {
		return apperrors.NewValidationError("file is required", map[string]any{"field": "logoUrl"})
	}
	file, err := openMediaFile(header)
	if err != nil {
		return apperrors.NewValidationError("unreadable upload", map[string]any{"field": "logoUrl"})
	}
	defer file.close()

	view, err := h.wizards.UploadLogo(c.UserContext(), c.Params("id"), file.MediaFile)
	return h.respond(c, view, err)
}

// RemoveLogo clears the logo.
func (h *WizardHandler) RemoveLogo(c *fiber.Ctx) error {
	view, err := h.wizards.RemoveLogo(c.UserContext(), c.Params("id"))
	return h.respond(c, view, err)
}

// UploadPhotos appends a batch of gallery photos.
func (h *WizardHandler) UploadPhotos(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return apperrors.NewValidationError("multipart form is required", map[string]any{"field": "photos"})
	}
	headers := form.File[photosFormField]
	if len(headers) == 0 {
		return apperrors.NewValidationError("files are required", map[string]any{"field": "photos"})
	}

	files := make([]wizard.MediaFile, 0, len(headers))
	for _, header := range headers {
		file, err := openMediaFile(header)
		if err != nil {
			return apperrors.NewValidationError("unreadable upload", map[string]any{"field": "photos", "file": header.Filename})
		}
		defer file.close()
		files = append(files, file.MediaFile)
	}

	view, err := h.wizards.UploadPhotos(c.UserContext(), c.Params("id"), files)
	return h.respond(c, view, err)
}

// RemovePhoto deletes one gallery photo by position.
func (h *WizardHandler) RemovePhoto(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return apperrors.NewValidationError("invalid photo index", map[string]any{"index": c.Params("index")})
	}
	view, err := h.wizards.RemovePhoto(c.UserContext(), c.Params("id"), index)
	return h.respond(c, view, err)
}

func (h *WizardHandler) respond(c *fiber.Ctx, view wizard.View, err error) error {
	if err != nil {
		return h.redirects.mapError(err)
	}
	return c.JSON(dto.WizardResponse{Wizard: view})
}

type openedFile struct {
	wizard.MediaFile
	f multipart.File
}

func (o openedFile) close() {
	_ = o.f.Close()
}

func openMediaFile(header *multipart.FileHeader) (openedFile, error) {
	if header == nil {
		return openedFile{}, errors.New("missing file")
	}
	f, err := header.Open()
	if err != nil {
		return openedFile{}, err
	}
	return openedFile{
		MediaFile: wizard.MediaFile{
			Name:        header.Filename,
			ContentType: header.Header.Get(fiber.HeaderContentType),
			Size:        header.Size,
			Body:        f,
		},
		f: f,
	}, nil
}
