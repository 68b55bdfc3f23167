package handlers

import (
	"sportify-backend/internal/middleware"
	"sportify-backend/internal/utils"
	"sportify-backend/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// UploadAadhar streams an identity document to object storage and returns its public URL
// @Summary Upload Aadhar document
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Document image or PDF"
// @Success 200 {object} utils.Response
// @Failure 400 {object} utils.ErrorResponse
// @Router /upload/aadhar [post]
func (h *Handler) UploadAadhar(c *fiber.Ctx) error {
	caller, err := middleware.GetIdentity(c)
	if err != nil {
		return handleServiceError(c, err)
	}

	file, err := c.FormFile("file")
	if err != nil || file == nil {
		return utils.Error(c, "No file uploaded", fiber.StatusBadRequest)
	}

	if err := utils.ValidateDocumentFile(file, h.cfg.MaxUploadSize); err != nil {
		return utils.Error(c, err.Error(), fiber.StatusBadRequest)
	}

	src, err := file.Open()
	if err != nil {
		return utils.Error(c, "Failed to read uploaded file", fiber.StatusBadRequest)
	}
	defer src.Close()

	contentType := file.Header.Get(fiber.HeaderContentType)
	key := utils.ObjectKey(h.cfg.UploadFolder, file.Filename, contentType)

	result, err := h.uploader.Upload(c.UserContext(), key, contentType, file.Size, src)
	if err != nil {
		logger.WithComponent("upload").
			WithError(err).
			WithField("user_id", caller.UserID).
			Error("document upload failed")
		return utils.Error(c, "Failed to upload file", fiber.StatusInternalServerError)
	}

	return utils.Success(c, result, "File uploaded successfully")
}
