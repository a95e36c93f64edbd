package handlers

import (
	"errors"
	"fmt"

	"github.com/ecosortapp/ecosort/internal/classifier"
	"github.com/ecosortapp/ecosort/internal/services"
	"github.com/ecosortapp/ecosort/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// maxUploadBytes caps a single waste image upload.
const maxUploadBytes = 10 << 20

// ReportHandler handles waste report routes
type ReportHandler struct {
	Service *services.ReportService
}

// CreateReport handles POST /api/reports
// @Summary Submit a waste report
// @Description Upload a waste photo, classify it and record the carbon footprint
// @Tags Reports
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Waste photo"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 502 {object} utils.ErrorResponseStruct
// @Router /reports [post]
func (h *ReportHandler) CreateReport(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return utils.ErrorResponse(c, "Image file is required", fiber.StatusBadRequest, "reports.create.image")
	}
	if fileHeader.Size > maxUploadBytes {
		return utils.ErrorResponse(c, fmt.Sprintf("Image exceeds the %d byte limit", maxUploadBytes),
			fiber.StatusRequestEntityTooLarge, "reports.create.size")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(c, "Could not read uploaded image", fiber.StatusBadRequest, "reports.create.image")
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	report, err := h.Service.CreateReport(c.Context(), userID, file, fileHeader.Size, fileHeader.Filename, contentType)
	if err != nil {
		if errors.Is(err, classifier.ErrClassificationFailed) {
			return utils.ErrorResponse(c, err.Error(), fiber.StatusBadGateway, "reports.create.classify")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "reports.create")
	}

	return utils.SuccessResponse(c, report, fiber.StatusCreated)
}

// ListReports handles GET /api/reports
// @Summary List own waste reports
// @Description List the authenticated user's waste reports, newest first
// @Tags Reports
// @Produce json
// @Success 200 {array} models.WasteReport
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /reports [get]
func (h *ReportHandler) ListReports(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	reports, err := h.Service.ListReports(userID)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "reports.list")
	}

	return utils.SuccessResponse(c, reports, fiber.StatusOK)
}

// DeleteReport handles DELETE /api/reports/:id
// @Summary Delete a waste report
// @Description Delete one of the authenticated user's waste reports and its stored image
// @Tags Reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /reports/{id} [delete]
func (h *ReportHandler) DeleteReport(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	reportID := c.Params("id")
	if err := h.Service.DeleteReport(c.Context(), userID, reportID); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return utils.NotFoundResponse(c, fmt.Sprintf("Report '%s' not found", reportID))
		case errors.Is(err, services.ErrNotOwner):
			return utils.ErrorResponse(c, "You can only delete your own reports", fiber.StatusForbidden, "reports.delete.owner")
		default:
			return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "reports.delete")
		}
	}

	return utils.MutationSuccessResponse(c, fiber.Map{"id": reportID})
}

// GetCarbonStats handles GET /api/reports/carbon
// @Summary Get carbon footprint stats
// @Description Aggregate the authenticated user's carbon impact over time
// @Tags Reports
// @Produce json
// @Success 200 {object} services.CarbonStats
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /reports/carbon [get]
func (h *ReportHandler) GetCarbonStats(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	stats, err := h.Service.GetCarbonStats(userID)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "reports.carbon")
	}

	return utils.SuccessResponse(c, stats, fiber.StatusOK)
}
