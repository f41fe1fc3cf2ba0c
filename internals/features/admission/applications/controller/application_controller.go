package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ppdb_backend/internals/constants"
	applicationDTO "ppdb_backend/internals/features/admission/applications/dto"
	applicationModel "ppdb_backend/internals/features/admission/applications/model"
	"ppdb_backend/internals/features/admission/applications/service"
	helper "ppdb_backend/internals/helpers"
)

type ApplicationController struct {
	DB      *gorm.DB
	Service *service.SubmissionService
}

// SUBMIT
// POST /api/public/applications
func (h *ApplicationController) SubmitApplication(c *fiber.Ctx) error {
	var req applicationDTO.SubmitApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(applicationDTO.SubmitApplicationState{
			Success: false,
			Message: "Payload tidak valid.",
		})
	}

	req.Normalize()

	state := h.Service.Submit(c.UserContext(), &req)

	code := fiber.StatusOK
	switch {
	case state.Success:
		code = fiber.StatusOK
	case state.Errors != nil:
		code = fiber.StatusUnprocessableEntity
	default:
		code = fiber.StatusInternalServerError
	}
	return c.Status(code).JSON(state)
}

// STATUS LOOKUP
// GET /api/public/applications/status?id=MG2025XXXXXX
// Selalu 200; flag error ada di body (kontrak form cek status).
func (h *ApplicationController) FetchStatus(c *fiber.Ctx) error {
	applicationID := strings.TrimSpace(c.Query("id"))
	if applicationID == "" {
		return c.JSON(applicationDTO.FetchStatusState{
			Error:   true,
			Message: "ID Aplikasi tidak boleh kosong.",
		})
	}

	var mo applicationModel.ApplicationModel
	err := h.DB.WithContext(c.UserContext()).
		Where("application_id = ?", applicationID).
		First(&mo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(applicationDTO.FetchStatusState{
			Error:   true,
			Message: fmt.Sprintf("Aplikasi dengan ID %q tidak ditemukan.", applicationID),
		})
	}
	if err != nil {
		log.Printf("❌ Gagal mengambil status %s: %v", applicationID, err)
		return c.JSON(applicationDTO.FetchStatusState{
			Error:   true,
			Message: "Terjadi kesalahan saat mengambil status aplikasi. Silakan coba lagi.",
		})
	}

	var personal applicationDTO.PersonalDetails
	if err := json.Unmarshal(mo.ApplicationPersonalDetails, &personal); err != nil {
		log.Printf("⚠️ personal_details %s tidak bisa di-decode: %v", applicationID, err)
	}

	return c.JSON(applicationDTO.FetchStatusState{
		Status:         mo.ApplicationStatus,
		ApplicantName:  personal.FullName,
		SubmissionDate: helper.FormatTanggalID(mo.ApplicationSubmissionDate),
		Message:        "Status aplikasi berhasil diambil.",
	})
}

// STATUS LABELS
// GET /api/public/applications/statuses — mapping label & warna untuk badge.
func (h *ApplicationController) GetStatusLabels(c *fiber.Ctx) error {
	return helper.JsonOK(c, "Daftar status aplikasi", constants.ApplicationStatuses)
}
