package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	inquiryDTO "ppdb_backend/internals/features/admission/inquiries/dto"
)

type InquiryController struct {
	DB *gorm.DB
}

// SUBMIT
// POST /api/public/inquiries
func (h *InquiryController) SubmitInquiry(c *fiber.Ctx) error {
	var req inquiryDTO.SubmitInquiryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(inquiryDTO.SubmitInquiryState{
			Success: false,
			Message: "Payload tidak valid.",
		})
	}

	req.Normalize()

	if errs := req.Validate(); errs != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(inquiryDTO.SubmitInquiryState{
			Success: false,
			Message: "Validasi gagal. Harap periksa kembali isian Anda.",
			Errors:  errs,
		})
	}

	mo := req.ToModel(time.Now())
	if err := h.DB.WithContext(c.UserContext()).Create(&mo).Error; err != nil {
		log.Printf("❌ Gagal menyimpan pesan kontak: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(inquiryDTO.SubmitInquiryState{
			Success: false,
			Message: "Gagal mengirim pesan. Silakan coba lagi.",
		})
	}

	return c.JSON(inquiryDTO.SubmitInquiryState{
		Success: true,
		Message: "Pesan berhasil dikirim!",
	})
}
