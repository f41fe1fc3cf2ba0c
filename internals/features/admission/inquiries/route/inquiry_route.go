package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ppdb_backend/internals/features/admission/inquiries/controller"
)

// InquiryRoutes memasang endpoint form kontak di group public.
func InquiryRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &controller.InquiryController{DB: db}

	inquiries := r.Group("/inquiries")
	inquiries.Post("/", ctl.SubmitInquiry)
}
