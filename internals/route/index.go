package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	applicationRoute "ppdb_backend/internals/features/admission/applications/route"
	"ppdb_backend/internals/features/admission/applications/service"
	inquiryRoute "ppdb_backend/internals/features/admission/inquiries/route"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, submission *service.SubmissionService) {
	BaseRoutes(app, db)

	// ===================== PUBLIC =====================
	// Semua endpoint portal pendaftaran terbuka — tidak ada autentikasi
	// pendaftar maupun staf di backend ini.
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")

	log.Println("[INFO] Mounting Application routes...")
	applicationRoute.ApplicationRoutes(public, db, submission)

	log.Println("[INFO] Mounting Inquiry routes...")
	inquiryRoute.InquiryRoutes(public, db)
}
