package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ppdb_backend/internals/features/admission/applications/controller"
	"ppdb_backend/internals/features/admission/applications/service"
)

// ApplicationRoutes memasang endpoint pendaftaran di group public.
func ApplicationRoutes(r fiber.Router, db *gorm.DB, submission *service.SubmissionService) {
	ctl := &controller.ApplicationController{DB: db, Service: submission}

	applications := r.Group("/applications")
	applications.Post("/", ctl.SubmitApplication)
	applications.Get("/status", ctl.FetchStatus)
	applications.Get("/statuses", ctl.GetStatusLabels)
}
