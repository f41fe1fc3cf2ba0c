package seeds

import (
	"gorm.io/gorm"

	application "ppdb_backend/internals/seeds/applications"
	inquiry "ppdb_backend/internals/seeds/inquiries"
)

// RunAllSeeds mengisi data demo untuk pengembangan lokal. Seeder idempoten:
// record yang sudah ada dilewati, jadi aman dijalankan berulang.
func RunAllSeeds(db *gorm.DB) {
	application.SeedApplicationsFromJSON(db, "internals/seeds/applications/data_applications.json")
	inquiry.SeedInquiriesFromJSON(db, "internals/seeds/inquiries/data_inquiries.json")
}
