package application

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"gorm.io/gorm"

	dto "ppdb_backend/internals/features/admission/applications/dto"
	"ppdb_backend/internals/features/admission/applications/model"
	helper "ppdb_backend/internals/helpers"
)

// ApplicationSeed mengikuti bentuk form submit, plus id & status eksplisit
// supaya data demo punya sebaran status untuk dicoba di form cek status.
type ApplicationSeed struct {
	ApplicationID      string                 `json:"applicationId"`
	Status             string                 `json:"status"`
	PersonalDetails    dto.PersonalDetails    `json:"personalDetails"`
	AcademicHistory    dto.AcademicHistory    `json:"academicHistory"`
	ParentGuardianInfo dto.ParentGuardianInfo `json:"parentGuardianInfo"`
}

func SeedApplicationsFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Gagal membaca file JSON: %v", err)
	}

	var seeds []ApplicationSeed
	if err := json.Unmarshal(file, &seeds); err != nil {
		log.Fatalf("❌ Gagal decode JSON: %v", err)
	}

	for _, s := range seeds {
		if !helper.ApplicationIDPattern.MatchString(s.ApplicationID) {
			log.Printf("❌ ID %q tidak valid, lewati...", s.ApplicationID)
			continue
		}

		var existing model.ApplicationModel
		if err := db.Where("application_id = ?", s.ApplicationID).First(&existing).Error; err == nil {
			log.Printf("ℹ️ Pendaftaran %s sudah ada, lewati...", s.ApplicationID)
			continue
		}

		req := dto.SubmitApplicationRequest{
			PersonalDetails:    s.PersonalDetails,
			AcademicHistory:    s.AcademicHistory,
			ParentGuardianInfo: s.ParentGuardianInfo,
		}
		mo, err := req.ToModel(s.ApplicationID, time.Now())
		if err != nil {
			log.Printf("❌ Gagal menyusun record %s: %v", s.ApplicationID, err)
			continue
		}
		if s.Status != "" {
			mo.ApplicationStatus = s.Status
		}

		if err := db.Create(&mo).Error; err != nil {
			log.Printf("❌ Gagal insert pendaftaran %s: %v", s.ApplicationID, err)
		} else {
			log.Printf("✅ Berhasil insert pendaftaran %s (%s)", mo.ApplicationID, s.PersonalDetails.FullName)
		}
	}
}
