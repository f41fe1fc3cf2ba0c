package inquiry

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"gorm.io/gorm"

	dto "ppdb_backend/internals/features/admission/inquiries/dto"
	"ppdb_backend/internals/features/admission/inquiries/model"
)

type InquirySeed struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func SeedInquiriesFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Gagal membaca file JSON: %v", err)
	}

	var seeds []InquirySeed
	if err := json.Unmarshal(file, &seeds); err != nil {
		log.Fatalf("❌ Gagal decode JSON: %v", err)
	}

	for _, s := range seeds {
		var existing model.InquiryModel
		if err := db.Where("inquiry_email = ?", s.Email).First(&existing).Error; err == nil {
			log.Printf("ℹ️ Pesan dari %s sudah ada, lewati...", s.Email)
			continue
		}

		req := dto.SubmitInquiryRequest{Name: s.Name, Email: s.Email, Message: s.Message}
		mo := req.ToModel(time.Now())

		if err := db.Create(&mo).Error; err != nil {
			log.Printf("❌ Gagal insert pesan dari %s: %v", s.Email, err)
		} else {
			log.Printf("✅ Berhasil insert pesan dari %s", mo.InquiryEmail)
		}
	}
}
