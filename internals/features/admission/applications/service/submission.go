package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	dto "ppdb_backend/internals/features/admission/applications/dto"
	m "ppdb_backend/internals/features/admission/applications/model"
	helper "ppdb_backend/internals/helpers"
)

// SubmissionService adalah inti pipeline pendaftaran:
// validasi → simpan record utama → review AI (best-effort) →
// mirror spreadsheet (fire-and-forget) → balas.
//
// Hanya validasi, syarat dokumen, dan kegagalan tulis record utama yang
// mengubah hasil ke pendaftar; semua yang di hilir write utama best-effort.
type SubmissionService struct {
	DB               *gorm.DB
	Reviewer         ApplicationReviewer
	Mirror           SheetAppender
	RequireDocuments bool

	// hook supaya test bisa mengamati dispatch mirror tanpa goroutine liar
	mirrorDispatch func(fn func())
}

func NewSubmissionService(db *gorm.DB, reviewer ApplicationReviewer, mirror SheetAppender, requireDocuments bool) *SubmissionService {
	return &SubmissionService{
		DB:               db,
		Reviewer:         reviewer,
		Mirror:           mirror,
		RequireDocuments: requireDocuments,
		mirrorDispatch:   func(fn func()) { go fn() },
	}
}

func (s *SubmissionService) Submit(ctx context.Context, req *dto.SubmitApplicationRequest) dto.SubmitApplicationState {
	now := time.Now()

	// 1️⃣ Validasi — gagal di sini berarti tidak ada side effect sama sekali.
	if errsMap := req.Validate(now); errsMap != nil {
		return dto.SubmitApplicationState{
			Success: false,
			Message: "Validasi gagal. Harap periksa kembali isian formulir Anda.",
			Errors:  errsMap,
		}
	}
	if s.RequireDocuments && len(req.Documents) == 0 {
		return dto.SubmitApplicationState{
			Success: false,
			Message: "Validasi gagal. Harap periksa kembali isian formulir Anda.",
			Errors: map[string]map[string]string{
				"documents": {"documents": "Dokumen pendukung wajib diunggah"},
			},
		}
	}

	// 2️⃣ Nomor pendaftaran + satu timestamp untuk DB dan spreadsheet.
	applicationID := helper.GenerateApplicationID()

	mo, err := req.ToModel(applicationID, now)
	if err != nil {
		log.Printf("❌ Gagal menyusun record pendaftaran %s: %v", applicationID, err)
		return dto.SubmitApplicationState{
			Success: false,
			Message: "Gagal mengirim pendaftaran. Silakan coba lagi.",
		}
	}

	// 3️⃣ Simpan record utama — satu-satunya jalur fatal setelah validasi.
	if err := s.DB.WithContext(ctx).Create(&mo).Error; err != nil {
		perr := &PersistenceError{Op: "simpan pendaftaran", Err: err}
		log.Printf("❌ %s: %v", applicationID, perr)
		return dto.SubmitApplicationState{
			Success: false,
			Message: "Gagal mengirim pendaftaran. Silakan coba lagi.",
		}
	}

	// 4️⃣ Review AI — tidak pernah menggagalkan submission.
	review, reviewErr := s.runReview(ctx, req)
	s.mergeReviewNotes(ctx, applicationID, review, reviewErr)

	// 5️⃣ Mirror spreadsheet — fire-and-forget, error hanya dicatat.
	row := SheetRow{
		ApplicationID:      applicationID,
		SubmissionTime:     now,
		PersonalDetails:    req.PersonalDetails,
		AcademicHistory:    req.AcademicHistory,
		ParentGuardianInfo: req.ParentGuardianInfo,
		Status:             mo.ApplicationStatus,
	}
	if reviewErr != nil {
		attention := true
		row.AISummary = "AI Review Failed"
		row.AINeedsAttention = &attention
	} else {
		row.AISummary = review.Summary
		row.AINeedsAttention = &review.NeedsHumanAttention
	}
	if s.Mirror != nil {
		s.mirrorDispatch(func() {
			if err := s.Mirror.Append(context.Background(), row); err != nil {
				log.Printf("⚠️ Append spreadsheet gagal (non-blocking) %s: %v", row.ApplicationID, err)
			}
		})
	}

	// 6️⃣ Sukses.
	return dto.SubmitApplicationState{
		Success:       true,
		ApplicationID: applicationID,
		Message:       "Pendaftaran berhasil!",
	}
}

// runReview meratakan tiga section jadi satu map field→nilai, menormalkan
// gambar dokumen, lalu memanggil reviewer.
func (s *SubmissionService) runReview(ctx context.Context, req *dto.SubmitApplicationRequest) (*ReviewOutput, error) {
	if s.Reviewer == nil {
		return nil, &ReviewError{Err: errors.New("reviewer AI tidak dikonfigurasi")}
	}

	docs := make([]ReviewDocument, 0, len(req.Documents))
	for _, d := range req.Documents {
		data, mime, err := d.Decode()
		if err != nil {
			log.Printf("⚠️ Dokumen %q dilewati dari review: %v", d.Name, err)
			continue
		}
		data, mime = helper.NormalizeDocumentImage(data, mime)
		docs = append(docs, ReviewDocument{Data: data, MIMEType: mime})
	}

	out, err := s.Reviewer.Review(ctx, req.FlattenForReview(), docs)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, &ReviewError{Err: errors.New("reviewer mengembalikan verdict kosong")}
	}
	return out, nil
}

// mergeReviewNotes menulis hasil review (verdict atau record error) lewat
// update kedua yang terpisah. Kegagalan di sini ditelan: hasil ke pendaftar
// tidak boleh terpengaruh write sekunder.
func (s *SubmissionService) mergeReviewNotes(ctx context.Context, applicationID string, review *ReviewOutput, reviewErr error) {
	var notes []byte
	if reviewErr != nil {
		log.Printf("⚠️ Review AI gagal untuk %s: %v", applicationID, reviewErr)
		notes, _ = json.Marshal(map[string]string{
			"error":   "AI review failed",
			"details": reviewErr.Error(),
		})
	} else {
		log.Printf("✅ Review AI untuk %s: summary=%q attention=%v", applicationID, review.Summary, review.NeedsHumanAttention)
		var err error
		notes, err = json.Marshal(review)
		if err != nil {
			log.Printf("⚠️ Serialisasi verdict %s gagal: %v", applicationID, err)
			return
		}
	}

	if err := s.DB.WithContext(ctx).
		Model(&m.ApplicationModel{}).
		Where("application_id = ?", applicationID).
		Update("application_ai_review_notes", string(notes)).Error; err != nil {
		log.Printf("⚠️ Gagal menyimpan catatan review %s: %v", applicationID, err)
	}
}
