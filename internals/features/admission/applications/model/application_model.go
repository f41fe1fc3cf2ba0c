package model

import (
	"time"

	"gorm.io/datatypes"
)

// NOTE:
// - application_id adalah nomor pendaftaran (MG<tahun><6 acak>), primary key,
//   di-generate sekali sebelum insert dan tidak pernah di-generate ulang.
// - tiga section form disimpan apa adanya sebagai JSONB (hasil validasi).
// - application_documents hanya deskriptor (nama, tipe, ukuran) — isi file
//   tidak pernah dipersist, hanya diteruskan ke reviewer AI.
// - application_ai_review_notes diisi lewat update kedua yang terpisah dan
//   tidak boleh menggagalkan submission.
type ApplicationModel struct {
	ApplicationID string `gorm:"column:application_id;type:varchar(12);primaryKey" json:"application_id"`

	ApplicationPersonalDetails    datatypes.JSON `gorm:"column:application_personal_details;type:jsonb;not null" json:"application_personal_details"`
	ApplicationAcademicHistory    datatypes.JSON `gorm:"column:application_academic_history;type:jsonb;not null" json:"application_academic_history"`
	ApplicationParentGuardianInfo datatypes.JSON `gorm:"column:application_parent_guardian_info;type:jsonb;not null" json:"application_parent_guardian_info"`

	ApplicationDocuments datatypes.JSON `gorm:"column:application_documents;type:jsonb" json:"application_documents,omitempty"`

	ApplicationStatus         string    `gorm:"column:application_status;type:varchar(32);not null" json:"application_status"`
	ApplicationSubmissionDate time.Time `gorm:"column:application_submission_date;not null" json:"application_submission_date"`

	ApplicationAIReviewNotes *string `gorm:"column:application_ai_review_notes;type:text" json:"application_ai_review_notes,omitempty"`
}

func (ApplicationModel) TableName() string { return "applications" }
