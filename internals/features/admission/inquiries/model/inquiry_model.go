package model

import (
	"time"

	"github.com/google/uuid"
)

// Pesan dari form kontak. Dibuat sekali, tidak pernah diubah atau dibaca
// balik oleh backend ini.
type InquiryModel struct {
	InquiryID             uuid.UUID `gorm:"column:inquiry_id;type:uuid;primaryKey" json:"inquiry_id"`
	InquiryName           string    `gorm:"column:inquiry_name;type:varchar(120);not null" json:"inquiry_name"`
	InquiryEmail          string    `gorm:"column:inquiry_email;type:varchar(160);not null" json:"inquiry_email"`
	InquiryMessage        string    `gorm:"column:inquiry_message;type:text;not null" json:"inquiry_message"`
	InquirySubmissionDate time.Time `gorm:"column:inquiry_submission_date;not null" json:"inquiry_submission_date"`
}

func (InquiryModel) TableName() string { return "inquiries" }
