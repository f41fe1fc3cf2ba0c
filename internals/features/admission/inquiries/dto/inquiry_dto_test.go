package dto

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInquiry() SubmitInquiryRequest {
	return SubmitInquiryRequest{
		Name:    "Rina Wulandari",
		Email:   "rina@example.com",
		Message: "Apakah pendaftaran gelombang kedua masih dibuka?",
	}
}

func TestInquiryValidate_Valid(t *testing.T) {
	r := validInquiry()
	assert.Nil(t, r.Validate())
}

func TestInquiryValidate_FieldErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *SubmitInquiryRequest)
		field   string
		message string
	}{
		{
			name:   "nama terlalu pendek",
			mutate: func(r *SubmitInquiryRequest) { r.Name = "Ri" },
			field:  "name", message: "Nama minimal 3 karakter",
		},
		{
			name:   "email tidak valid",
			mutate: func(r *SubmitInquiryRequest) { r.Email = "bukan-email" },
			field:  "email", message: "Format email tidak valid",
		},
		{
			name:   "pesan terlalu pendek",
			mutate: func(r *SubmitInquiryRequest) { r.Message = "Halo" },
			field:  "message", message: "Pesan minimal 10 karakter",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := validInquiry()
			tc.mutate(&r)

			errs := r.Validate()

			require.NotNil(t, errs)
			assert.Equal(t, tc.message, errs[tc.field])
		})
	}
}

func TestInquiryNormalize(t *testing.T) {
	r := SubmitInquiryRequest{
		Name:    "  Rina Wulandari ",
		Email:   " rina@example.com\n",
		Message: "\tApakah pendaftaran gelombang kedua masih dibuka?  ",
	}

	r.Normalize()

	assert.Equal(t, "Rina Wulandari", r.Name)
	assert.Equal(t, "rina@example.com", r.Email)
	assert.Equal(t, "Apakah pendaftaran gelombang kedua masih dibuka?", r.Message)
}

func TestInquiryToModel(t *testing.T) {
	r := validInquiry()
	submittedAt := time.Date(2026, time.August, 31, 11, 0, 0, 0, time.UTC)

	mo := r.ToModel(submittedAt)

	assert.NotEqual(t, uuid.Nil, mo.InquiryID)
	assert.Equal(t, "Rina Wulandari", mo.InquiryName)
	assert.Equal(t, "rina@example.com", mo.InquiryEmail)
	assert.Equal(t, submittedAt, mo.InquirySubmissionDate)
}
