package dto

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	m "ppdb_backend/internals/features/admission/inquiries/model"
)

type SubmitInquiryRequest struct {
	Name    string `json:"name" validate:"required,min=3"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,min=10"`
}

type SubmitInquiryState struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (r *SubmitInquiryRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Message = strings.TrimSpace(r.Message)
}

// Validate mengembalikan map field→pesan (nil kalau valid).
func (r *SubmitInquiryRequest) Validate() map[string]string {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	errs := map[string]string{}
	if ve, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range ve {
			switch fe.Field() {
			case "name":
				errs["name"] = "Nama minimal 3 karakter"
			case "email":
				errs["email"] = "Format email tidak valid"
			case "message":
				errs["message"] = "Pesan minimal 10 karakter"
			}
		}
	}
	if len(errs) == 0 {
		errs["_"] = "Isian tidak valid"
	}
	return errs
}

func (r SubmitInquiryRequest) ToModel(submittedAt time.Time) m.InquiryModel {
	return m.InquiryModel{
		InquiryID:             uuid.New(),
		InquiryName:           r.Name,
		InquiryEmail:          r.Email,
		InquiryMessage:        r.Message,
		InquirySubmissionDate: submittedAt,
	}
}
