package dto

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"

	"ppdb_backend/internals/constants"
	m "ppdb_backend/internals/features/admission/applications/model"
	helper "ppdb_backend/internals/helpers"
)

/* =========================================================
   SECTION SCHEMAS
   Nama field JSON mengikuti form frontend (fullName, nisn, dst)
   dan dipakai juga sebagai path pada map error validasi.
   ========================================================= */

type PersonalDetails struct {
	FullName    string `json:"fullName" validate:"required,min=3"`
	NISN        string `json:"nisn" validate:"omitempty,len=10"`
	Gender      string `json:"gender" validate:"required,oneof='Laki-laki' 'Perempuan'"`
	BirthPlace  string `json:"birthPlace" validate:"required"`
	BirthDate   string `json:"birthDate" validate:"required"`
	Address     string `json:"address" validate:"required,min=5"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,min=10"`
}

type AcademicHistory struct {
	PreviousSchool string   `json:"previousSchool" validate:"required,min=3"`
	GraduationYear int      `json:"graduationYear" validate:"required,min=2000"`
	AverageScore   *float64 `json:"averageScore" validate:"omitempty,min=0,max=100"`
}

type ParentGuardianInfo struct {
	FatherName         string `json:"fatherName" validate:"required,min=3"`
	FatherOccupation   string `json:"fatherOccupation"`
	MotherName         string `json:"motherName" validate:"required,min=3"`
	MotherOccupation   string `json:"motherOccupation"`
	GuardianName       string `json:"guardianName"`
	GuardianOccupation string `json:"guardianOccupation"`
	ParentPhoneNumber  string `json:"parentPhoneNumber" validate:"required,min=10"`
}

// DocumentPayload adalah berkas yang diunggah pendaftar. Isi berkas dikirim
// inline sebagai data URI; yang dipersist hanya deskriptornya.
type DocumentPayload struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
	DataURI     string `json:"dataUri,omitempty"`
}

type DocumentDescriptor struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

type SubmitApplicationRequest struct {
	PersonalDetails    PersonalDetails    `json:"personalDetails"`
	AcademicHistory    AcademicHistory    `json:"academicHistory"`
	ParentGuardianInfo ParentGuardianInfo `json:"parentGuardianInfo"`
	Documents          []DocumentPayload  `json:"documents"`
}

/* =========================================================
   RESULT SHAPES (kontrak ke frontend)
   ========================================================= */

type SubmitApplicationState struct {
	Success       bool                         `json:"success"`
	ApplicationID string                       `json:"applicationId,omitempty"`
	Message       string                       `json:"message"`
	Errors        map[string]map[string]string `json:"errors,omitempty"`
}

type FetchStatusState struct {
	Status         string `json:"status,omitempty"`
	ApplicantName  string `json:"applicantName,omitempty"`
	SubmissionDate string `json:"submissionDate,omitempty"`
	Message        string `json:"message"`
	Error          bool   `json:"error,omitempty"`
}

/* =========================================================
   VALIDASI
   ========================================================= */

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// pakai nama json sebagai path error, bukan nama field Go
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (r *SubmitApplicationRequest) Normalize() {
	trim := func(s *string) { *s = strings.TrimSpace(*s) }

	trim(&r.PersonalDetails.FullName)
	trim(&r.PersonalDetails.NISN)
	trim(&r.PersonalDetails.Gender)
	trim(&r.PersonalDetails.BirthPlace)
	trim(&r.PersonalDetails.BirthDate)
	trim(&r.PersonalDetails.Address)
	trim(&r.PersonalDetails.PhoneNumber)

	trim(&r.AcademicHistory.PreviousSchool)

	trim(&r.ParentGuardianInfo.FatherName)
	trim(&r.ParentGuardianInfo.FatherOccupation)
	trim(&r.ParentGuardianInfo.MotherName)
	trim(&r.ParentGuardianInfo.MotherOccupation)
	trim(&r.ParentGuardianInfo.GuardianName)
	trim(&r.ParentGuardianInfo.GuardianOccupation)
	trim(&r.ParentGuardianInfo.ParentPhoneNumber)
}

// Validate menjalankan seluruh schema dan mengembalikan map error
// per-section per-field (nil kalau valid). Tidak menyentuh service eksternal.
func (r *SubmitApplicationRequest) Validate(now time.Time) map[string]map[string]string {
	errs := map[string]map[string]string{}
	add := func(section, field, msg string) {
		if _, ok := errs[section]; !ok {
			errs[section] = map[string]string{}
		}
		if _, ok := errs[section][field]; !ok {
			errs[section][field] = msg
		}
	}

	if err := validate.Struct(r); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range ve {
				// Namespace: SubmitApplicationRequest.personalDetails.fullName
				parts := strings.Split(fe.Namespace(), ".")
				if len(parts) < 3 {
					continue
				}
				section, field := parts[1], parts[2]
				add(section, field, fieldMessage(section, field, fe.Tag()))
			}
		}
	}

	// tahun lulus: batas atas dinamis (tahun berjalan + 1), tidak bisa lewat tag
	maxYear := now.Year() + 1
	if r.AcademicHistory.GraduationYear > maxYear {
		add("academicHistory", "graduationYear", fmt.Sprintf("Tahun lulus maksimal %d", maxYear))
	}

	// tanggal lahir: parse + batas bawah/atas ditegakkan juga di server
	if strings.TrimSpace(r.PersonalDetails.BirthDate) != "" {
		if t, err := helper.ParseTanggal(r.PersonalDetails.BirthDate); err != nil {
			add("personalDetails", "birthDate", "Tanggal lahir tidak valid")
		} else if t.After(now) {
			add("personalDetails", "birthDate", "Tanggal lahir tidak boleh di masa depan")
		} else if t.Before(time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)) {
			add("personalDetails", "birthDate", "Tanggal lahir tidak boleh sebelum tahun 1900")
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Pesan per-field mengikuti copy schema frontend.
func fieldMessage(section, field, tag string) string {
	switch section + "." + field {
	case "personalDetails.fullName":
		return "Nama lengkap minimal 3 karakter"
	case "personalDetails.nisn":
		return "NISN harus 10 digit"
	case "personalDetails.gender":
		return "Jenis kelamin harus dipilih"
	case "personalDetails.birthPlace":
		return "Tempat lahir harus diisi"
	case "personalDetails.birthDate":
		return "Tanggal lahir harus diisi"
	case "personalDetails.address":
		return "Alamat minimal 5 karakter"
	case "personalDetails.phoneNumber":
		return "Nomor telepon minimal 10 digit"
	case "academicHistory.previousSchool":
		return "Asal sekolah minimal 3 karakter"
	case "academicHistory.graduationYear":
		return "Tahun lulus minimal 2000"
	case "academicHistory.averageScore":
		return "Nilai rata-rata harus antara 0 dan 100"
	case "parentGuardianInfo.fatherName":
		return "Nama Ayah minimal 3 karakter"
	case "parentGuardianInfo.motherName":
		return "Nama Ibu minimal 3 karakter"
	case "parentGuardianInfo.parentPhoneNumber":
		return "Nomor telepon orang tua/wali minimal 10 digit"
	}
	return "Isian tidak valid (" + tag + ")"
}

/* =========================================================
   KONVERSI
   ========================================================= */

func (r SubmitApplicationRequest) ToModel(applicationID string, submittedAt time.Time) (m.ApplicationModel, error) {
	personal, err := json.Marshal(r.PersonalDetails)
	if err != nil {
		return m.ApplicationModel{}, err
	}
	academic, err := json.Marshal(r.AcademicHistory)
	if err != nil {
		return m.ApplicationModel{}, err
	}
	parent, err := json.Marshal(r.ParentGuardianInfo)
	if err != nil {
		return m.ApplicationModel{}, err
	}

	mo := m.ApplicationModel{
		ApplicationID:                 applicationID,
		ApplicationPersonalDetails:    datatypes.JSON(personal),
		ApplicationAcademicHistory:    datatypes.JSON(academic),
		ApplicationParentGuardianInfo: datatypes.JSON(parent),
		ApplicationStatus:             constants.StatusSubmitted,
		ApplicationSubmissionDate:     submittedAt,
	}

	if len(r.Documents) > 0 {
		descs := make([]DocumentDescriptor, 0, len(r.Documents))
		for _, d := range r.Documents {
			descs = append(descs, DocumentDescriptor{
				Name:        d.Name,
				ContentType: d.ContentType,
				Size:        d.Size,
			})
		}
		docs, err := json.Marshal(descs)
		if err != nil {
			return m.ApplicationModel{}, err
		}
		mo.ApplicationDocuments = datatypes.JSON(docs)
	}

	return mo, nil
}

// FlattenForReview menggabungkan tiga section jadi satu map field→nilai untuk
// reviewer AI. Field opsional yang kosong tidak diikutkan.
func (r SubmitApplicationRequest) FlattenForReview() map[string]any {
	out := map[string]any{
		"fullName":          r.PersonalDetails.FullName,
		"gender":            r.PersonalDetails.Gender,
		"birthPlace":        r.PersonalDetails.BirthPlace,
		"birthDate":         r.PersonalDetails.BirthDate,
		"address":           r.PersonalDetails.Address,
		"previousSchool":    r.AcademicHistory.PreviousSchool,
		"graduationYear":    r.AcademicHistory.GraduationYear,
		"fatherName":        r.ParentGuardianInfo.FatherName,
		"motherName":        r.ParentGuardianInfo.MotherName,
		"parentPhoneNumber": r.ParentGuardianInfo.ParentPhoneNumber,
	}

	addOpt := func(key, val string) {
		if strings.TrimSpace(val) != "" {
			out[key] = val
		}
	}
	addOpt("nisn", r.PersonalDetails.NISN)
	addOpt("phoneNumber", r.PersonalDetails.PhoneNumber)
	addOpt("fatherOccupation", r.ParentGuardianInfo.FatherOccupation)
	addOpt("motherOccupation", r.ParentGuardianInfo.MotherOccupation)
	addOpt("guardianName", r.ParentGuardianInfo.GuardianName)
	addOpt("guardianOccupation", r.ParentGuardianInfo.GuardianOccupation)
	if r.AcademicHistory.AverageScore != nil {
		out["averageScore"] = *r.AcademicHistory.AverageScore
	}
	return out
}

// Decode membongkar data URI ("data:<mime>;base64,<payload>") menjadi bytes.
func (d DocumentPayload) Decode() ([]byte, string, error) {
	raw := d.DataURI
	if raw == "" {
		return nil, "", fmt.Errorf("dokumen %q tidak menyertakan isi", d.Name)
	}

	mime := d.ContentType
	if strings.HasPrefix(raw, "data:") {
		head, payload, ok := strings.Cut(raw[len("data:"):], ",")
		if !ok {
			return nil, "", fmt.Errorf("data URI dokumen %q tidak valid", d.Name)
		}
		if mt := strings.TrimSuffix(head, ";base64"); mt != "" {
			mime = mt
		}
		raw = payload
	}

	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, "", fmt.Errorf("decode dokumen %q gagal: %w", d.Name, err)
	}
	return data, mime, nil
}
