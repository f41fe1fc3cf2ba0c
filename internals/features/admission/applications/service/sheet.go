package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	dto "ppdb_backend/internals/features/admission/applications/dto"
	helper "ppdb_backend/internals/helpers"
)

// SheetRow adalah satu baris denormalisasi untuk mirror spreadsheet kantor.
// Mirror bersifat non-otoritatif: boleh basi, boleh hilang.
type SheetRow struct {
	ApplicationID      string
	SubmissionTime     time.Time
	PersonalDetails    dto.PersonalDetails
	AcademicHistory    dto.AcademicHistory
	ParentGuardianInfo dto.ParentGuardianInfo
	Status             string
	AISummary          string
	AINeedsAttention   *bool
}

type SheetAppender interface {
	Append(ctx context.Context, row SheetRow) error
}

// SheetsMirror menulis ke Google Sheets pakai service account. Kalau
// SPREADSHEET_ID / SHEET_NAME tidak diset, Append jadi no-op.
type SheetsMirror struct {
	spreadsheetID   string
	sheetName       string
	credentialsJSON string

	initOnce sync.Once
	initErr  error
	svc      *sheets.Service
}

func NewSheetsMirror(spreadsheetID, sheetName, credentialsJSON string) *SheetsMirror {
	return &SheetsMirror{
		spreadsheetID:   spreadsheetID,
		sheetName:       sheetName,
		credentialsJSON: credentialsJSON,
	}
}

func (m *SheetsMirror) Configured() bool {
	return m.spreadsheetID != "" && m.sheetName != ""
}

func (m *SheetsMirror) Append(ctx context.Context, row SheetRow) error {
	if !m.Configured() {
		log.Println("⚠️ SPREADSHEET_ID / SHEET_NAME belum diset — lewati append spreadsheet.")
		return nil
	}

	m.initOnce.Do(func() {
		if m.credentialsJSON == "" {
			m.initErr = errors.New("GOOGLE_APPLICATION_CREDENTIALS_JSON_STRING belum diset")
			return
		}
		svc, err := sheets.NewService(context.Background(),
			option.WithCredentialsJSON([]byte(m.credentialsJSON)),
			option.WithScopes(sheets.SpreadsheetsScope),
		)
		if err != nil {
			m.initErr = fmt.Errorf("inisialisasi Sheets client gagal: %w", err)
			return
		}
		m.svc = svc
	})
	if m.initErr != nil {
		return m.initErr
	}

	vr := &sheets.ValueRange{Values: [][]interface{}{mapRow(row)}}
	_, err := m.svc.Spreadsheets.Values.Append(m.spreadsheetID, m.sheetName, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append spreadsheet %s gagal: %w", row.ApplicationID, err)
	}

	log.Printf("✅ Baris spreadsheet ditambahkan untuk %s", row.ApplicationID)
	return nil
}

// Urutan kolom HARUS sama dengan header sheet:
// Application ID, Submission Date, Full Name, NISN, Gender, Birth Place,
// Birth Date, Address, Phone Number, Previous School, Graduation Year,
// Average Score, Father's Name, Father's Occupation, Mother's Name,
// Mother's Occupation, Guardian's Name, Guardian's Occupation,
// Parent/Guardian Phone, Application Status, AI Review Summary,
// AI Needs Human Attention.
func mapRow(row SheetRow) []interface{} {
	birthDate := ""
	if t, err := helper.ParseTanggal(row.PersonalDetails.BirthDate); err == nil {
		birthDate = helper.FormatTanggalID(t)
	}

	averageScore := interface{}("")
	if row.AcademicHistory.AverageScore != nil {
		averageScore = *row.AcademicHistory.AverageScore
	}

	needsAttention := ""
	if row.AINeedsAttention != nil {
		if *row.AINeedsAttention {
			needsAttention = "Ya"
		} else {
			needsAttention = "Tidak"
		}
	}

	return []interface{}{
		row.ApplicationID,
		helper.FormatTanggalWaktuID(row.SubmissionTime),
		row.PersonalDetails.FullName,
		row.PersonalDetails.NISN,
		row.PersonalDetails.Gender,
		row.PersonalDetails.BirthPlace,
		birthDate,
		row.PersonalDetails.Address,
		row.PersonalDetails.PhoneNumber,
		row.AcademicHistory.PreviousSchool,
		row.AcademicHistory.GraduationYear,
		averageScore,
		row.ParentGuardianInfo.FatherName,
		row.ParentGuardianInfo.FatherOccupation,
		row.ParentGuardianInfo.MotherName,
		row.ParentGuardianInfo.MotherOccupation,
		row.ParentGuardianInfo.GuardianName,
		row.ParentGuardianInfo.GuardianOccupation,
		row.ParentGuardianInfo.ParentPhoneNumber,
		row.Status,
		row.AISummary,
		needsAttention,
	}
}
