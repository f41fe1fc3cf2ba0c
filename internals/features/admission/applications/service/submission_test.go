package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dto "ppdb_backend/internals/features/admission/applications/dto"
	helper "ppdb_backend/internals/helpers"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return db, mock
}

func validSubmitRequest() *dto.SubmitApplicationRequest {
	avg := 88.5
	return &dto.SubmitApplicationRequest{
		PersonalDetails: dto.PersonalDetails{
			FullName:    "Budi Santoso",
			NISN:        "0051234567",
			Gender:      "Laki-laki",
			BirthPlace:  "Bandung",
			BirthDate:   "2012-04-12",
			Address:     "Jl. Merdeka No. 10, Bandung",
			PhoneNumber: "081234567890",
		},
		AcademicHistory: dto.AcademicHistory{
			PreviousSchool: "SDN 1 Bandung",
			GraduationYear: 2025,
			AverageScore:   &avg,
		},
		ParentGuardianInfo: dto.ParentGuardianInfo{
			FatherName:        "Agus Santoso",
			MotherName:        "Siti Aminah",
			ParentPhoneNumber: "081298765432",
		},
	}
}

type fakeReviewer struct {
	out   *ReviewOutput
	err   error
	calls int
	form  map[string]any
	docs  []ReviewDocument
}

func (f *fakeReviewer) Review(ctx context.Context, formData map[string]any, documents []ReviewDocument) (*ReviewOutput, error) {
	f.calls++
	f.form = formData
	f.docs = documents
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}

type fakeMirror struct {
	mu    sync.Mutex
	rows  []SheetRow
	err   error
	block chan struct{}
	done  chan struct{}
}

func (f *fakeMirror) Append(ctx context.Context, row SheetRow) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	f.rows = append(f.rows, row)
	f.mu.Unlock()
	if f.done != nil {
		close(f.done)
	}
	return f.err
}

func (f *fakeMirror) appended() []SheetRow {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]SheetRow(nil), f.rows...)
}

// newTestService memakai dispatch mirror sinkron supaya baris yang dikirim
// bisa langsung diperiksa tanpa goroutine.
func newTestService(db *gorm.DB, reviewer ApplicationReviewer, mirror SheetAppender, requireDocs bool) *SubmissionService {
	svc := NewSubmissionService(db, reviewer, mirror, requireDocs)
	svc.mirrorDispatch = func(fn func()) { fn() }
	return svc
}

func expectInsert(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "applications"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
}

func expectNotesUpdate(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "applications" SET "application_ai_review_notes"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
}

func TestSubmit_Success(t *testing.T) {
	db, mock := newMockDB(t)
	expectInsert(mock)
	expectNotesUpdate(mock)

	reviewer := &fakeReviewer{out: &ReviewOutput{Summary: "Formulir lengkap", NeedsHumanAttention: false, IsComplete: true, IsLegible: true}}
	mirror := &fakeMirror{}
	svc := newTestService(db, reviewer, mirror, false)

	state := svc.Submit(context.Background(), validSubmitRequest())

	assert.True(t, state.Success)
	assert.Equal(t, "Pendaftaran berhasil!", state.Message)
	assert.Regexp(t, helper.ApplicationIDPattern, state.ApplicationID)
	assert.Nil(t, state.Errors)

	assert.Equal(t, 1, reviewer.calls)
	assert.Equal(t, "Budi Santoso", reviewer.form["fullName"])

	rows := mirror.appended()
	require.Len(t, rows, 1)
	assert.Equal(t, state.ApplicationID, rows[0].ApplicationID)
	assert.Equal(t, "Formulir lengkap", rows[0].AISummary)
	require.NotNil(t, rows[0].AINeedsAttention)
	assert.False(t, *rows[0].AINeedsAttention)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmit_ValidationFailure_NoSideEffects(t *testing.T) {
	db, mock := newMockDB(t)

	reviewer := &fakeReviewer{out: &ReviewOutput{Summary: "x", NeedsHumanAttention: false}}
	mirror := &fakeMirror{}
	svc := newTestService(db, reviewer, mirror, false)

	req := validSubmitRequest()
	req.AcademicHistory.GraduationYear = 1999

	state := svc.Submit(context.Background(), req)

	assert.False(t, state.Success)
	assert.Equal(t, "Validasi gagal. Harap periksa kembali isian formulir Anda.", state.Message)
	require.Contains(t, state.Errors, "academicHistory")
	assert.Contains(t, state.Errors["academicHistory"], "graduationYear")
	assert.Empty(t, state.ApplicationID)

	assert.Zero(t, reviewer.calls)
	assert.Empty(t, mirror.appended())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmit_DocumentsRequired(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newTestService(db, nil, nil, true)

	state := svc.Submit(context.Background(), validSubmitRequest())

	assert.False(t, state.Success)
	require.Contains(t, state.Errors, "documents")
	assert.Equal(t, "Dokumen pendukung wajib diunggah", state.Errors["documents"]["documents"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmit_PersistenceFailure(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "applications"`).
		WillReturnError(errors.New("connection refused"))
	mock.ExpectRollback()

	reviewer := &fakeReviewer{out: &ReviewOutput{Summary: "x", NeedsHumanAttention: false}}
	mirror := &fakeMirror{}
	svc := newTestService(db, reviewer, mirror, false)

	state := svc.Submit(context.Background(), validSubmitRequest())

	assert.False(t, state.Success)
	assert.Equal(t, "Gagal mengirim pendaftaran. Silakan coba lagi.", state.Message)
	assert.Empty(t, state.ApplicationID)

	// write utama gagal: review dan mirror tidak boleh jalan
	assert.Zero(t, reviewer.calls)
	assert.Empty(t, mirror.appended())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmit_ReviewerFailureStillSucceeds(t *testing.T) {
	db, mock := newMockDB(t)
	expectInsert(mock)
	expectNotesUpdate(mock)

	reviewer := &fakeReviewer{err: &ReviewError{Err: errors.New("kuota habis")}}
	mirror := &fakeMirror{}
	svc := newTestService(db, reviewer, mirror, false)

	state := svc.Submit(context.Background(), validSubmitRequest())

	assert.True(t, state.Success)
	assert.Equal(t, "Pendaftaran berhasil!", state.Message)

	rows := mirror.appended()
	require.Len(t, rows, 1)
	assert.Equal(t, "AI Review Failed", rows[0].AISummary)
	require.NotNil(t, rows[0].AINeedsAttention)
	assert.True(t, *rows[0].AINeedsAttention)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmit_NoReviewerConfigured(t *testing.T) {
	db, mock := newMockDB(t)
	expectInsert(mock)
	expectNotesUpdate(mock)

	mirror := &fakeMirror{}
	svc := newTestService(db, nil, mirror, false)

	state := svc.Submit(context.Background(), validSubmitRequest())

	assert.True(t, state.Success)
	rows := mirror.appended()
	require.Len(t, rows, 1)
	assert.Equal(t, "AI Review Failed", rows[0].AISummary)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmit_NilVerdictTreatedAsReviewFailure(t *testing.T) {
	db, mock := newMockDB(t)
	expectInsert(mock)
	expectNotesUpdate(mock)

	// reviewer yang (salah) mengembalikan (nil, nil)
	reviewer := &fakeReviewer{}
	mirror := &fakeMirror{}
	svc := newTestService(db, reviewer, mirror, false)

	state := svc.Submit(context.Background(), validSubmitRequest())

	assert.True(t, state.Success)
	rows := mirror.appended()
	require.Len(t, rows, 1)
	assert.Equal(t, "AI Review Failed", rows[0].AISummary)
	require.NotNil(t, rows[0].AINeedsAttention)
	assert.True(t, *rows[0].AINeedsAttention)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmit_NotesUpdateFailureIsSwallowed(t *testing.T) {
	db, mock := newMockDB(t)
	expectInsert(mock)
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "applications" SET "application_ai_review_notes"`).
		WillReturnError(errors.New("timeout"))
	mock.ExpectRollback()

	reviewer := &fakeReviewer{out: &ReviewOutput{Summary: "ok", NeedsHumanAttention: false}}
	svc := newTestService(db, reviewer, &fakeMirror{}, false)

	state := svc.Submit(context.Background(), validSubmitRequest())

	assert.True(t, state.Success, "kegagalan write sekunder tidak boleh mengubah hasil")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmit_MirrorDoesNotBlockResponse(t *testing.T) {
	db, mock := newMockDB(t)
	expectInsert(mock)
	expectNotesUpdate(mock)

	mirror := &fakeMirror{
		block: make(chan struct{}),
		done:  make(chan struct{}),
	}
	reviewer := &fakeReviewer{out: &ReviewOutput{Summary: "ok", NeedsHumanAttention: false}}

	// dispatch default (goroutine) — respons harus kembali sebelum append selesai
	svc := NewSubmissionService(db, reviewer, mirror, false)

	state := svc.Submit(context.Background(), validSubmitRequest())
	assert.True(t, state.Success)
	assert.Empty(t, mirror.appended())

	close(mirror.block)
	select {
	case <-mirror.done:
	case <-time.After(2 * time.Second):
		t.Fatal("append mirror tidak pernah jalan")
	}
	require.Len(t, mirror.appended(), 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmit_SkipsUndecodableDocuments(t *testing.T) {
	db, mock := newMockDB(t)
	expectInsert(mock)
	expectNotesUpdate(mock)

	reviewer := &fakeReviewer{out: &ReviewOutput{Summary: "ok", NeedsHumanAttention: false}}
	svc := newTestService(db, reviewer, &fakeMirror{}, false)

	req := validSubmitRequest()
	req.Documents = []dto.DocumentPayload{
		{Name: "rusak.png", ContentType: "image/png", Size: 10, DataURI: "data:image/png;base64,???"},
		{Name: "rapor.txt", ContentType: "text/plain", Size: 4, DataURI: "data:text/plain;base64,aXNp"},
	}

	state := svc.Submit(context.Background(), req)

	assert.True(t, state.Success)
	require.Len(t, reviewer.docs, 1)
	assert.Equal(t, "text/plain", reviewer.docs[0].MIMEType)
	assert.Equal(t, []byte("isi"), reviewer.docs[0].Data)
	assert.NoError(t, mock.ExpectationsWereMet())
}
