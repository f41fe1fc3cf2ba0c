package service

// Varian error bertag untuk pipeline submission: orchestrator memutuskan
// fatal/tidaknya dari tipe, bukan dari bentuk pesan.

// ReviewError: kegagalan reviewer AI. Tidak pernah menggagalkan submission —
// dicatat sebagai data di application_ai_review_notes.
type ReviewError struct {
	Err error
}

func (e *ReviewError) Error() string { return "review AI gagal: " + e.Err.Error() }
func (e *ReviewError) Unwrap() error { return e.Err }

// PersistenceError: kegagalan tulis record utama. Satu-satunya jalur fatal
// setelah validasi lolos.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *PersistenceError) Unwrap() error { return e.Err }
