package helper

import (
	"fmt"
	"strings"
	"time"
)

var namaBulan = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// FormatTanggalID → "2 Januari 2025" (bentuk panjang id-ID).
func FormatTanggalID(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return fmt.Sprintf("%d %s %d", t.Day(), namaBulan[t.Month()-1], t.Year())
}

// FormatTanggalWaktuID → "2 Januari 2025 10.30.05" (dipakai baris spreadsheet).
func FormatTanggalWaktuID(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return fmt.Sprintf("%d %s %d %02d.%02d.%02d",
		t.Day(), namaBulan[t.Month()-1], t.Year(),
		t.Hour(), t.Minute(), t.Second())
}

// ParseTanggal menerima RFC3339 maupun "2006-01-02" (form date input).
func ParseTanggal(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
