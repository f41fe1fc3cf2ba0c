package helper

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"
)

const applicationIDPrefix = "MG"

const base36Upper = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ApplicationIDPattern adalah kontrak format nomor pendaftaran yang
// ditunjukkan ke pendaftar: prefix 2 huruf + tahun 4 digit + 6 karakter acak.
var ApplicationIDPattern = regexp.MustCompile(`^[A-Z]{2}\d{4}[A-Z0-9]{6}$`)

// GenerateApplicationID membuat nomor pendaftaran, mis. "MG2025K3J9QX".
// Tidak ada pengecekan tabrakan terhadap record lama; ruang 36^6 per tahun
// dianggap cukup.
func GenerateApplicationID() string {
	var suffix [6]byte
	for i := range suffix {
		suffix[i] = base36Upper[rand.IntN(len(base36Upper))]
	}
	return fmt.Sprintf("%s%d%s", applicationIDPrefix, time.Now().Year(), suffix[:])
}
