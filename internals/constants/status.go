package constants

// Status aplikasi pendaftaran. Tidak ada transisi otomatis di backend ini —
// perubahan status dilakukan manual oleh staf lewat tooling terpisah.
const (
	StatusSubmitted              = "SUBMITTED"
	StatusUnderReview            = "UNDER_REVIEW"
	StatusAdditionalInfoRequired = "ADDITIONAL_INFO_REQUIRED"
	StatusAccepted               = "ACCEPTED"
	StatusRejected               = "REJECTED"
	StatusUnknown                = "UNKNOWN"
)

type StatusLabel struct {
	Text  string `json:"text"`
	Color string `json:"color"`
}

// ApplicationStatuses dipakai frontend untuk mapping label & warna badge.
var ApplicationStatuses = map[string]StatusLabel{
	StatusSubmitted:              {Text: "Terkirim", Color: "bg-blue-500"},
	StatusUnderReview:            {Text: "Dalam Peninjauan", Color: "bg-yellow-500"},
	StatusAdditionalInfoRequired: {Text: "Membutuhkan Info Tambahan", Color: "bg-orange-500"},
	StatusAccepted:               {Text: "Diterima", Color: "bg-green-500"},
	StatusRejected:               {Text: "Ditolak", Color: "bg-red-500"},
	StatusUnknown:                {Text: "Tidak Diketahui", Color: "bg-gray-500"},
}

func IsValidStatus(s string) bool {
	_, ok := ApplicationStatuses[s]
	return ok
}
