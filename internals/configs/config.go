package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	SpreadsheetID         string
	SheetName             string
	GoogleCredentialsJSON string
	GeminiAPIKey          string
	GeminiModel           string
	RequireDocuments      bool
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	SpreadsheetID = GetEnv("SPREADSHEET_ID")
	SheetName = GetEnv("SHEET_NAME")
	GoogleCredentialsJSON = GetEnv("GOOGLE_APPLICATION_CREDENTIALS_JSON_STRING")
	GeminiAPIKey = GetEnv("GEMINI_API_KEY")
	GeminiModel = GetEnv("GEMINI_MODEL", "gemini-2.0-flash")
	RequireDocuments = GetEnvBool("REQUIRE_DOCUMENTS", false)

	if GeminiAPIKey == "" {
		log.Println("⚠️ GEMINI_API_KEY belum diset — review AI akan dicatat sebagai gagal.")
	} else {
		log.Println("✅ GEMINI_API_KEY berhasil dimuat.")
	}

	if SpreadsheetID == "" || SheetName == "" {
		log.Println("⚠️ SPREADSHEET_ID / SHEET_NAME belum diset — mirror spreadsheet dinonaktifkan.")
	} else {
		log.Println("✅ Konfigurasi Google Sheets berhasil dimuat.")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
