package middlewares

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// RecoveryMiddleware menangkap panic supaya satu request rusak tidak
// menjatuhkan proses; response 500-nya dibentuk oleh error handler aplikasi.
func RecoveryMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			log.Printf("❌ Panic pada %s %s (reqid=%v): %v", c.Method(), c.Path(), c.Locals("reqid"), e)
		},
	})
}
