package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Idempotency replays the cached response when a mutating request repeats an
// Idempotency-Key. Keys are scoped to the authenticated user, so it must run
// after Protected. Requests without a key pass straight through.
func Idempotency(db *pgxpool.Pool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get("Idempotency-Key")
		if key == "" {
			return c.Next()
		}
		userID, _ := c.Locals("user_id").(uuid.UUID)

		var status int
		var body []byte
		err := db.QueryRow(c.Context(),
			"SELECT response_status, response_body FROM idempotency_keys WHERE key_id = $1 AND user_id = $2",
			key, userID).Scan(&status, &body)
		if err == nil {
			c.Set("X-Idempotency-Hit", "true")
			c.Set("Content-Type", "application/json")
			return c.Status(status).Send(body)
		}

		if err := c.Next(); err != nil {
			return err
		}

		resStatus := c.Response().StatusCode()
		resBody := c.Response().Body()
		_, insertErr := db.Exec(c.Context(),
			"INSERT INTO idempotency_keys (key_id, user_id, response_status, response_body) VALUES ($1, $2, $3, $4) ON CONFLICT DO NOTHING",
			key, userID, resStatus, resBody)
		if insertErr != nil {
			slog.Error("failed to save idempotency key", "error", insertErr, "key", key)
		}
		return nil
	}
}
