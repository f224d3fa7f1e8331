package handler

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"guestbook/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay free of business logic; they translate between HTTP and services.
func RegisterRoutes(app *fiber.App, db *sql.DB, entrySvc service.EntryService, authSvc service.AuthService) {
	app.Get("/", Welcome())

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Get("/entries", ListEntries(entrySvc))
	app.Post("/entry", CreateEntry(entrySvc))
	app.Delete("/entry/:id", DeleteEntry(entrySvc))
	app.Post("/entries/export", ExportEntries(entrySvc))

	app.Post("/user/new", RegisterUser(authSvc))
	app.Post("/user", LoginUser(authSvc))
}

// Welcome handles GET / with the guestbook greeting.
func Welcome() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to the Guestbook API!",
		})
	}
}

// HealthCheck handles GET /health by checking DB connectivity only.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe handles GET /healthz as a bare liveness check.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// ListEntries handles GET /entries with optional limit & offset.
func ListEntries(entrySvc service.EntryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limitStr := c.Query("limit", "0")
		offsetStr := c.Query("offset", "0")
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(offsetStr)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := entrySvc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// createEntryRequest is the POST /entry body.
type createEntryRequest struct {
	Name  string `json:"name"`
	Entry string `json:"entry"`
}

// CreateEntry handles POST /entry.
func CreateEntry(entrySvc service.EntryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createEntryRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		e, err := entrySvc.Create(c.UserContext(), req.Name, req.Entry)
		if err != nil {
			if errors.Is(err, service.ErrValidation) {
				return writeError(c, fiber.StatusUnprocessableEntity, "VALIDATION_ERROR", "name and entry are required")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		return c.JSON(fiber.Map{
			"id":      e.ID,
			"message": "New entry added with ID: " + e.ID,
		})
	}
}

// DeleteEntry handles DELETE /entry/:id.
// Deleting a non-existent entry still answers 200; the operation is idempotent.
func DeleteEntry(entrySvc service.EntryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := entrySvc.Delete(c.UserContext(), id); err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{
			"message": "Entry deleted successfully",
		})
	}
}

// ExportEntries handles POST /entries/export by writing a snapshot to object
// storage and returning a presigned download URL.
func ExportEntries(entrySvc service.EntryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := entrySvc.Export(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// credentialsRequest is the body for both POST /user/new and POST /user.
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterUser handles POST /user/new.
func RegisterUser(authSvc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req credentialsRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		res, err := authSvc.Register(c.UserContext(), req.Username, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrCredentialsRequired):
				return writeError(c, fiber.StatusUnprocessableEntity, "VALIDATION_ERROR", "username and password are required")
			case errors.Is(err, service.ErrUserExists):
				return writeError(c, fiber.StatusConflict, "ALREADY_EXISTS", "username already taken")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":      "User registration successful",
			"access_token": res.AccessToken,
		})
	}
}

// LoginUser handles POST /user.
func LoginUser(authSvc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req credentialsRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		res, err := authSvc.Login(c.UserContext(), req.Username, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrCredentialsRequired):
				return writeError(c, fiber.StatusUnprocessableEntity, "VALIDATION_ERROR", "username and password are required")
			case errors.Is(err, service.ErrInvalidCredentials):
				return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "invalid username or password")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}

		return c.JSON(fiber.Map{
			"message":      "User logged in successfully!",
			"access_token": res.AccessToken,
		})
	}
}
