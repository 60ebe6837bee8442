package registry

import (
	"strconv"
	"strings"

	"parcel-delivery/logger"
	"parcel-delivery/types"
	"parcel-delivery/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RegistryController handles CRUD for the reference registries: zones,
// products, sender clients, recipients and delivery persons.
type RegistryController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

// NewRegistryController creates a new registry controller
func NewRegistryController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *RegistryController {
	return &RegistryController{
		DB:     db,
		Logger: asyncLogger,
	}
}

// Helper function to log API requests and responses
func (rc *RegistryController) logAPIRequest(c *fiber.Ctx) {
	logEntry := utils.CreateSanitizedLogEntry(c)
	rc.Logger.Log(logEntry)
}

// Helper function to send response and log in one call
func (rc *RegistryController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	rc.logAPIRequest(c)
	return result
}

func (rc *RegistryController) sendBadRequest(c *fiber.Ctx, message string) error {
	return rc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
		Status:  fiber.StatusBadRequest,
		Message: message,
		Data:    nil,
	})
}

func (rc *RegistryController) sendNotFound(c *fiber.Ctx, message string) error {
	return rc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
		Status:  fiber.StatusNotFound,
		Message: message,
		Data:    nil,
	})
}

func (rc *RegistryController) parseID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// isDuplicateError detects unique constraint violations across drivers
func isDuplicateError(err error) bool {
	return strings.Contains(err.Error(), "duplicate key") ||
		strings.Contains(err.Error(), "Duplicate entry") ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}
