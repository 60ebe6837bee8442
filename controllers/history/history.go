package history

import (
	"strconv"

	"parcel-delivery/logger"
	"parcel-delivery/services"
	historyService "parcel-delivery/services/delivery_history"
	"parcel-delivery/types"
	"parcel-delivery/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// HistoryController handles ledger-wide delivery history requests
type HistoryController struct {
	DB      *gorm.DB
	Logger  *logger.AsyncLogger
	Service *historyService.Service
}

// NewHistoryController creates a new history controller
func NewHistoryController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *HistoryController {
	return &HistoryController{
		DB:      db,
		Logger:  asyncLogger,
		Service: historyService.NewService(db),
	}
}

func (hc *HistoryController) logAPIRequest(c *fiber.Ctx) {
	logEntry := utils.CreateSanitizedLogEntry(c)
	hc.Logger.Log(logEntry)
}

func (hc *HistoryController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	hc.logAPIRequest(c)
	return result
}

func (hc *HistoryController) sendServiceError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	msg := "Database error"
	switch {
	case services.IsNotFound(err):
		status = fiber.StatusNotFound
		msg = err.Error()
	case services.IsValidation(err):
		status = fiber.StatusBadRequest
		msg = err.Error()
	default:
		logger.Error("Unexpected service error", err)
	}
	return hc.sendResponseWithLog(c, status, types.ApiResponse{
		Status:  status,
		Message: msg,
		Data:    nil,
	})
}

// Comments returns every history entry carrying a comment, newest first
func (hc *HistoryController) Comments(c *fiber.Ctx) error {
	entries, err := hc.Service.WithComments()
	if err != nil {
		return hc.sendServiceError(c, err)
	}

	response := types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Delivery history retrieved successfully",
		Data:    entries,
	}
	return hc.sendResponseWithLog(c, fiber.StatusOK, response)
}

// DeliveredToday counts the parcels delivered since midnight
func (hc *HistoryController) DeliveredToday(c *fiber.Ctx) error {
	count, err := hc.Service.DeliveredToday()
	if err != nil {
		return hc.sendServiceError(c, err)
	}

	response := types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Delivered today count retrieved successfully",
		Data: map[string]interface{}{
			"delivered_today": count,
		},
	}
	return hc.sendResponseWithLog(c, fiber.StatusOK, response)
}

// AverageDeliveryTime returns the mean creation-to-delivery time in hours
func (hc *HistoryController) AverageDeliveryTime(c *fiber.Ctx) error {
	hours, err := hc.Service.AverageDeliveryHours()
	if err != nil {
		return hc.sendServiceError(c, err)
	}

	response := types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Average delivery time retrieved successfully",
		Data: map[string]interface{}{
			"average_delivery_hours": hours,
		},
	}
	return hc.sendResponseWithLog(c, fiber.StatusOK, response)
}

// Destroy removes a single history entry. This breaks the audit trail of
// the parcel it belongs to and is reserved for administrators.
func (hc *HistoryController) Destroy(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		response := types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid history entry id",
			Data:    nil,
		}
		return hc.sendResponseWithLog(c, fiber.StatusBadRequest, response)
	}

	if err := hc.Service.Delete(uint(id)); err != nil {
		return hc.sendServiceError(c, err)
	}

	logger.Success("Delivery history entry deleted. ID: " + strconv.FormatUint(id, 10))
	response := types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Delivery history entry deleted successfully",
		Data:    nil,
	}
	return hc.sendResponseWithLog(c, fiber.StatusOK, response)
}
