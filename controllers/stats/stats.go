package stats

import (
	"strconv"

	"parcel-delivery/logger"
	"parcel-delivery/services"
	statsService "parcel-delivery/services/stats"
	"parcel-delivery/types"
	"parcel-delivery/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// StatsController handles statistics requests
type StatsController struct {
	DB      *gorm.DB
	Logger  *logger.AsyncLogger
	Service *statsService.Service
}

// NewStatsController creates a new stats controller
func NewStatsController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *StatsController {
	return &StatsController{
		DB:      db,
		Logger:  asyncLogger,
		Service: statsService.NewService(db),
	}
}

func (sc *StatsController) logAPIRequest(c *fiber.Ctx) {
	logEntry := utils.CreateSanitizedLogEntry(c)
	sc.Logger.Log(logEntry)
}

func (sc *StatsController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	sc.logAPIRequest(c)
	return result
}

func (sc *StatsController) sendServiceError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	msg := "Database error"
	if services.IsNotFound(err) {
		status = fiber.StatusNotFound
		msg = err.Error()
	} else {
		logger.Error("Unexpected service error", err)
	}
	return sc.sendResponseWithLog(c, status, types.ApiResponse{
		Status:  status,
		Message: msg,
		Data:    nil,
	})
}

// Global returns the dashboard aggregates over the whole store
func (sc *StatsController) Global(c *fiber.Ctx) error {
	result, err := sc.Service.GlobalStats()
	if err != nil {
		return sc.sendServiceError(c, err)
	}

	response := types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Statistics retrieved successfully",
		Data:    result,
	}
	return sc.sendResponseWithLog(c, fiber.StatusOK, response)
}

// DeliveryPerson returns the per-courier aggregates
func (sc *StatsController) DeliveryPerson(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		response := types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid delivery person id",
			Data:    nil,
		}
		return sc.sendResponseWithLog(c, fiber.StatusBadRequest, response)
	}

	result, err := sc.Service.DeliveryPersonStats(uint(id))
	if err != nil {
		return sc.sendServiceError(c, err)
	}

	response := types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Statistics retrieved successfully",
		Data:    result,
	}
	return sc.sendResponseWithLog(c, fiber.StatusOK, response)
}

// Zone returns the per-zone aggregates
func (sc *StatsController) Zone(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		response := types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid zone id",
			Data:    nil,
		}
		return sc.sendResponseWithLog(c, fiber.StatusBadRequest, response)
	}

	result, err := sc.Service.ZoneStats(uint(id))
	if err != nil {
		return sc.sendServiceError(c, err)
	}

	response := types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Statistics retrieved successfully",
		Data:    result,
	}
	return sc.sendResponseWithLog(c, fiber.StatusOK, response)
}
