package parcel

import (
	"strconv"

	"parcel-delivery/constants"
	"parcel-delivery/logger"
	"parcel-delivery/middleware"
	parcelModel "parcel-delivery/models/parcel"
	"parcel-delivery/services"
	historyService "parcel-delivery/services/delivery_history"
	parcelService "parcel-delivery/services/parcel"
	"parcel-delivery/types"
	parcelTypes "parcel-delivery/types/parcel"
	"parcel-delivery/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ParcelController handles parcel related HTTP requests
type ParcelController struct {
	DB      *gorm.DB
	Logger  *logger.AsyncLogger
	Service *parcelService.Service
	History *historyService.Service
}

// NewParcelController creates a new parcel controller
func NewParcelController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *ParcelController {
	return &ParcelController{
		DB:      db,
		Logger:  asyncLogger,
		Service: parcelService.NewService(db),
		History: historyService.NewService(db),
	}
}

// Helper function to log API requests and responses
func (pc *ParcelController) logAPIRequest(c *fiber.Ctx) {
	logEntry := utils.CreateSanitizedLogEntry(c)
	pc.Logger.Log(logEntry)
}

// Helper function to send response and log in one call
func (pc *ParcelController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	pc.logAPIRequest(c)
	return result
}

// serviceErrorStatus maps service errors to HTTP status codes
func serviceErrorStatus(err error) (int, string) {
	switch {
	case services.IsNotFound(err):
		return fiber.StatusNotFound, err.Error()
	case services.IsForbidden(err):
		return fiber.StatusForbidden, err.Error()
	case services.IsValidation(err):
		return fiber.StatusBadRequest, err.Error()
	case services.IsDuplicate(err):
		return fiber.StatusConflict, err.Error()
	default:
		logger.Error("Unexpected service error", err)
		return fiber.StatusInternalServerError, "Database error"
	}
}

func (pc *ParcelController) sendServiceError(c *fiber.Ctx, err error) error {
	status, msg := serviceErrorStatus(err)
	return pc.sendResponseWithLog(c, status, types.ApiResponse{
		Status:  status,
		Message: msg,
		Data:    nil,
	})
}

func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(param), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// Store handles creating a new parcel
func (pc *ParcelController) Store(c *fiber.Ctx) error {
	var request parcelTypes.StoreParcelRequest

	// Parse request body
	if err := c.BodyParser(&request); err != nil {
		response := types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request format",
			Data:    nil,
		}
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, response)
	}

	if err := request.Validate(); err != nil {
		response := types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Data:    nil,
		}
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, response)
	}

	created, err := pc.Service.Create(&request)
	if err != nil {
		return pc.sendServiceError(c, err)
	}

	logger.Success("Parcel created successfully. Tracking code: " + created.TrackingCode)
	response := types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Parcel created successfully",
		Data:    parcelTypes.ToResponse(created),
	}
	return pc.sendResponseWithLog(c, fiber.StatusCreated, response)
}

// Index returns one page of parcels
func (pc *ParcelController) Index(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	sort := c.Query("sort")

	parcels, total, err := pc.Service.List(page, limit, sort)
	if err != nil {
		return pc.sendServiceError(c, err)
	}

	lastPage := total / int64(limit)
	if total%int64(limit) != 0 {
		lastPage++
	}

	response := types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Parcels retrieved successfully",
		Data: types.PaginatedData{
			Data:     parcelTypes.ToResponseList(parcels),
			Total:    total,
			Page:     page,
			Limit:    limit,
			LastPage: lastPage,
		},
	}
	return pc.sendResponseWithLog(c, fiber.StatusOK, response)
}

// Show returns a single parcel by id
func (pc *ParcelController) Show(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		response := types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid parcel id",
			Data:    nil,
		}
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, response)
	}

	found, err := pc.Service.GetByID(id)
	if err != nil {
		return pc.sendServiceError(c, err)
	}

	response := types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Parcel retrieved successfully",
		Data:    parcelTypes.ToResponse(found),
	}
	return pc.sendResponseWithLog(c, fiber.StatusOK, response)
}

// Update applies a partial update to a parcel
func (pc *ParcelController) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		response := types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid parcel id",
			Data:    nil,
		}
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, response)
	}

	var request parcelTypes.UpdateParcelRequest
	if err := c.BodyParser(&request); err != nil {
		response := types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request format",
			Data:    nil,
		}
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, response)
	}

	if err := request.Validate(); err != nil {
		response := types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Data:    nil,
		}
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, response)
	}

	updated, err := pc.Service.Update(id, &request)
	if err != nil {
		return pc.sendServiceError(c, err)
	}

	response := types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Parcel updated successfully",
		Data:    parcelTypes.ToResponse(updated),
	}
	return pc.sendResponseWithLog(c, fiber.StatusOK, response)
}

// Destroy deletes a parcel with its line items and history
func (pc *ParcelController) Destroy(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		response := types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid parcel id",
			Data:    nil,
		}
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, response)
	}

	if err := pc.Service.Delete(id); err != nil {
		return pc.sendServiceError(c, err)
	}

	logger.Success("Parcel deleted successfully. ID: " + strconv.FormatUint(uint64(id), 10))
	response := types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Parcel deleted successfully",
		Data:    nil,
	}
	return pc.sendResponseWithLog(c, fiber.StatusOK, response)
}

// UpdateStatus is the delivery person scoped status change
func (pc *ParcelController) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		response := types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid parcel id",
			Data:    nil,
		}
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, response)
	}

	var request parcelTypes.UpdateStatusRequest
	if err := c.BodyParser(&request); err != nil {
		response := types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request format",
			Data:    nil,
		}
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, response)
	}

	if err := request.Validate(); err != nil {
		response := types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Data:    nil,
		}
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, response)
	}

	userUUID := middleware.GetUserUUID(c)
	if userUUID == "" {
		response := types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User UUID not found in token",
			Data:    nil,
		}
		return pc.sendResponseWithLog(c, fiber.StatusUnauthorized, response)
	}

	updated, err := pc.Service.UpdateStatusAsDeliveryPerson(id, request.Status, userUUID)
	if err != nil {
		return pc.sendServiceError(c, err)
	}

	response := types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Parcel status updated successfully",
		Data:    parcelTypes.ToResponse(updated),
	}
	return pc.sendResponseWithLog(c, fiber.StatusOK, response)
}

// Mine returns the caller's own parcels, scoped by role
func (pc *ParcelController) Mine(c *fiber.Ctx) error {
	userUUID := middleware.GetUserUUID(c)
	if userUUID == "" {
		response := types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User UUID not found in token",
			Data:    nil,
		}
		return pc.sendResponseWithLog(c, fiber.StatusUnauthorized, response)
	}

	var parcels []parcelModel.Parcel
	var err error

	switch middleware.GetUserRole(c) {
	case constants.RoleDeliveryPerson:
		parcels, err = pc.Service.ListForDeliveryPerson(userUUID)
	case constants.RoleClient:
		parcels, err = pc.Service.ListForClient(userUUID)
	default:
		response := types.ApiResponse{
			Status:  fiber.StatusForbidden,
			Message: "Only delivery persons and clients have their own parcels",
			Data:    nil,
		}
		return pc.sendResponseWithLog(c, fiber.StatusForbidden, response)
	}
	if err != nil {
		return pc.sendServiceError(c, err)
	}

	response := types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Parcels retrieved successfully",
		Data:    parcelTypes.ToResponseList(parcels),
	}
	return pc.sendResponseWithLog(c, fiber.StatusOK, response)
}

// Search applies the AND-combined multi-filter with pagination
func (pc *ParcelController) Search(c *fiber.Ctx) error {
	filter := parcelTypes.SearchFilter{
		Status:           parcelModel.ParcelStatus(c.Query("status")),
		Priority:         parcelModel.ParcelPriority(c.Query("priority")),
		ZoneID:           uint(c.QueryInt("zone_id", 0)),
		DestinationCity:  c.Query("destination_city"),
		DeliveryPersonID: uint(c.QueryInt("delivery_person_id", 0)),
		SenderClientID:   uint(c.QueryInt("sender_client_id", 0)),
		RecipientID:      uint(c.QueryInt("recipient_id", 0)),
		UnassignedOnly:   c.QueryBool("unassigned", false),
	}

	if filter.Status != "" && !filter.Status.IsValid() {
		response := types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "status must be one of CREATED, COLLECTED, IN_STOCK, IN_TRANSIT, DELIVERED",
			Data:    nil,
		}
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, response)
	}
	if filter.Priority != "" && !filter.Priority.IsValid() {
		response := types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "priority must be one of NORMAL, HIGH, URGENT, EXPRESS",
			Data:    nil,
		}
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, response)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	parcels, total, err := pc.Service.Search(filter, page, limit, c.Query("sort"))
	if err != nil {
		return pc.sendServiceError(c, err)
	}

	lastPage := total / int64(limit)
	if total%int64(limit) != 0 {
		lastPage++
	}

	response := types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Parcels retrieved successfully",
		Data: types.PaginatedData{
			Data:     parcelTypes.ToResponseList(parcels),
			Total:    total,
			Page:     page,
			Limit:    limit,
			LastPage: lastPage,
		},
	}
	return pc.sendResponseWithLog(c, fiber.StatusOK, response)
}

// HighPriority returns URGENT and EXPRESS parcels that are not delivered yet
func (pc *ParcelController) HighPriority(c *fiber.Ctx) error {
	parcels, err := pc.Service.FindHighPriorityUndelivered()
	if err != nil {
		return pc.sendServiceError(c, err)
	}

	response := types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Parcels retrieved successfully",
		Data:    parcelTypes.ToResponseList(parcels),
	}
	return pc.sendResponseWithLog(c, fiber.StatusOK, response)
}

// Unassigned returns parcels without a delivery person
func (pc *ParcelController) Unassigned(c *fiber.Ctx) error {
	parcels, err := pc.Service.FindUnassigned()
	if err != nil {
		return pc.sendServiceError(c, err)
	}

	response := types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Parcels retrieved successfully",
		Data:    parcelTypes.ToResponseList(parcels),
	}
	return pc.sendResponseWithLog(c, fiber.StatusOK, response)
}

// GroupBy buckets the whole parcel set by one of the supported fields
func (pc *ParcelController) GroupBy(c *fiber.Ctx) error {
	var buckets map[string]int64
	var err error

	switch c.Params("field") {
	case "status":
		buckets, err = pc.Service.GroupByStatus()
	case "priority":
		buckets, err = pc.Service.GroupByPriority()
	case "zone":
		buckets, err = pc.Service.GroupByZone()
	case "city":
		buckets, err = pc.Service.GroupByCity()
	default:
		response := types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "field must be one of status, priority, zone, city",
			Data:    nil,
		}
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, response)
	}
	if err != nil {
		return pc.sendServiceError(c, err)
	}

	response := types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Parcels grouped successfully",
		Data:    buckets,
	}
	return pc.sendResponseWithLog(c, fiber.StatusOK, response)
}

// ShowHistory returns the audit trail of one parcel, oldest first by
// default, newest first with ?order=desc
func (pc *ParcelController) ShowHistory(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		response := types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid parcel id",
			Data:    nil,
		}
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, response)
	}

	var entries []parcelModel.DeliveryHistory
	if c.Query("order") == "desc" {
		entries, err = pc.History.HistoryDesc(id)
	} else {
		entries, err = pc.History.History(id)
	}
	if err != nil {
		return pc.sendServiceError(c, err)
	}

	response := types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Delivery history retrieved successfully",
		Data:    entries,
	}
	return pc.sendResponseWithLog(c, fiber.StatusOK, response)
}

// ShowLatestHistory returns the most recent history entry of one parcel
func (pc *ParcelController) ShowLatestHistory(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		response := types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid parcel id",
			Data:    nil,
		}
		return pc.sendResponseWithLog(c, fiber.StatusBadRequest, response)
	}

	entry, err := pc.History.Latest(id)
	if err != nil {
		return pc.sendServiceError(c, err)
	}

	response := types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Delivery history retrieved successfully",
		Data:    entry,
	}
	return pc.sendResponseWithLog(c, fiber.StatusOK, response)
}
