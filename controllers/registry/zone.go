package registry

import (
	zoneModel "parcel-delivery/models/zone"
	"parcel-delivery/types"
	registryTypes "parcel-delivery/types/registry"

	"github.com/gofiber/fiber/v2"
)

// StoreZone creates a new delivery zone
func (rc *RegistryController) StoreZone(c *fiber.Ctx) error {
	var request registryTypes.StoreZoneRequest
	if err := c.BodyParser(&request); err != nil {
		return rc.sendBadRequest(c, "Invalid request body")
	}
	if err := request.Validate(); err != nil {
		return rc.sendBadRequest(c, err.Error())
	}

	zone := zoneModel.Zone{
		Name:        request.Name,
		Description: request.Description,
	}

	result := rc.DB.Create(&zone)
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return rc.sendResponseWithLog(c, fiber.StatusConflict, types.ApiResponse{
				Status:  fiber.StatusConflict,
				Message: "A zone with this name already exists.",
				Data:    nil,
			})
		}
		return rc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create zone",
			Data:    nil,
		})
	}

	return rc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Zone created successfully",
		Data:    zone,
	})
}

// GetZones returns all delivery zones
func (rc *RegistryController) GetZones(c *fiber.Ctx) error {
	var zones []zoneModel.Zone
	if result := rc.DB.Order("name asc").Find(&zones); result.Error != nil {
		return rc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to retrieve zones",
			Data:    nil,
		})
	}

	return rc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Zones retrieved successfully",
		Data:    zones,
	})
}

// GetZone returns one delivery zone by id
func (rc *RegistryController) GetZone(c *fiber.Ctx) error {
	id, ok := rc.parseID(c)
	if !ok {
		return rc.sendBadRequest(c, "Invalid zone id")
	}

	var zone zoneModel.Zone
	if err := rc.DB.First(&zone, id).Error; err != nil {
		return rc.sendNotFound(c, "Zone not found")
	}

	return rc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Zone retrieved successfully",
		Data:    zone,
	})
}

// UpdateZone applies a partial update to a zone
func (rc *RegistryController) UpdateZone(c *fiber.Ctx) error {
	id, ok := rc.parseID(c)
	if !ok {
		return rc.sendBadRequest(c, "Invalid zone id")
	}

	var request registryTypes.UpdateZoneRequest
	if err := c.BodyParser(&request); err != nil {
		return rc.sendBadRequest(c, "Invalid request body")
	}
	if err := request.Validate(); err != nil {
		return rc.sendBadRequest(c, err.Error())
	}

	var zone zoneModel.Zone
	if err := rc.DB.First(&zone, id).Error; err != nil {
		return rc.sendNotFound(c, "Zone not found")
	}

	updates := map[string]interface{}{}
	if request.Name != nil {
		updates["name"] = *request.Name
	}
	if request.Description != nil {
		updates["description"] = *request.Description
	}

	if len(updates) > 0 {
		if err := rc.DB.Model(&zone).Updates(updates).Error; err != nil {
			if isDuplicateError(err) {
				return rc.sendResponseWithLog(c, fiber.StatusConflict, types.ApiResponse{
					Status:  fiber.StatusConflict,
					Message: "A zone with this name already exists.",
					Data:    nil,
				})
			}
			return rc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Failed to update zone",
				Data:    nil,
			})
		}
	}

	return rc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Zone updated successfully",
		Data:    zone,
	})
}

// DestroyZone deletes a zone. Parcels and delivery persons referencing
// it fall back to NULL through the foreign key constraints.
func (rc *RegistryController) DestroyZone(c *fiber.Ctx) error {
	id, ok := rc.parseID(c)
	if !ok {
		return rc.sendBadRequest(c, "Invalid zone id")
	}

	var zone zoneModel.Zone
	if err := rc.DB.First(&zone, id).Error; err != nil {
		return rc.sendNotFound(c, "Zone not found")
	}

	if err := rc.DB.Delete(&zone).Error; err != nil {
		return rc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to delete zone",
			Data:    nil,
		})
	}

	return rc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Zone deleted successfully",
		Data:    nil,
	})
}
