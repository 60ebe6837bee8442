package registry

import (
	deliveryPersonModel "parcel-delivery/models/delivery_person"
	zoneModel "parcel-delivery/models/zone"
	"parcel-delivery/types"
	registryTypes "parcel-delivery/types/registry"

	"github.com/gofiber/fiber/v2"
)

// StoreDeliveryPerson creates a new delivery person record
func (rc *RegistryController) StoreDeliveryPerson(c *fiber.Ctx) error {
	var request registryTypes.StoreDeliveryPersonRequest
	if err := c.BodyParser(&request); err != nil {
		return rc.sendBadRequest(c, "Invalid request body")
	}
	if err := request.Validate(); err != nil {
		return rc.sendBadRequest(c, err.Error())
	}

	if request.ZoneID != nil {
		var zone zoneModel.Zone
		if err := rc.DB.First(&zone, *request.ZoneID).Error; err != nil {
			return rc.sendNotFound(c, "Zone not found")
		}
	}

	person := deliveryPersonModel.DeliveryPerson{
		Name:    request.Name,
		Phone:   request.Phone,
		Vehicle: request.Vehicle,
		UserID:  request.UserID,
		ZoneID:  request.ZoneID,
	}
	// New couriers are available unless the request says otherwise
	person.Available = request.Available == nil || *request.Available

	result := rc.DB.Create(&person)
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return rc.sendResponseWithLog(c, fiber.StatusConflict, types.ApiResponse{
				Status:  fiber.StatusConflict,
				Message: "A delivery person with this phone already exists.",
				Data:    nil,
			})
		}
		return rc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create delivery person",
			Data:    nil,
		})
	}

	return rc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Delivery person created successfully",
		Data:    person,
	})
}

// GetDeliveryPersons returns all delivery persons. Pass ?available=true
// to restrict the list to couriers currently accepting assignments.
func (rc *RegistryController) GetDeliveryPersons(c *fiber.Ctx) error {
	query := rc.DB.Preload("Zone").Order("name asc")
	if c.QueryBool("available", false) {
		query = query.Where("available = ?", true)
	}

	var persons []deliveryPersonModel.DeliveryPerson
	if result := query.Find(&persons); result.Error != nil {
		return rc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to retrieve delivery persons",
			Data:    nil,
		})
	}

	return rc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Delivery persons retrieved successfully",
		Data:    persons,
	})
}

// GetDeliveryPerson returns one delivery person by id
func (rc *RegistryController) GetDeliveryPerson(c *fiber.Ctx) error {
	id, ok := rc.parseID(c)
	if !ok {
		return rc.sendBadRequest(c, "Invalid delivery person id")
	}

	var person deliveryPersonModel.DeliveryPerson
	if err := rc.DB.Preload("Zone").First(&person, id).Error; err != nil {
		return rc.sendNotFound(c, "Delivery person not found")
	}

	return rc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Delivery person retrieved successfully",
		Data:    person,
	})
}

// UpdateDeliveryPerson applies a partial update, including availability
// toggles and zone reassignment
func (rc *RegistryController) UpdateDeliveryPerson(c *fiber.Ctx) error {
	id, ok := rc.parseID(c)
	if !ok {
		return rc.sendBadRequest(c, "Invalid delivery person id")
	}

	var request registryTypes.UpdateDeliveryPersonRequest
	if err := c.BodyParser(&request); err != nil {
		return rc.sendBadRequest(c, "Invalid request body")
	}
	if err := request.Validate(); err != nil {
		return rc.sendBadRequest(c, err.Error())
	}

	var person deliveryPersonModel.DeliveryPerson
	if err := rc.DB.First(&person, id).Error; err != nil {
		return rc.sendNotFound(c, "Delivery person not found")
	}

	updates := map[string]interface{}{}
	if request.Name != nil {
		updates["name"] = *request.Name
	}
	if request.Phone != nil {
		updates["phone"] = *request.Phone
	}
	if request.Vehicle != nil {
		updates["vehicle"] = *request.Vehicle
	}
	if request.Available != nil {
		updates["available"] = *request.Available
	}
	if request.UserID != nil {
		updates["user_id"] = *request.UserID
	}
	if request.ZoneID != nil {
		var zone zoneModel.Zone
		if err := rc.DB.First(&zone, *request.ZoneID).Error; err != nil {
			return rc.sendNotFound(c, "Zone not found")
		}
		updates["zone_id"] = zone.ID
	}

	if len(updates) > 0 {
		if err := rc.DB.Model(&person).Updates(updates).Error; err != nil {
			if isDuplicateError(err) {
				return rc.sendResponseWithLog(c, fiber.StatusConflict, types.ApiResponse{
					Status:  fiber.StatusConflict,
					Message: "A delivery person with this phone already exists.",
					Data:    nil,
				})
			}
			return rc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Failed to update delivery person",
				Data:    nil,
			})
		}
	}

	return rc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Delivery person updated successfully",
		Data:    person,
	})
}

// DestroyDeliveryPerson deletes a delivery person. Assigned parcels fall
// back to unassigned through the SET NULL foreign key.
func (rc *RegistryController) DestroyDeliveryPerson(c *fiber.Ctx) error {
	id, ok := rc.parseID(c)
	if !ok {
		return rc.sendBadRequest(c, "Invalid delivery person id")
	}

	var person deliveryPersonModel.DeliveryPerson
	if err := rc.DB.First(&person, id).Error; err != nil {
		return rc.sendNotFound(c, "Delivery person not found")
	}

	if err := rc.DB.Delete(&person).Error; err != nil {
		return rc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to delete delivery person",
			Data:    nil,
		})
	}

	return rc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Delivery person deleted successfully",
		Data:    nil,
	})
}
