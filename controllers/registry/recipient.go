package registry

import (
	recipientModel "parcel-delivery/models/recipient"
	"parcel-delivery/types"
	registryTypes "parcel-delivery/types/registry"

	"github.com/gofiber/fiber/v2"
)

// StoreRecipient creates a new recipient record
func (rc *RegistryController) StoreRecipient(c *fiber.Ctx) error {
	var request registryTypes.StoreRecipientRequest
	if err := c.BodyParser(&request); err != nil {
		return rc.sendBadRequest(c, "Invalid request body")
	}
	if err := request.Validate(); err != nil {
		return rc.sendBadRequest(c, err.Error())
	}

	recipient := recipientModel.Recipient{
		Name:    request.Name,
		Phone:   request.Phone,
		Address: request.Address,
		City:    request.City,
	}

	if result := rc.DB.Create(&recipient); result.Error != nil {
		return rc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create recipient",
			Data:    nil,
		})
	}

	return rc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Recipient created successfully",
		Data:    recipient,
	})
}

// GetRecipients returns all recipients
func (rc *RegistryController) GetRecipients(c *fiber.Ctx) error {
	var recipients []recipientModel.Recipient
	if result := rc.DB.Order("name asc").Find(&recipients); result.Error != nil {
		return rc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to retrieve recipients",
			Data:    nil,
		})
	}

	return rc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Recipients retrieved successfully",
		Data:    recipients,
	})
}

// GetRecipient returns one recipient by id
func (rc *RegistryController) GetRecipient(c *fiber.Ctx) error {
	id, ok := rc.parseID(c)
	if !ok {
		return rc.sendBadRequest(c, "Invalid recipient id")
	}

	var recipient recipientModel.Recipient
	if err := rc.DB.First(&recipient, id).Error; err != nil {
		return rc.sendNotFound(c, "Recipient not found")
	}

	return rc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Recipient retrieved successfully",
		Data:    recipient,
	})
}

// UpdateRecipient applies a partial update to a recipient
func (rc *RegistryController) UpdateRecipient(c *fiber.Ctx) error {
	id, ok := rc.parseID(c)
	if !ok {
		return rc.sendBadRequest(c, "Invalid recipient id")
	}

	var request registryTypes.UpdateRecipientRequest
	if err := c.BodyParser(&request); err != nil {
		return rc.sendBadRequest(c, "Invalid request body")
	}
	if err := request.Validate(); err != nil {
		return rc.sendBadRequest(c, err.Error())
	}

	var recipient recipientModel.Recipient
	if err := rc.DB.First(&recipient, id).Error; err != nil {
		return rc.sendNotFound(c, "Recipient not found")
	}

	updates := map[string]interface{}{}
	if request.Name != nil {
		updates["name"] = *request.Name
	}
	if request.Phone != nil {
		updates["phone"] = *request.Phone
	}
	if request.Address != nil {
		updates["address"] = *request.Address
	}
	if request.City != nil {
		updates["city"] = *request.City
	}

	if len(updates) > 0 {
		if err := rc.DB.Model(&recipient).Updates(updates).Error; err != nil {
			return rc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Failed to update recipient",
				Data:    nil,
			})
		}
	}

	return rc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Recipient updated successfully",
		Data:    recipient,
	})
}

// DestroyRecipient deletes a recipient. The foreign key on parcels
// restricts deletion while any parcel still references it.
func (rc *RegistryController) DestroyRecipient(c *fiber.Ctx) error {
	id, ok := rc.parseID(c)
	if !ok {
		return rc.sendBadRequest(c, "Invalid recipient id")
	}

	var recipient recipientModel.Recipient
	if err := rc.DB.First(&recipient, id).Error; err != nil {
		return rc.sendNotFound(c, "Recipient not found")
	}

	if err := rc.DB.Delete(&recipient).Error; err != nil {
		return rc.sendResponseWithLog(c, fiber.StatusConflict, types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "Recipient is referenced by existing parcels and cannot be deleted",
			Data:    nil,
		})
	}

	return rc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Recipient deleted successfully",
		Data:    nil,
	})
}
