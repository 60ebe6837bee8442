package registry

import (
	senderClientModel "parcel-delivery/models/sender_client"
	"parcel-delivery/types"
	registryTypes "parcel-delivery/types/registry"

	"github.com/gofiber/fiber/v2"
)

// StoreSenderClient creates a new sender client record
func (rc *RegistryController) StoreSenderClient(c *fiber.Ctx) error {
	var request registryTypes.StoreSenderClientRequest
	if err := c.BodyParser(&request); err != nil {
		return rc.sendBadRequest(c, "Invalid request body")
	}
	if err := request.Validate(); err != nil {
		return rc.sendBadRequest(c, err.Error())
	}

	client := senderClientModel.SenderClient{
		Name:    request.Name,
		Email:   request.Email,
		Phone:   request.Phone,
		Address: request.Address,
		UserID:  request.UserID,
	}

	result := rc.DB.Create(&client)
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return rc.sendResponseWithLog(c, fiber.StatusConflict, types.ApiResponse{
				Status:  fiber.StatusConflict,
				Message: "A sender client with this email already exists.",
				Data:    nil,
			})
		}
		return rc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create sender client",
			Data:    nil,
		})
	}

	return rc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Sender client created successfully",
		Data:    client,
	})
}

// GetSenderClients returns all sender clients
func (rc *RegistryController) GetSenderClients(c *fiber.Ctx) error {
	var clients []senderClientModel.SenderClient
	if result := rc.DB.Order("name asc").Find(&clients); result.Error != nil {
		return rc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to retrieve sender clients",
			Data:    nil,
		})
	}

	return rc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Sender clients retrieved successfully",
		Data:    clients,
	})
}

// GetSenderClient returns one sender client by id
func (rc *RegistryController) GetSenderClient(c *fiber.Ctx) error {
	id, ok := rc.parseID(c)
	if !ok {
		return rc.sendBadRequest(c, "Invalid sender client id")
	}

	var client senderClientModel.SenderClient
	if err := rc.DB.First(&client, id).Error; err != nil {
		return rc.sendNotFound(c, "Sender client not found")
	}

	return rc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Sender client retrieved successfully",
		Data:    client,
	})
}

// UpdateSenderClient applies a partial update to a sender client
func (rc *RegistryController) UpdateSenderClient(c *fiber.Ctx) error {
	id, ok := rc.parseID(c)
	if !ok {
		return rc.sendBadRequest(c, "Invalid sender client id")
	}

	var request registryTypes.UpdateSenderClientRequest
	if err := c.BodyParser(&request); err != nil {
		return rc.sendBadRequest(c, "Invalid request body")
	}
	if err := request.Validate(); err != nil {
		return rc.sendBadRequest(c, err.Error())
	}

	var client senderClientModel.SenderClient
	if err := rc.DB.First(&client, id).Error; err != nil {
		return rc.sendNotFound(c, "Sender client not found")
	}

	updates := map[string]interface{}{}
	if request.Name != nil {
		updates["name"] = *request.Name
	}
	if request.Email != nil {
		updates["email"] = *request.Email
	}
	if request.Phone != nil {
		updates["phone"] = *request.Phone
	}
	if request.Address != nil {
		updates["address"] = *request.Address
	}
	if request.UserID != nil {
		updates["user_id"] = *request.UserID
	}

	if len(updates) > 0 {
		if err := rc.DB.Model(&client).Updates(updates).Error; err != nil {
			if isDuplicateError(err) {
				return rc.sendResponseWithLog(c, fiber.StatusConflict, types.ApiResponse{
					Status:  fiber.StatusConflict,
					Message: "A sender client with this email already exists.",
					Data:    nil,
				})
			}
			return rc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Failed to update sender client",
				Data:    nil,
			})
		}
	}

	return rc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Sender client updated successfully",
		Data:    client,
	})
}

// DestroySenderClient deletes a sender client. The foreign key on
// parcels restricts deletion while any parcel still references it.
func (rc *RegistryController) DestroySenderClient(c *fiber.Ctx) error {
	id, ok := rc.parseID(c)
	if !ok {
		return rc.sendBadRequest(c, "Invalid sender client id")
	}

	var client senderClientModel.SenderClient
	if err := rc.DB.First(&client, id).Error; err != nil {
		return rc.sendNotFound(c, "Sender client not found")
	}

	if err := rc.DB.Delete(&client).Error; err != nil {
		return rc.sendResponseWithLog(c, fiber.StatusConflict, types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "Sender client is referenced by existing parcels and cannot be deleted",
			Data:    nil,
		})
	}

	return rc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Sender client deleted successfully",
		Data:    nil,
	})
}
