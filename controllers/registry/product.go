package registry

import (
	productModel "parcel-delivery/models/product"
	"parcel-delivery/types"
	registryTypes "parcel-delivery/types/registry"

	"github.com/gofiber/fiber/v2"
)

// StoreProduct creates a new catalog product
func (rc *RegistryController) StoreProduct(c *fiber.Ctx) error {
	var request registryTypes.StoreProductRequest
	if err := c.BodyParser(&request); err != nil {
		return rc.sendBadRequest(c, "Invalid request body")
	}
	if err := request.Validate(); err != nil {
		return rc.sendBadRequest(c, err.Error())
	}

	product := productModel.Product{
		Name:        request.Name,
		Description: request.Description,
		Price:       request.Price,
	}

	result := rc.DB.Create(&product)
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return rc.sendResponseWithLog(c, fiber.StatusConflict, types.ApiResponse{
				Status:  fiber.StatusConflict,
				Message: "A product with this name already exists.",
				Data:    nil,
			})
		}
		return rc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create product",
			Data:    nil,
		})
	}

	return rc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Product created successfully",
		Data:    product,
	})
}

// GetProducts returns all catalog products
func (rc *RegistryController) GetProducts(c *fiber.Ctx) error {
	var products []productModel.Product
	if result := rc.DB.Order("name asc").Find(&products); result.Error != nil {
		return rc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to retrieve products",
			Data:    nil,
		})
	}

	return rc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Products retrieved successfully",
		Data:    products,
	})
}

// GetProduct returns one catalog product by id
func (rc *RegistryController) GetProduct(c *fiber.Ctx) error {
	id, ok := rc.parseID(c)
	if !ok {
		return rc.sendBadRequest(c, "Invalid product id")
	}

	var product productModel.Product
	if err := rc.DB.First(&product, id).Error; err != nil {
		return rc.sendNotFound(c, "Product not found")
	}

	return rc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Product retrieved successfully",
		Data:    product,
	})
}

// UpdateProduct applies a partial update. The catalog price change never
// rewrites snapshot prices already stored on parcel line items.
func (rc *RegistryController) UpdateProduct(c *fiber.Ctx) error {
	id, ok := rc.parseID(c)
	if !ok {
		return rc.sendBadRequest(c, "Invalid product id")
	}

	var request registryTypes.UpdateProductRequest
	if err := c.BodyParser(&request); err != nil {
		return rc.sendBadRequest(c, "Invalid request body")
	}
	if err := request.Validate(); err != nil {
		return rc.sendBadRequest(c, err.Error())
	}

	var product productModel.Product
	if err := rc.DB.First(&product, id).Error; err != nil {
		return rc.sendNotFound(c, "Product not found")
	}

	updates := map[string]interface{}{}
	if request.Name != nil {
		updates["name"] = *request.Name
	}
	if request.Description != nil {
		updates["description"] = *request.Description
	}
	if request.Price != nil {
		updates["price"] = *request.Price
	}

	if len(updates) > 0 {
		if err := rc.DB.Model(&product).Updates(updates).Error; err != nil {
			if isDuplicateError(err) {
				return rc.sendResponseWithLog(c, fiber.StatusConflict, types.ApiResponse{
					Status:  fiber.StatusConflict,
					Message: "A product with this name already exists.",
					Data:    nil,
				})
			}
			return rc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Failed to update product",
				Data:    nil,
			})
		}
	}

	return rc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Product updated successfully",
		Data:    product,
	})
}

// DestroyProduct deletes a product. The foreign key on parcel line items
// restricts deletion while any parcel still references it.
func (rc *RegistryController) DestroyProduct(c *fiber.Ctx) error {
	id, ok := rc.parseID(c)
	if !ok {
		return rc.sendBadRequest(c, "Invalid product id")
	}

	var product productModel.Product
	if err := rc.DB.First(&product, id).Error; err != nil {
		return rc.sendNotFound(c, "Product not found")
	}

	if err := rc.DB.Delete(&product).Error; err != nil {
		return rc.sendResponseWithLog(c, fiber.StatusConflict, types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "Product is referenced by existing parcels and cannot be deleted",
			Data:    nil,
		})
	}

	return rc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Product deleted successfully",
		Data:    nil,
	})
}
