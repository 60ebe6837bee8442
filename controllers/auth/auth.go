package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"parcel-delivery/constants"
	httpServices "parcel-delivery/httpServices/sso"
	"parcel-delivery/logger"
	senderClientModel "parcel-delivery/models/sender_client"
	"parcel-delivery/types"
	"parcel-delivery/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AuthController struct {
	db             *gorm.DB
	httpService    *httpServices.SSOClient
	loggerInstance *logger.AsyncLogger
}

func NewAuthController(service *httpServices.SSOClient, db *gorm.DB, async_logger *logger.AsyncLogger) *AuthController {
	return &AuthController{httpService: service, db: db, loggerInstance: async_logger}
}

// Helper function to set secure cookies based on environment
func (h *AuthController) setSecureCookie(c *fiber.Ctx, name, value string, maxAge int) {
	isProduction := os.Getenv("APP_ENV") == "production"

	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		HTTPOnly: false,
		Secure:   isProduction, // Only secure in production (HTTPS)
		SameSite: "Strict",
		MaxAge:   maxAge,
		Path:     "/",
	})
}

// syncSenderClient ensures a local sender client record exists for a CLIENT user.
func (h *AuthController) syncSenderClient(user types.AuthUser, address string) {
	if user.UUID == "" {
		return
	}

	var existing senderClientModel.SenderClient
	result := h.db.Where("user_id = ?", user.UUID).First(&existing)
	if result.Error == nil {
		return
	}

	phone := user.Phone
	if phone == "" {
		phone = user.PhoneNumber
	}

	newClient := senderClientModel.SenderClient{
		Name:    user.Username,
		Phone:   phone,
		Address: address,
		UserID:  user.UUID,
	}
	if user.LegalName != nil && *user.LegalName != "" {
		newClient.Name = *user.LegalName
	}
	if user.Email != nil {
		newClient.Email = *user.Email
	}

	if err := h.db.Create(&newClient).Error; err != nil {
		logger.Error("Failed to create sender client in local database", err)
		return
	}
	logger.Success("Sender client created in local database successfully. UserID: " + newClient.UserID)
}

func (h *AuthController) Register(c *fiber.Ctx) error {
	// Parse the request body as JSON
	var req types.RegisterUserRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		response := types.ErrorResponse{
			Message: fmt.Sprintf("Error parsing request body: %v", err),
			Status:  fiber.StatusBadRequest,
		}
		return c.Status(fiber.StatusBadRequest).JSON(response)
	}

	// Validate request
	if err := req.Validate(); err != nil {
		logger.Error(err.Error(), nil)
		response := types.ErrorResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		}
		return c.Status(fiber.StatusBadRequest).JSON(response)
	}

	// Make call to external API through the service
	registerResponse, err := h.httpService.RequestRegisterUser(types.RegisterUserRequest{
		PhoneNumber: req.PhoneNumber,
		Token:       req.Token,
		Password:    req.Password,
		Username:    req.Username,
		Email:       req.Email,
	})
	if err != nil {
		logger.Error("Failed to register user", err)
		return c.Status(fiber.StatusBadGateway).JSON(types.ErrorResponse{
			Message: "Failed to register user",
			Status:  fiber.StatusBadGateway,
		})
	}

	currentTime := time.Now().Format("2006-01-02 03:04:05 PM")

	// If registration was successful, materialize the sender client locally.
	// Registration through this API always creates client accounts.
	if registerResponse.Status == "success" && registerResponse.User.UUID != "" {
		h.syncSenderClient(registerResponse.User, req.Address)
	}

	logEntry := utils.CreateSanitizedLogEntry(c)
	h.loggerInstance.Log(logEntry)

	logger.Success("User registered successfully." + " at " + currentTime)
	return c.Status(fiber.StatusOK).JSON(registerResponse)
}

func (h *AuthController) Login(c *fiber.Ctx) error {
	var req types.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		response := types.ApiResponse{
			Message: fmt.Errorf("Error parsing request body: %v", err).Error(),
			Status:  fiber.StatusBadRequest,
			Data:    nil,
		}
		return c.Status(fiber.StatusBadRequest).JSON(response)
	}

	// Validate request
	if err := req.Validate(); err != nil {
		logger.Error(err.Error(), nil)
		response := types.ApiResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
			Data:    nil,
		}
		return c.Status(fiber.StatusBadRequest).JSON(response)
	}

	// Make call to external API through the service
	loginResponse, err := h.httpService.RequestLoginUser(types.LoginRequest{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		logger.Error("Failed to login user", err)
		return c.Status(fiber.StatusBadGateway).JSON(types.ApiResponse{
			Message: "Failed to login user",
			Status:  fiber.StatusBadGateway,
		})
	}

	currentTime := time.Now().Format("2006-01-02 03:04:05 PM")

	// Client users get a local sender client record on first login
	if loginResponse.Status == "success" && loginResponse.Data.Role == constants.RoleClient {
		h.syncSenderClient(loginResponse.Data, "")
	}

	// Set cookies for access and refresh tokens
	if loginResponse.Access != "" {
		h.setSecureCookie(c, "access", loginResponse.Access, 8*60*60) // 8 hours
	}

	if loginResponse.Refresh != "" {
		h.setSecureCookie(c, "refresh", loginResponse.Refresh, 7*24*60*60) // 7 days
	}

	// Marshal loginResponse to JSON string for logging
	responseBodyStr := ""
	if loginResponse != nil {
		if b, err := json.Marshal(loginResponse); err == nil {
			responseBodyStr = string(b)
		}
	}

	logEntry := utils.CreateSanitizedLogEntryWithCustomBody(c, string(c.Body()), responseBodyStr)
	h.loggerInstance.Log(logEntry)

	logger.Success("User logged in successfully. uuid: " + loginResponse.Data.UUID + " at " + currentTime)
	return c.Status(fiber.StatusOK).JSON(loginResponse)
}

func (h *AuthController) LogOut(c *fiber.Ctx) error {
	// Clear the access and refresh cookies
	h.setSecureCookie(c, "access", "", -1)  // Expire immediately
	h.setSecureCookie(c, "refresh", "", -1) // Expire immediately

	response := types.ApiResponse{
		Message: "Logout successful",
		Status:  fiber.StatusOK,
		Data:    nil,
	}
	logger.Success("Logout successful")
	return c.Status(fiber.StatusOK).JSON(response)
}
