package routes

import (
	"os"

	"parcel-delivery/constants"
	"parcel-delivery/controllers/auth"
	"parcel-delivery/controllers/history"
	"parcel-delivery/controllers/parcel"
	"parcel-delivery/controllers/registry"
	"parcel-delivery/controllers/stats"
	httpServices "parcel-delivery/httpServices/sso"
	"parcel-delivery/logger"
	"parcel-delivery/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	ssoClient := httpServices.NewClient(os.Getenv("SSO_BASE_URL"))
	asyncLogger := logger.NewAsyncLogger(db)
	authController := auth.NewAuthController(ssoClient, db, asyncLogger)
	parcelController := parcel.NewParcelController(db, asyncLogger)
	historyController := history.NewHistoryController(db, asyncLogger)
	statsController := stats.NewStatsController(db, asyncLogger)
	registryController := registry.NewRegistryController(db, asyncLogger)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	// Index route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "parcel-delivery",
			"status":  "ok",
		})
	})

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api")
	api.Post("/login", authController.Login)
	api.Post("/register", authController.Register)

	/*=============================================================================
	| Protected Routes
	===============================================================================*/
	authGroup := api.Group("/auth").Use(middleware.RequireAnyPermission())
	authGroup.Post("/logout", authController.LogOut)

	/*=============================================================================
	| Parcel Routes
	===============================================================================*/
	parcelGroup := api.Group("/parcels")

	parcelGroup.Post("/", middleware.RequirePermissions(
		constants.PermSuperAdminFull,
		constants.PermManagerFull,
	), parcelController.Store)

	parcelGroup.Get("/", middleware.RequirePermissions(
		constants.PermSuperAdminFull,
		constants.PermManagerFull,
	), parcelController.Index)

	parcelGroup.Get("/search", middleware.RequirePermissions(
		constants.PermSuperAdminFull,
		constants.PermManagerFull,
	), parcelController.Search)

	parcelGroup.Get("/unassigned", middleware.RequirePermissions(
		constants.PermSuperAdminFull,
		constants.PermManagerFull,
	), parcelController.Unassigned)

	parcelGroup.Get("/high-priority", middleware.RequirePermissions(
		constants.PermSuperAdminFull,
		constants.PermManagerFull,
	), parcelController.HighPriority)

	parcelGroup.Get("/group-by/:field", middleware.RequirePermissions(
		constants.PermSuperAdminFull,
		constants.PermManagerFull,
	), parcelController.GroupBy)

	// Couriers and clients see their own parcels only
	parcelGroup.Get("/mine", middleware.RequirePermissions(
		constants.PermDeliveryPersonFull,
		constants.PermClientFull,
	), parcelController.Mine)

	parcelGroup.Get("/:id", middleware.RequirePermissions(
		constants.PermSuperAdminFull,
		constants.PermManagerFull,
	), parcelController.Show)

	parcelGroup.Put("/:id", middleware.RequirePermissions(
		constants.PermSuperAdminFull,
		constants.PermManagerFull,
	), parcelController.Update)

	parcelGroup.Delete("/:id", middleware.RequirePermissions(
		constants.PermSuperAdminFull,
		constants.PermManagerFull,
	), parcelController.Destroy)

	// Assigned courier status change
	parcelGroup.Patch("/:id/status", middleware.RequirePermissions(
		constants.PermDeliveryPersonFull,
	), parcelController.UpdateStatus)

	parcelGroup.Get("/:id/history", middleware.RequirePermissions(
		constants.PermSuperAdminFull,
		constants.PermManagerFull,
	), parcelController.ShowHistory)

	parcelGroup.Get("/:id/history/latest", middleware.RequirePermissions(
		constants.PermSuperAdminFull,
		constants.PermManagerFull,
	), parcelController.ShowLatestHistory)

	/*=============================================================================
	| Delivery History Routes
	===============================================================================*/
	historyGroup := api.Group("/history")

	historyGroup.Get("/comments", middleware.RequirePermissions(
		constants.PermSuperAdminFull,
		constants.PermManagerFull,
	), historyController.Comments)

	historyGroup.Get("/delivered-today", middleware.RequirePermissions(
		constants.PermSuperAdminFull,
		constants.PermManagerFull,
	), historyController.DeliveredToday)

	historyGroup.Get("/average-delivery-time", middleware.RequirePermissions(
		constants.PermSuperAdminFull,
		constants.PermManagerFull,
	), historyController.AverageDeliveryTime)

	// Deleting ledger entries breaks the audit trail and needs its own permit
	historyGroup.Delete("/:id", middleware.RequirePermissions(
		constants.PermHistoryAdmin,
	), historyController.Destroy)

	/*=============================================================================
	| Statistics Routes
	===============================================================================*/
	statsGroup := api.Group("/statistics")

	statsGroup.Get("/", middleware.RequirePermissions(
		constants.PermSuperAdminFull,
		constants.PermManagerFull,
	), statsController.Global)

	statsGroup.Get("/delivery-persons/:id", middleware.RequirePermissions(
		constants.PermSuperAdminFull,
		constants.PermManagerFull,
	), statsController.DeliveryPerson)

	statsGroup.Get("/zones/:id", middleware.RequirePermissions(
		constants.PermSuperAdminFull,
		constants.PermManagerFull,
	), statsController.Zone)

	/*=============================================================================
	| Registry Routes
	===============================================================================*/
	zoneGroup := api.Group("/zones").Use(middleware.RequirePermissions(
		constants.PermSuperAdminFull,
		constants.PermManagerFull,
	))
	zoneGroup.Post("/", registryController.StoreZone)
	zoneGroup.Get("/", registryController.GetZones)
	zoneGroup.Get("/:id", registryController.GetZone)
	zoneGroup.Put("/:id", registryController.UpdateZone)
	zoneGroup.Delete("/:id", registryController.DestroyZone)

	productGroup := api.Group("/products").Use(middleware.RequirePermissions(
		constants.PermSuperAdminFull,
		constants.PermManagerFull,
	))
	productGroup.Post("/", registryController.StoreProduct)
	productGroup.Get("/", registryController.GetProducts)
	productGroup.Get("/:id", registryController.GetProduct)
	productGroup.Put("/:id", registryController.UpdateProduct)
	productGroup.Delete("/:id", registryController.DestroyProduct)

	senderClientGroup := api.Group("/sender-clients").Use(middleware.RequirePermissions(
		constants.PermSuperAdminFull,
		constants.PermManagerFull,
	))
	senderClientGroup.Post("/", registryController.StoreSenderClient)
	senderClientGroup.Get("/", registryController.GetSenderClients)
	senderClientGroup.Get("/:id", registryController.GetSenderClient)
	senderClientGroup.Put("/:id", registryController.UpdateSenderClient)
	senderClientGroup.Delete("/:id", registryController.DestroySenderClient)

	recipientGroup := api.Group("/recipients").Use(middleware.RequirePermissions(
		constants.PermSuperAdminFull,
		constants.PermManagerFull,
	))
	recipientGroup.Post("/", registryController.StoreRecipient)
	recipientGroup.Get("/", registryController.GetRecipients)
	recipientGroup.Get("/:id", registryController.GetRecipient)
	recipientGroup.Put("/:id", registryController.UpdateRecipient)
	recipientGroup.Delete("/:id", registryController.DestroyRecipient)

	deliveryPersonGroup := api.Group("/delivery-persons").Use(middleware.RequirePermissions(
		constants.PermSuperAdminFull,
		constants.PermManagerFull,
	))
	deliveryPersonGroup.Post("/", registryController.StoreDeliveryPerson)
	deliveryPersonGroup.Get("/", registryController.GetDeliveryPersons)
	deliveryPersonGroup.Get("/:id", registryController.GetDeliveryPerson)
	deliveryPersonGroup.Put("/:id", registryController.UpdateDeliveryPerson)
	deliveryPersonGroup.Delete("/:id", registryController.DestroyDeliveryPerson)
}
