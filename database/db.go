package database

import (
	"fmt"
	"os"

	"parcel-delivery/logger"
	deliveryPersonModel "parcel-delivery/models/delivery_person"
	logModel "parcel-delivery/models/log"
	parcelModel "parcel-delivery/models/parcel"
	productModel "parcel-delivery/models/product"
	recipientModel "parcel-delivery/models/recipient"
	senderClientModel "parcel-delivery/models/sender_client"
	zoneModel "parcel-delivery/models/zone"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection with auto migration and indexing
func InitDB() (*gorm.DB, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	// Get database configuration from environment variables
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	user := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE") // Optional: "disable", "require", etc.

	// Set default sslmode if not provided
	if sslmode == "" {
		sslmode = "disable"
	}

	// Build PostgreSQL DSN string
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, database, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := autoMigrate(); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	// Handle foreign key constraints after migrations
	if err := createForeignKeyConstraints(); err != nil {
		logger.Error("Failed to create foreign key constraints", err)
		return nil, err
	}
	logger.Success("All foreign key constraints created successfully")

	// Create indexes for better performance
	if err := createIndexes(); err != nil {
		logger.Error("Failed to create indexes", err)
		return nil, err
	}
	logger.Success("All indexes created successfully")

	return DB, nil
}

// autoMigrate runs auto migration for all models in dependency order.
func autoMigrate() error {
	// Stage 1: registries with no dependencies
	stage1Models := []interface{}{
		&zoneModel.Zone{},
		&productModel.Product{},
		&senderClientModel.SenderClient{},
		&recipientModel.Recipient{},
	}

	for _, model := range stage1Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: models referencing stage 1
	stage2Models := []interface{}{
		&deliveryPersonModel.DeliveryPerson{},
		&parcelModel.Parcel{},
	}

	for _, model := range stage2Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 3: remaining models
	remainingModels := []interface{}{
		&parcelModel.ParcelProduct{},
		&parcelModel.DeliveryHistory{},
		// Logging
		&logModel.Log{},
	}

	for _, model := range remainingModels {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// createIndexes creates additional indexes for better performance
func createIndexes() error {
	// Parcel indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_parcels_status ON parcels(status)").Error; err != nil {
		return fmt.Errorf("failed to create parcel status index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_parcels_priority ON parcels(priority)").Error; err != nil {
		return fmt.Errorf("failed to create parcel priority index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_parcels_destination_city ON parcels(destination_city)").Error; err != nil {
		return fmt.Errorf("failed to create parcel destination_city index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_parcels_created_at ON parcels(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create parcel created_at index: %w", err)
	}

	// Delivery history indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_delivery_histories_parcel_changed ON delivery_histories(parcel_id, changed_at)").Error; err != nil {
		return fmt.Errorf("failed to create delivery history parcel_id/changed_at index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_delivery_histories_status ON delivery_histories(status)").Error; err != nil {
		return fmt.Errorf("failed to create delivery history status index: %w", err)
	}

	// Registry binding indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_sender_clients_user_id ON sender_clients(user_id)").Error; err != nil {
		return fmt.Errorf("failed to create sender client user_id index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_delivery_people_user_id ON delivery_people(user_id)").Error; err != nil {
		return fmt.Errorf("failed to create delivery person user_id index: %w", err)
	}

	// Log indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_method ON logs(method)").Error; err != nil {
		return fmt.Errorf("failed to create log method index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_status_code ON logs(status_code)").Error; err != nil {
		return fmt.Errorf("failed to create log status_code index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create log created_at index: %w", err)
	}

	return nil
}

// createForeignKeyConstraints creates foreign key constraints after auto migration
func createForeignKeyConstraints() error {
	// Define constraints with their names for checking existence
	constraints := []struct {
		name string
		sql  string
	}{
		{
			name: "fk_parcels_sender_client",
			sql: `ALTER TABLE parcels ADD CONSTRAINT fk_parcels_sender_client
				  FOREIGN KEY (sender_client_id) REFERENCES sender_clients(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_parcels_recipient",
			sql: `ALTER TABLE parcels ADD CONSTRAINT fk_parcels_recipient
				  FOREIGN KEY (recipient_id) REFERENCES recipients(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_parcels_delivery_person",
			sql: `ALTER TABLE parcels ADD CONSTRAINT fk_parcels_delivery_person
				  FOREIGN KEY (delivery_person_id) REFERENCES delivery_people(id)
				  ON UPDATE CASCADE ON DELETE SET NULL`,
		},
		{
			name: "fk_parcels_zone",
			sql: `ALTER TABLE parcels ADD CONSTRAINT fk_parcels_zone
				  FOREIGN KEY (zone_id) REFERENCES zones(id)
				  ON UPDATE CASCADE ON DELETE SET NULL`,
		},
		{
			name: "fk_parcel_products_parcel",
			sql: `ALTER TABLE parcel_products ADD CONSTRAINT fk_parcel_products_parcel
				  FOREIGN KEY (parcel_id) REFERENCES parcels(id)
				  ON UPDATE CASCADE ON DELETE CASCADE`,
		},
		{
			name: "fk_parcel_products_product",
			sql: `ALTER TABLE parcel_products ADD CONSTRAINT fk_parcel_products_product
				  FOREIGN KEY (product_id) REFERENCES products(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_delivery_histories_parcel",
			sql: `ALTER TABLE delivery_histories ADD CONSTRAINT fk_delivery_histories_parcel
				  FOREIGN KEY (parcel_id) REFERENCES parcels(id)
				  ON UPDATE CASCADE ON DELETE CASCADE`,
		},
		{
			name: "fk_delivery_people_zone",
			sql: `ALTER TABLE delivery_people ADD CONSTRAINT fk_delivery_people_zone
				  FOREIGN KEY (zone_id) REFERENCES zones(id)
				  ON UPDATE CASCADE ON DELETE SET NULL`,
		},
	}

	for _, constraint := range constraints {
		// Check if constraint already exists
		var exists bool
		checkSQL := `
			SELECT EXISTS (
				SELECT 1 FROM information_schema.table_constraints
				WHERE constraint_name = $1
			)
		`

		err := DB.Raw(checkSQL, constraint.name).Scan(&exists).Error
		if err != nil {
			logger.Warning(fmt.Sprintf("Failed to check constraint existence: %s - Error: %v", constraint.name, err))
			continue
		}

		if !exists {
			if err := DB.Exec(constraint.sql).Error; err != nil {
				logger.Warning(fmt.Sprintf("Failed to create constraint: %s - Error: %v", constraint.name, err))
			} else {
				logger.Success(fmt.Sprintf("Successfully created constraint: %s", constraint.name))
			}
		} else {
			logger.Debug(fmt.Sprintf("Constraint already exists: %s", constraint.name))
		}
	}

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
