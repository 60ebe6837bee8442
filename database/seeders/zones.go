package seeders

import (
	"log"

	zoneModel "parcel-delivery/models/zone"

	"gorm.io/gorm"
)

func SeedZones(db *gorm.DB) {
	log.Printf("🔍 Checking delivery zones data integrity...")

	zones := []zoneModel.Zone{
		{Name: "Centre-Ville", Description: "Downtown core and business district"},
		{Name: "Nord", Description: "Northern residential districts"},
		{Name: "Sud", Description: "Southern residential districts"},
		{Name: "Est", Description: "Eastern industrial area"},
		{Name: "Ouest", Description: "Western suburbs"},
		{Name: "Banlieue", Description: "Outer suburban ring"},
	}

	var seeded int
	for _, z := range zones {
		var existing zoneModel.Zone
		err := db.Where("name = ?", z.Name).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			if err := db.Create(&z).Error; err != nil {
				log.Printf("❌ Failed to seed zone %s: %v", z.Name, err)
				continue
			}
			seeded++
		}
	}

	if seeded > 0 {
		log.Printf("✅ Seeded %d delivery zones", seeded)
	} else {
		log.Printf("✅ Delivery zones already up to date")
	}
}
