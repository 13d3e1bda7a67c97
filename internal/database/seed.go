package database

import (
	"log"

	"github.com/jinzhu/gorm"
)

// SeedDemo populates an empty database with a demo restaurant and menu
// so the server is usable straight after first start.
func SeedDemo(db *gorm.DB) error {
	var count int
	if err := db.Model(&Restaurant{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Println("Seeding demo restaurant and menu")

	restaurant := Restaurant{
		Slug:                 "demo",
		Name:                 "Trattoria Demo",
		UpsellAggressiveness: 0.5,
	}
	if err := db.Create(&restaurant).Error; err != nil {
		return err
	}

	menu := []MenuItem{
		{ExternalID: "m1", Name: "Margherita Pizza", Category: "main", Price: 16.99, DietaryTags: "vegetarian", Available: true},
		{ExternalID: "m2", Name: "Large Margherita Pizza", Category: "main", Price: 21.99, DietaryTags: "vegetarian", Available: true},
		{ExternalID: "m3", Name: "Pepperoni Pizza", Category: "main", Price: 18.49, Available: true},
		{ExternalID: "m4", Name: "Spaghetti Carbonara", Category: "main", Price: 15.50, Available: true},
		{ExternalID: "m5", Name: "Caesar Salad", Category: "side", Price: 9.25, DietaryTags: "healthy", Available: true},
		{ExternalID: "m6", Name: "Garlic Bread", Category: "side", Price: 5.75, DietaryTags: "vegetarian", Available: true},
		{ExternalID: "m7", Name: "Tiramisu", Category: "dessert", Price: 7.95, DietaryTags: "vegetarian", Available: true},
		{ExternalID: "m8", Name: "Cola", Category: "drink", Price: 3.25, DietaryTags: "vegan", Available: true},
		{ExternalID: "m9", Name: "Sparkling Water", Category: "drink", Price: 2.75, DietaryTags: "vegan,healthy", Available: true},
		{ExternalID: "m10", Name: "Vegan Buddha Bowl", Category: "main", Price: 14.25, DietaryTags: "vegan,gluten-free,healthy", Available: true},
	}
	for _, item := range menu {
		item.RestaurantID = restaurant.ID
		if err := db.Create(&item).Error; err != nil {
			return err
		}
	}
	return nil
}
