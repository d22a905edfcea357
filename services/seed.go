package services

import (
	"context"
	"fmt"
	"log"

	"github.com/abhiraj-restaurant/restaurant-api/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Demo accounts created by SeedDatabase
const (
	SeedAdminEmail    = "admin@demo.com"
	SeedCustomerEmail = "customer@demo.com"
)

const seedBcryptCost = 12

// SeedResult reports what SeedDatabase created
type SeedResult struct {
	UsersCreated     int `json:"usersCreated"`
	MenuItemsCreated int `json:"menuItemsCreated"`
}

type seedUser struct {
	name     string
	email    string
	phone    string
	password string
	role     string
}

var seedUsers = []seedUser{
	{name: "Admin User", email: SeedAdminEmail, phone: "+1234567890", password: "admin123", role: models.RoleAdmin},
	{name: "Demo Customer", email: SeedCustomerEmail, phone: "+1234567891", password: "password123", role: models.RoleCustomer},
}

const pexels = "https://images.pexels.com/photos/%s?auto=compress&cs=tinysrgb&w=500"

// seedMenu is the demo catalog, inserted only into an empty menu
func seedMenu() []models.MenuItem {
	item := func(name, description string, price float64, category, photo string, vegetarian bool) models.MenuItem {
		return models.MenuItem{
			Name:            name,
			Description:     description,
			Price:           price,
			Category:        category,
			Image:           fmt.Sprintf(pexels, photo),
			IsVegetarian:    vegetarian,
			IsAvailable:     true,
			PreparationTime: DefaultPreparationTime,
		}
	}

	return []models.MenuItem{
		item("Truffle Arancini", "Crispy risotto balls filled with truffle and parmesan, served with aioli", 16.99, models.CategoryStarters, "1640777/pexels-photo-1640777.jpeg", true),
		item("Seared Scallops", "Pan-seared scallops with cauliflower purée and pancetta", 22.99, models.CategoryStarters, "725992/pexels-photo-725992.jpeg", false),
		item("Burrata Caprese", "Fresh burrata with heirloom tomatoes, basil, and balsamic reduction", 18.99, models.CategoryStarters, "1438672/pexels-photo-1438672.jpeg", true),
		item("Grilled Ribeye", "12oz prime ribeye with roasted vegetables and red wine jus", 45.99, models.CategoryMains, "361184/asparagus-steak-veal-steak-veal-361184.jpeg", false),
		item("Pan-Seared Salmon", "Atlantic salmon with lemon herb butter and seasonal vegetables", 32.99, models.CategoryMains, "1253863/pexels-photo-1253863.jpeg", false),
		item("Mushroom Risotto", "Creamy arborio rice with wild mushrooms and truffle oil", 28.99, models.CategoryMains, "1438672/pexels-photo-1438672.jpeg", true),
		item("Chocolate Lava Cake", "Warm chocolate cake with molten center and vanilla ice cream", 12.99, models.CategoryDesserts, "2097090/pexels-photo-2097090.jpeg", true),
		item("Tiramisu", "Classic Italian dessert with mascarpone and espresso", 10.99, models.CategoryDesserts, "6880219/pexels-photo-6880219.jpeg", true),
		item("House Wine Selection", "Curated selection of red and white wines", 8.99, models.CategoryBeverages, "674010/pexels-photo-674010.jpeg", false),
		item("Craft Beer", "Local craft beers on tap", 6.99, models.CategoryBeverages, "1552630/pexels-photo-1552630.jpeg", false),
	}
}

// SeedDatabase creates the demo accounts and menu. It is safe to run repeatedly.
func SeedDatabase(ctx context.Context, db *gorm.DB) (*SeedResult, error) {
	db = db.WithContext(ctx)
	result := &SeedResult{}

	for _, u := range seedUsers {
		var count int64
		if err := db.Model(&models.User{}).Where("email = ?", u.email).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to check user %s: %w", u.email, err)
		}
		if count > 0 {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), seedBcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password for %s: %w", u.email, err)
		}

		user := models.User{
			Name:         u.name,
			Email:        u.email,
			Phone:        u.phone,
			PasswordHash: string(hash),
			Role:         u.role,
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", u.email, err)
		}
		log.Printf("Seeded %s user %s", u.role, u.email)
		result.UsersCreated++
	}

	var menuCount int64
	if err := db.Model(&models.MenuItem{}).Count(&menuCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count menu items: %w", err)
	}
	if menuCount == 0 {
		items := seedMenu()
		if err := db.Create(&items).Error; err != nil {
			return nil, fmt.Errorf("failed to create menu items: %w", err)
		}
		log.Printf("Seeded %d menu items", len(items))
		result.MenuItemsCreated = len(items)
	}

	return result, nil
}
