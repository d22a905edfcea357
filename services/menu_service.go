package services

import (
	"context"
	"strings"

	"github.com/abhiraj-restaurant/restaurant-api/models"
	"gorm.io/gorm"
)

// DefaultPreparationTime is used when a new item does not state one (minutes)
const DefaultPreparationTime = 15

// Catalog field limits
const (
	maxNameLength        = 100
	maxDescriptionLength = 500
)

// MenuItemInput carries a create or partial update of a catalog item.
// Nil fields are left unchanged on update.
type MenuItemInput struct {
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	Price           *float64 `json:"price"`
	Category        *string  `json:"category"`
	Image           *string  `json:"image"`
	IsVegetarian    *bool    `json:"isVegetarian"`
	IsVegan         *bool    `json:"isVegan"`
	IsGlutenFree    *bool    `json:"isGlutenFree"`
	IsAvailable     *bool    `json:"isAvailable"`
	PreparationTime *int     `json:"preparationTime"`
}

// MenuService reads and administers the catalog
type MenuService struct {
	db *gorm.DB
}

// NewMenuService creates a catalog service
func NewMenuService(db *gorm.DB) *MenuService {
	return &MenuService{db: db}
}

// List returns catalog items ordered by category then name.
// An empty category means all categories.
func (s *MenuService) List(ctx context.Context, category string, onlyAvailable bool) ([]models.MenuItem, error) {
	category = strings.TrimSpace(category)
	if category != "" && !models.IsValidCategory(category) {
		return nil, invalidFieldError(CodeInvalidField, "category must be one of: "+strings.Join(models.Categories, ", "))
	}

	query := s.db.WithContext(ctx).Order("category ASC, name ASC")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if onlyAvailable {
		query = query.Where("is_available = ?", true)
	}

	items := []models.MenuItem{}
	if err := query.Find(&items).Error; err != nil {
		return nil, internalError("Failed to fetch menu items", err)
	}
	return items, nil
}

// Get returns one catalog item
func (s *MenuService) Get(ctx context.Context, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, lookupError("Menu item not found", err)
	}
	return &item, nil
}

// Create adds a catalog item. Name, description, price and category are required.
func (s *MenuService) Create(ctx context.Context, input MenuItemInput) (*models.MenuItem, error) {
	var missing []string
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		missing = append(missing, "name")
	}
	if input.Description == nil || strings.TrimSpace(*input.Description) == "" {
		missing = append(missing, "description")
	}
	if input.Price == nil {
		missing = append(missing, "price")
	}
	if input.Category == nil || strings.TrimSpace(*input.Category) == "" {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		return nil, missingFieldError("Missing required menu item fields", missing)
	}

	item := models.MenuItem{
		IsAvailable:     true,
		PreparationTime: DefaultPreparationTime,
	}
	if err := applyMenuItemInput(&item, input); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, internalError("Failed to create menu item", err)
	}
	return &item, nil
}

// Update applies the non-nil fields of input to item id
func (s *MenuService) Update(ctx context.Context, id uint, input MenuItemInput) (*models.MenuItem, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := applyMenuItemInput(item, input); err != nil {
		return nil, err
	}

	// Save writes zero values, so false flags and empty images persist
	if err := s.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, internalError("Failed to update menu item", err)
	}
	return item, nil
}

// Delete soft-deletes item id and returns it. Placed orders keep their snapshots.
func (s *MenuService) Delete(ctx context.Context, id uint) (*models.MenuItem, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Delete(item).Error; err != nil {
		return nil, internalError("Failed to delete menu item", err)
	}
	return item, nil
}

// SetImageKey records an uploaded photo and returns the key it replaced
func (s *MenuService) SetImageKey(ctx context.Context, id uint, key string) (*models.MenuItem, string, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}

	var previous string
	if item.ImageS3Key != nil {
		previous = *item.ImageS3Key
	}

	if err := s.db.WithContext(ctx).Model(item).Update("image_s3_key", key).Error; err != nil {
		return nil, "", internalError("Failed to update menu item", err)
	}
	item.ImageS3Key = &key

	return item, previous, nil
}

func applyMenuItemInput(item *models.MenuItem, input MenuItemInput) error {
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" || len(name) > maxNameLength {
			return invalidFieldError(CodeInvalidField, "Name must be between 1 and 100 characters")
		}
		item.Name = name
	}
	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		if description == "" || len(description) > maxDescriptionLength {
			return invalidFieldError(CodeInvalidField, "Description must be between 1 and 500 characters")
		}
		item.Description = description
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return invalidFieldError(CodeInvalidField, "Price cannot be negative")
		}
		item.Price = *input.Price
	}
	if input.Category != nil {
		category := strings.TrimSpace(*input.Category)
		if !models.IsValidCategory(category) {
			return invalidFieldError(CodeInvalidField, "category must be one of: "+strings.Join(models.Categories, ", "))
		}
		item.Category = category
	}
	if input.Image != nil {
		item.Image = strings.TrimSpace(*input.Image)
	}
	if input.IsVegetarian != nil {
		item.IsVegetarian = *input.IsVegetarian
	}
	if input.IsVegan != nil {
		item.IsVegan = *input.IsVegan
	}
	if input.IsGlutenFree != nil {
		item.IsGlutenFree = *input.IsGlutenFree
	}
	if input.IsAvailable != nil {
		item.IsAvailable = *input.IsAvailable
	}
	if input.PreparationTime != nil {
		if *input.PreparationTime < 0 {
			return invalidFieldError(CodeInvalidField, "Preparation time cannot be negative")
		}
		item.PreparationTime = *input.PreparationTime
	}
	return nil
}
