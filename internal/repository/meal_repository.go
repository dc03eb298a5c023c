package repository

import (
	"context"

	"gorm.io/gorm"

	"bookameal/internal/model"
)

// MealRepository defines meal persistence operations.
type MealRepository interface {
	Create(ctx context.Context, meal *model.Meal) error
	Update(ctx context.Context, meal *model.Meal) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Meal, error)
	FindByName(ctx context.Context, name string) (*model.Meal, error)
	List(ctx context.Context) ([]model.Meal, error)
	ListInMenu(ctx context.Context) ([]model.Meal, error)
}

type mealRepository struct {
	db *gorm.DB
}

// NewMealRepository builds a GORM-backed repository.
func NewMealRepository(db *gorm.DB) MealRepository {
	return &mealRepository{db: db}
}

func (r *mealRepository) Create(ctx context.Context, meal *model.Meal) error {
	return r.db.WithContext(ctx).Create(meal).Error
}

func (r *mealRepository) Update(ctx context.Context, meal *model.Meal) error {
	return r.db.WithContext(ctx).Save(meal).Error
}

func (r *mealRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Meal{}, id).Error
}

func (r *mealRepository) FindByID(ctx context.Context, id uint) (*model.Meal, error) {
	var meal model.Meal
	if err := r.db.WithContext(ctx).First(&meal, id).Error; err != nil {
		return nil, err
	}
	return &meal, nil
}

// FindByName matches the name exactly, case sensitive.
func (r *mealRepository) FindByName(ctx context.Context, name string) (*model.Meal, error) {
	var meal model.Meal
	if err := r.db.WithContext(ctx).Where("BINARY name = ?", name).First(&meal).Error; err != nil {
		return nil, err
	}
	return &meal, nil
}

func (r *mealRepository) List(ctx context.Context) ([]model.Meal, error) {
	var meals []model.Meal
	if err := r.db.WithContext(ctx).Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}

// ListInMenu returns the meals currently on the menu, most recent first.
func (r *mealRepository) ListInMenu(ctx context.Context) ([]model.Meal, error) {
	var meals []model.Meal
	if err := r.db.WithContext(ctx).Where("in_menu = ?", true).Order("id desc").Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}
