package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"bookameal/internal/cache"
	"bookameal/internal/errors"
	"bookameal/internal/model"
	"bookameal/internal/repository"
)

const (
	menuCacheKey = "menu:list"
	menuCacheTTL = 5 * time.Minute
)

// MealService owns the meal catalog and the on-menu subset.
type MealService interface {
	CreateMeal(ctx context.Context, name string, price int, inMenu bool) (*model.Meal, error)
	GetMeal(ctx context.Context, id uint) (*model.Meal, error)
	ListMeals(ctx context.Context) ([]model.Meal, error)
	UpdateMeal(ctx context.Context, id uint, name string, price int, inMenu bool) (*model.Meal, error)
	DeleteMeal(ctx context.Context, id uint) error

	AddToMenu(ctx context.Context, mealID uint) (*model.Meal, error)
	RemoveFromMenu(ctx context.Context, mealID uint) (*model.Meal, error)
	GetMenuItem(ctx context.Context, mealID uint) (*model.Meal, error)
	ListMenu(ctx context.Context) ([]model.Meal, error)
}

type mealService struct {
	repo  repository.MealRepository
	cache *cache.Client
}

// NewMealService builds a MealService with repository and cache.
func NewMealService(repo repository.MealRepository, cache *cache.Client) MealService {
	return &mealService{repo: repo, cache: cache}
}

// CreateMeal inserts a meal, rejecting a name already in use. Name matching
// is exact and case sensitive.
func (s *mealService) CreateMeal(ctx context.Context, name string, price int, inMenu bool) (*model.Meal, error) {
	existing, err := s.repo.FindByName(ctx, name)
	if err == nil && existing != nil {
		return nil, errors.ErrMealNameTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check meal name: %w", err)
	}

	meal := &model.Meal{Name: name, Price: price, InMenu: inMenu}
	if err := s.repo.Create(ctx, meal); err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, errors.ErrMealNameTaken
		}
		return nil, fmt.Errorf("create meal: %w", err)
	}

	if inMenu {
		_ = s.cache.Delete(ctx, menuCacheKey)
	}
	return meal, nil
}

func (s *mealService) GetMeal(ctx context.Context, id uint) (*model.Meal, error) {
	meal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrMealNotFound
		}
		return nil, fmt.Errorf("find meal: %w", err)
	}
	return meal, nil
}

func (s *mealService) ListMeals(ctx context.Context) ([]model.Meal, error) {
	return s.repo.List(ctx)
}

// UpdateMeal applies a full update. Renaming to a name held by a different
// meal is a conflict; a payload identical to the current record is a no-op
// and rejected.
func (s *mealService) UpdateMeal(ctx context.Context, id uint, name string, price int, inMenu bool) (*model.Meal, error) {
	meal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrMealNotFound
		}
		return nil, fmt.Errorf("find meal: %w", err)
	}

	if meal.Name == name && meal.Price == price && meal.InMenu == inMenu {
		return nil, errors.ErrNoChange
	}

	if name != meal.Name {
		byName, err := s.repo.FindByName(ctx, name)
		if err == nil && byName != nil && byName.ID != meal.ID {
			return nil, errors.ErrMealNameTaken
		}
		if err != nil && err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("check meal name: %w", err)
		}
	}

	meal.Name = name
	meal.Price = price
	meal.InMenu = inMenu
	if err := s.repo.Update(ctx, meal); err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, errors.ErrMealNameTaken
		}
		return nil, fmt.Errorf("update meal: %w", err)
	}

	_ = s.cache.Delete(ctx, menuCacheKey)
	return meal, nil
}

// DeleteMeal removes a meal from the catalog. Orders keep their denormalized
// snapshot of it.
func (s *mealService) DeleteMeal(ctx context.Context, id uint) error {
	meal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrMealNotFound
		}
		return fmt.Errorf("find meal: %w", err)
	}

	if err := s.repo.Delete(ctx, meal.ID); err != nil {
		return fmt.Errorf("delete meal: %w", err)
	}

	_ = s.cache.Delete(ctx, menuCacheKey)
	return nil
}

// AddToMenu sets the in_menu flag, failing if it is already set.
func (s *mealService) AddToMenu(ctx context.Context, mealID uint) (*model.Meal, error) {
	meal, err := s.repo.FindByID(ctx, mealID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrMealNotFound
		}
		return nil, fmt.Errorf("find meal: %w", err)
	}

	if meal.InMenu {
		return nil, errors.ErrAlreadyInMenu
	}

	meal.InMenu = true
	if err := s.repo.Update(ctx, meal); err != nil {
		return nil, fmt.Errorf("update meal: %w", err)
	}

	_ = s.cache.Delete(ctx, menuCacheKey)
	return meal, nil
}

// RemoveFromMenu clears the in_menu flag, failing if it is already clear.
// Existing orders for the meal are unaffected.
func (s *mealService) RemoveFromMenu(ctx context.Context, mealID uint) (*model.Meal, error) {
	meal, err := s.repo.FindByID(ctx, mealID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrMealNotFound
		}
		return nil, fmt.Errorf("find meal: %w", err)
	}

	if !meal.InMenu {
		return nil, errors.ErrAlreadyNotInMenu
	}

	meal.InMenu = false
	if err := s.repo.Update(ctx, meal); err != nil {
		return nil, fmt.Errorf("update meal: %w", err)
	}

	_ = s.cache.Delete(ctx, menuCacheKey)
	return meal, nil
}

// GetMenuItem fetches a meal that must currently be on the menu.
func (s *mealService) GetMenuItem(ctx context.Context, mealID uint) (*model.Meal, error) {
	meal, err := s.GetMeal(ctx, mealID)
	if err != nil {
		return nil, err
	}
	if !meal.InMenu {
		return nil, errors.ErrNotOnMenu
	}
	return meal, nil
}

// ListMenu returns the meals on the menu, newest first, served from redis
// when the cached copy is fresh.
func (s *mealService) ListMenu(ctx context.Context) ([]model.Meal, error) {
	var cached []model.Meal
	if s.cache.GetJSON(ctx, menuCacheKey, &cached) {
		return cached, nil
	}

	meals, err := s.repo.ListInMenu(ctx)
	if err != nil {
		return nil, fmt.Errorf("list menu: %w", err)
	}

	s.cache.SetJSON(ctx, menuCacheKey, meals, menuCacheTTL)
	return meals, nil
}
