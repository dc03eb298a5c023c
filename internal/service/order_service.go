package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"bookameal/internal/errors"
	"bookameal/internal/model"
	"bookameal/internal/repository"
)

// ServingHours bounds order creation to the caterer's working day. Both
// bounds are exclusive: with Open=8 and Close=20, the first valid hour is 9
// and the last is 19.
type ServingHours struct {
	Open  int
	Close int
}

// Contains reports whether t falls strictly inside the serving window.
func (h ServingHours) Contains(t time.Time) bool {
	hour := t.Hour()
	return hour > h.Open && hour < h.Close
}

// OrderService is the order lifecycle engine. Every order snapshots the meal
// name and price and the owner's email at write time; the referenced meal
// must be on the menu at creation and at every meal change.
//
// Ownership is enforced as admin-or-owner throughout, with one asymmetry
// kept from the deployed behavior: a foreign order reads as not-found, while
// a foreign update or delete is an explicit ownership denial.
type OrderService interface {
	CreateOrder(ctx context.Context, userID, mealID uint) (*model.Order, error)
	GetOrder(ctx context.Context, orderID uint, requesterID uint, requesterAdmin bool) (*model.Order, error)
	ListOrders(ctx context.Context, requesterID uint, requesterAdmin bool) ([]model.Order, error)
	UpdateOrder(ctx context.Context, orderID, newMealID uint, requesterID uint, requesterAdmin bool) (*model.Order, error)
	DeleteOrder(ctx context.Context, orderID uint, requesterID uint, requesterAdmin bool) error
}

type orderService struct {
	orderRepo repository.OrderRepository
	mealRepo  repository.MealRepository
	userRepo  repository.UserRepository
	hours     ServingHours
	now       func() time.Time
}

// NewOrderService builds the order engine.
func NewOrderService(
	orderRepo repository.OrderRepository,
	mealRepo repository.MealRepository,
	userRepo repository.UserRepository,
	hours ServingHours,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		mealRepo:  mealRepo,
		userRepo:  userRepo,
		hours:     hours,
		now:       time.Now,
	}
}

// CreateOrder places an order for the authenticated user. The serving window
// is checked first, then meal existence, then menu membership.
func (s *orderService) CreateOrder(ctx context.Context, userID, mealID uint) (*model.Order, error) {
	now := s.now()
	if !s.hours.Contains(now) {
		return nil, errors.ErrOutsideServingHours
	}

	meal, err := s.mealRepo.FindByID(ctx, mealID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrMealNotFound
		}
		return nil, fmt.Errorf("find meal: %w", err)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !meal.InMenu {
		return nil, errors.ErrNotOnMenu
	}

	order := &model.Order{
		MealID:    meal.ID,
		MealName:  meal.Name,
		Price:     meal.Price,
		UserID:    user.ID,
		UserEmail: user.Email,
		CreatedAt: now,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return order, nil
}

// GetOrder returns an order to its owner or an admin. A non-owner gets the
// same not-found error as a missing id so order existence never leaks.
func (s *orderService) GetOrder(ctx context.Context, orderID uint, requesterID uint, requesterAdmin bool) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}

	if !requesterAdmin && order.UserID != requesterID {
		return nil, errors.ErrOrderNotFound
	}
	return order, nil
}

// ListOrders returns all orders newest-first for admins, and only the
// requester's own otherwise.
func (s *orderService) ListOrders(ctx context.Context, requesterID uint, requesterAdmin bool) ([]model.Order, error) {
	if requesterAdmin {
		return s.orderRepo.List(ctx)
	}
	return s.orderRepo.ListByUser(ctx, requesterID)
}

// UpdateOrder repoints an order at a different on-menu meal, refreshing the
// meal snapshot. CreatedAt is never touched. Pointing at the meal the order
// already holds is rejected as a no-op.
func (s *orderService) UpdateOrder(ctx context.Context, orderID, newMealID uint, requesterID uint, requesterAdmin bool) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}

	if !requesterAdmin && order.UserID != requesterID {
		return nil, errors.ErrNotOrderOwner
	}

	meal, err := s.mealRepo.FindByID(ctx, newMealID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrMealNotFound
		}
		return nil, fmt.Errorf("find meal: %w", err)
	}

	if !meal.InMenu {
		return nil, errors.ErrNotOnMenu
	}

	if order.MealID == meal.ID {
		return nil, errors.ErrSameMeal
	}

	order.MealID = meal.ID
	order.MealName = meal.Name
	order.Price = meal.Price
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	return order, nil
}

// DeleteOrder removes an order for its owner or an admin.
func (s *orderService) DeleteOrder(ctx context.Context, orderID uint, requesterID uint, requesterAdmin bool) error {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrOrderNotFound
		}
		return fmt.Errorf("find order: %w", err)
	}

	if !requesterAdmin && order.UserID != requesterID {
		return errors.ErrNotOrderOwner
	}

	if err := s.orderRepo.Delete(ctx, order.ID); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}
