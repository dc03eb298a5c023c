package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"bookameal/internal/errors"
	"bookameal/internal/model"
)

// at builds a timestamp at the given hour on an arbitrary fixed day.
func at(hour int) time.Time {
	return time.Date(2023, 6, 12, hour, 30, 0, 0, time.UTC)
}

func newTestOrderService(orderRepo *MockOrderRepository, mealRepo *MockMealRepository, userRepo *MockUserRepository, now time.Time) *orderService {
	svc := NewOrderService(orderRepo, mealRepo, userRepo, ServingHours{Open: 8, Close: 20}).(*orderService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestServingHours_Contains(t *testing.T) {
	hours := ServingHours{Open: 8, Close: 20}

	// both bounds are exclusive
	assert.False(t, hours.Contains(at(8)))
	assert.False(t, hours.Contains(at(20)))
	assert.True(t, hours.Contains(at(9)))
	assert.True(t, hours.Contains(at(19)))
	assert.False(t, hours.Contains(at(7)))
	assert.False(t, hours.Contains(at(23)))
}

func TestOrderService_CreateOrder(t *testing.T) {
	chapo := &model.Meal{ID: 2, Name: "chapo", Price: 20, InMenu: true}
	ugali := &model.Meal{ID: 1, Name: "ugali", Price: 20, InMenu: false}
	lenny := &model.User{ID: 5, Username: "lenny", Email: "lenny@example.com"}

	tests := []struct {
		name          string
		mealID        uint
		hour          int
		setupMock     func(*MockOrderRepository, *MockMealRepository, *MockUserRepository)
		expectedError error
	}{
		{
			name:   "order on-menu meal during serving hours",
			mealID: 2,
			hour:   12,
			setupMock: func(o *MockOrderRepository, m *MockMealRepository, u *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(2)).Return(chapo, nil)
				u.On("FindByID", mock.Anything, uint(5)).Return(lenny, nil)
				o.On("Create", mock.Anything, mock.AnythingOfType("*model.Order")).Return(nil)
			},
		},
		{
			name:          "outside serving hours",
			mealID:        2,
			hour:          21,
			setupMock:     func(o *MockOrderRepository, m *MockMealRepository, u *MockUserRepository) {},
			expectedError: errors.ErrOutsideServingHours,
		},
		{
			name:          "at opening hour is still closed",
			mealID:        2,
			hour:          8,
			setupMock:     func(o *MockOrderRepository, m *MockMealRepository, u *MockUserRepository) {},
			expectedError: errors.ErrOutsideServingHours,
		},
		{
			name:   "meal does not exist",
			mealID: 99,
			hour:   12,
			setupMock: func(o *MockOrderRepository, m *MockMealRepository, u *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrMealNotFound,
		},
		{
			name:   "meal not on the menu",
			mealID: 1,
			hour:   12,
			setupMock: func(o *MockOrderRepository, m *MockMealRepository, u *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(ugali, nil)
				u.On("FindByID", mock.Anything, uint(5)).Return(lenny, nil)
			},
			expectedError: errors.ErrNotOnMenu,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orderRepo := new(MockOrderRepository)
			mealRepo := new(MockMealRepository)
			userRepo := new(MockUserRepository)
			tt.setupMock(orderRepo, mealRepo, userRepo)

			svc := newTestOrderService(orderRepo, mealRepo, userRepo, at(tt.hour))
			order, err := svc.CreateOrder(context.Background(), 5, tt.mealID)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, order)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, order)
				// snapshot fields copied from the meal and user at write time
				assert.Equal(t, chapo.ID, order.MealID)
				assert.Equal(t, "chapo", order.MealName)
				assert.Equal(t, 20, order.Price)
				assert.Equal(t, lenny.ID, order.UserID)
				assert.Equal(t, "lenny@example.com", order.UserEmail)
				assert.Equal(t, at(tt.hour), order.CreatedAt)
			}

			orderRepo.AssertExpectations(t)
			mealRepo.AssertExpectations(t)
			userRepo.AssertExpectations(t)
		})
	}
}

func TestOrderService_GetOrder_OwnershipMasking(t *testing.T) {
	stored := &model.Order{ID: 10, MealID: 2, MealName: "chapo", Price: 20, UserID: 5}

	tests := []struct {
		name           string
		orderID        uint
		requesterID    uint
		requesterAdmin bool
		setupMock      func(*MockOrderRepository)
		expectedError  error
	}{
		{
			name:        "owner reads own order",
			orderID:     10,
			requesterID: 5,
			setupMock: func(o *MockOrderRepository) {
				o.On("FindByID", mock.Anything, uint(10)).Return(stored, nil)
			},
		},
		{
			name:           "admin reads any order",
			orderID:        10,
			requesterID:    1,
			requesterAdmin: true,
			setupMock: func(o *MockOrderRepository) {
				o.On("FindByID", mock.Anything, uint(10)).Return(stored, nil)
			},
		},
		{
			name:        "non-owner gets not-found, not forbidden",
			orderID:     10,
			requesterID: 6,
			setupMock: func(o *MockOrderRepository) {
				o.On("FindByID", mock.Anything, uint(10)).Return(stored, nil)
			},
			expectedError: errors.ErrOrderNotFound,
		},
		{
			name:        "missing order",
			orderID:     404,
			requesterID: 5,
			setupMock: func(o *MockOrderRepository) {
				o.On("FindByID", mock.Anything, uint(404)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrOrderNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orderRepo := new(MockOrderRepository)
			tt.setupMock(orderRepo)

			svc := newTestOrderService(orderRepo, new(MockMealRepository), new(MockUserRepository), at(12))
			order, err := svc.GetOrder(context.Background(), tt.orderID, tt.requesterID, tt.requesterAdmin)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, order)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, stored, order)
			}

			orderRepo.AssertExpectations(t)
		})
	}
}

func TestOrderService_GetOrder_MaskingIsIndistinguishable(t *testing.T) {
	// A foreign order and a missing order must produce the exact same error.
	stored := &model.Order{ID: 10, UserID: 5}

	orderRepo := new(MockOrderRepository)
	orderRepo.On("FindByID", mock.Anything, uint(10)).Return(stored, nil)
	orderRepo.On("FindByID", mock.Anything, uint(404)).Return(nil, gorm.ErrRecordNotFound)

	svc := newTestOrderService(orderRepo, new(MockMealRepository), new(MockUserRepository), at(12))

	_, foreignErr := svc.GetOrder(context.Background(), 10, 6, false)
	_, missingErr := svc.GetOrder(context.Background(), 404, 6, false)

	assert.Equal(t, missingErr, foreignErr)
	assert.Equal(t, missingErr.Error(), foreignErr.Error())
}

func TestOrderService_ListOrders(t *testing.T) {
	all := []model.Order{{ID: 3}, {ID: 2}, {ID: 1}}
	own := []model.Order{{ID: 2, UserID: 5}}

	t.Run("admin sees all orders", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		orderRepo.On("List", mock.Anything).Return(all, nil)

		svc := newTestOrderService(orderRepo, new(MockMealRepository), new(MockUserRepository), at(12))
		orders, err := svc.ListOrders(context.Background(), 1, true)

		assert.NoError(t, err)
		assert.Equal(t, all, orders)
		orderRepo.AssertExpectations(t)
	})

	t.Run("user sees only own orders", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		orderRepo.On("ListByUser", mock.Anything, uint(5)).Return(own, nil)

		svc := newTestOrderService(orderRepo, new(MockMealRepository), new(MockUserRepository), at(12))
		orders, err := svc.ListOrders(context.Background(), 5, false)

		assert.NoError(t, err)
		assert.Equal(t, own, orders)
		orderRepo.AssertExpectations(t)
	})
}

func TestOrderService_UpdateOrder(t *testing.T) {
	pilau := &model.Meal{ID: 4, Name: "pilau", Price: 250, InMenu: true}
	ugali := &model.Meal{ID: 1, Name: "ugali", Price: 20, InMenu: false}

	newStored := func() *model.Order {
		return &model.Order{ID: 10, MealID: 2, MealName: "chapo", Price: 20, UserID: 5, CreatedAt: at(9)}
	}

	tests := []struct {
		name           string
		newMealID      uint
		requesterID    uint
		requesterAdmin bool
		setupMock      func(*MockOrderRepository, *MockMealRepository)
		expectedError  error
	}{
		{
			name:        "owner repoints at a different on-menu meal",
			newMealID:   4,
			requesterID: 5,
			setupMock: func(o *MockOrderRepository, m *MockMealRepository) {
				o.On("FindByID", mock.Anything, uint(10)).Return(newStored(), nil)
				m.On("FindByID", mock.Anything, uint(4)).Return(pilau, nil)
				o.On("Update", mock.Anything, mock.AnythingOfType("*model.Order")).Return(nil)
			},
		},
		{
			name:        "non-owner is denied explicitly",
			newMealID:   4,
			requesterID: 6,
			setupMock: func(o *MockOrderRepository, m *MockMealRepository) {
				o.On("FindByID", mock.Anything, uint(10)).Return(newStored(), nil)
			},
			expectedError: errors.ErrNotOrderOwner,
		},
		{
			name:           "admin may update any order",
			newMealID:      4,
			requesterID:    1,
			requesterAdmin: true,
			setupMock: func(o *MockOrderRepository, m *MockMealRepository) {
				o.On("FindByID", mock.Anything, uint(10)).Return(newStored(), nil)
				m.On("FindByID", mock.Anything, uint(4)).Return(pilau, nil)
				o.On("Update", mock.Anything, mock.AnythingOfType("*model.Order")).Return(nil)
			},
		},
		{
			name:        "new meal not on the menu",
			newMealID:   1,
			requesterID: 5,
			setupMock: func(o *MockOrderRepository, m *MockMealRepository) {
				o.On("FindByID", mock.Anything, uint(10)).Return(newStored(), nil)
				m.On("FindByID", mock.Anything, uint(1)).Return(ugali, nil)
			},
			expectedError: errors.ErrNotOnMenu,
		},
		{
			name:        "same meal is a no-op",
			newMealID:   2,
			requesterID: 5,
			setupMock: func(o *MockOrderRepository, m *MockMealRepository) {
				o.On("FindByID", mock.Anything, uint(10)).Return(newStored(), nil)
				m.On("FindByID", mock.Anything, uint(2)).Return(&model.Meal{ID: 2, Name: "chapo", Price: 20, InMenu: true}, nil)
			},
			expectedError: errors.ErrSameMeal,
		},
		{
			name:        "missing order",
			newMealID:   4,
			requesterID: 5,
			setupMock: func(o *MockOrderRepository, m *MockMealRepository) {
				o.On("FindByID", mock.Anything, uint(10)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrOrderNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orderRepo := new(MockOrderRepository)
			mealRepo := new(MockMealRepository)
			tt.setupMock(orderRepo, mealRepo)

			svc := newTestOrderService(orderRepo, mealRepo, new(MockUserRepository), at(12))
			order, err := svc.UpdateOrder(context.Background(), 10, tt.newMealID, tt.requesterID, tt.requesterAdmin)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, order)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, order)
				assert.Equal(t, pilau.ID, order.MealID)
				assert.Equal(t, "pilau", order.MealName)
				assert.Equal(t, 250, order.Price)
				assert.Equal(t, at(9), order.CreatedAt, "update must not touch created_at")
			}

			orderRepo.AssertExpectations(t)
			mealRepo.AssertExpectations(t)
		})
	}
}

func TestOrderService_DeleteOrder(t *testing.T) {
	stored := &model.Order{ID: 10, UserID: 5}

	tests := []struct {
		name           string
		requesterID    uint
		requesterAdmin bool
		setupMock      func(*MockOrderRepository)
		expectedError  error
	}{
		{
			name:        "owner deletes own order",
			requesterID: 5,
			setupMock: func(o *MockOrderRepository) {
				o.On("FindByID", mock.Anything, uint(10)).Return(stored, nil)
				o.On("Delete", mock.Anything, uint(10)).Return(nil)
			},
		},
		{
			name:           "admin deletes any order",
			requesterID:    1,
			requesterAdmin: true,
			setupMock: func(o *MockOrderRepository) {
				o.On("FindByID", mock.Anything, uint(10)).Return(stored, nil)
				o.On("Delete", mock.Anything, uint(10)).Return(nil)
			},
		},
		{
			name:        "non-owner is denied explicitly",
			requesterID: 6,
			setupMock: func(o *MockOrderRepository) {
				o.On("FindByID", mock.Anything, uint(10)).Return(stored, nil)
			},
			expectedError: errors.ErrNotOrderOwner,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orderRepo := new(MockOrderRepository)
			tt.setupMock(orderRepo)

			svc := newTestOrderService(orderRepo, new(MockMealRepository), new(MockUserRepository), at(12))
			err := svc.DeleteOrder(context.Background(), 10, tt.requesterID, tt.requesterAdmin)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}

			orderRepo.AssertExpectations(t)
		})
	}
}
