package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"bookameal/internal/errors"
	"bookameal/internal/model"
)

func TestMealService_CreateMeal(t *testing.T) {
	tests := []struct {
		name          string
		mealName      string
		price         int
		inMenu        bool
		setupMock     func(*MockMealRepository)
		expectedError error
	}{
		{
			name:     "successful creation",
			mealName: "ugali",
			price:    20,
			setupMock: func(m *MockMealRepository) {
				m.On("FindByName", mock.Anything, "ugali").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Meal")).Return(nil)
			},
		},
		{
			name:     "duplicate name",
			mealName: "ugali",
			price:    20,
			setupMock: func(m *MockMealRepository) {
				m.On("FindByName", mock.Anything, "ugali").Return(&model.Meal{ID: 1, Name: "ugali"}, nil)
			},
			expectedError: errors.ErrMealNameTaken,
		},
		{
			name:     "race lost to concurrent creation",
			mealName: "ugali",
			price:    20,
			setupMock: func(m *MockMealRepository) {
				m.On("FindByName", mock.Anything, "ugali").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Meal")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: errors.ErrMealNameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockMealRepository)
			tt.setupMock(mockRepo)

			svc := NewMealService(mockRepo, nil)
			meal, err := svc.CreateMeal(context.Background(), tt.mealName, tt.price, tt.inMenu)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, meal)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, meal)
				assert.Equal(t, tt.mealName, meal.Name)
				assert.False(t, meal.InMenu)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestMealService_UpdateMeal(t *testing.T) {
	current := func() *model.Meal {
		return &model.Meal{ID: 1, Name: "ugali", Price: 20, InMenu: false}
	}

	tests := []struct {
		name          string
		newName       string
		price         int
		inMenu        bool
		setupMock     func(*MockMealRepository)
		expectedError error
	}{
		{
			name:    "successful update",
			newName: "ugali special",
			price:   30,
			setupMock: func(m *MockMealRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(current(), nil)
				m.On("FindByName", mock.Anything, "ugali special").Return(nil, gorm.ErrRecordNotFound)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.Meal")).Return(nil)
			},
		},
		{
			name:    "identical payload is rejected",
			newName: "ugali",
			price:   20,
			inMenu:  false,
			setupMock: func(m *MockMealRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(current(), nil)
			},
			expectedError: errors.ErrNoChange,
		},
		{
			name:    "rename onto another meal's name",
			newName: "chapo",
			price:   20,
			setupMock: func(m *MockMealRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(current(), nil)
				m.On("FindByName", mock.Anything, "chapo").Return(&model.Meal{ID: 2, Name: "chapo"}, nil)
			},
			expectedError: errors.ErrMealNameTaken,
		},
		{
			name:    "missing meal",
			newName: "ugali",
			price:   20,
			setupMock: func(m *MockMealRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrMealNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockMealRepository)
			tt.setupMock(mockRepo)

			svc := NewMealService(mockRepo, nil)
			meal, err := svc.UpdateMeal(context.Background(), 1, tt.newName, tt.price, tt.inMenu)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, meal)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.newName, meal.Name)
				assert.Equal(t, tt.price, meal.Price)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestMealService_MenuFlag(t *testing.T) {
	t.Run("add to menu", func(t *testing.T) {
		mockRepo := new(MockMealRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Meal{ID: 1, Name: "ugali", InMenu: false}, nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Meal")).Return(nil)

		svc := NewMealService(mockRepo, nil)
		meal, err := svc.AddToMenu(context.Background(), 1)

		assert.NoError(t, err)
		assert.True(t, meal.InMenu)
		mockRepo.AssertExpectations(t)
	})

	t.Run("add when already on the menu", func(t *testing.T) {
		mockRepo := new(MockMealRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Meal{ID: 1, InMenu: true}, nil)

		svc := NewMealService(mockRepo, nil)
		_, err := svc.AddToMenu(context.Background(), 1)

		assert.Equal(t, errors.ErrAlreadyInMenu, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("remove from menu", func(t *testing.T) {
		mockRepo := new(MockMealRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Meal{ID: 1, InMenu: true}, nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Meal")).Return(nil)

		svc := NewMealService(mockRepo, nil)
		meal, err := svc.RemoveFromMenu(context.Background(), 1)

		assert.NoError(t, err)
		assert.False(t, meal.InMenu)
		mockRepo.AssertExpectations(t)
	})

	t.Run("remove when already off the menu", func(t *testing.T) {
		mockRepo := new(MockMealRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Meal{ID: 1, InMenu: false}, nil)

		svc := NewMealService(mockRepo, nil)
		_, err := svc.RemoveFromMenu(context.Background(), 1)

		assert.Equal(t, errors.ErrAlreadyNotInMenu, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing meal", func(t *testing.T) {
		mockRepo := new(MockMealRepository)
		mockRepo.On("FindByID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewMealService(mockRepo, nil)
		_, err := svc.AddToMenu(context.Background(), 9)

		assert.Equal(t, errors.ErrMealNotFound, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestMealService_GetMenuItem(t *testing.T) {
	t.Run("meal on the menu", func(t *testing.T) {
		mockRepo := new(MockMealRepository)
		mockRepo.On("FindByID", mock.Anything, uint(2)).Return(&model.Meal{ID: 2, Name: "chapo", InMenu: true}, nil)

		svc := NewMealService(mockRepo, nil)
		meal, err := svc.GetMenuItem(context.Background(), 2)

		assert.NoError(t, err)
		assert.Equal(t, "chapo", meal.Name)
	})

	t.Run("meal exists but off the menu", func(t *testing.T) {
		mockRepo := new(MockMealRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Meal{ID: 1, Name: "ugali", InMenu: false}, nil)

		svc := NewMealService(mockRepo, nil)
		_, err := svc.GetMenuItem(context.Background(), 1)

		assert.Equal(t, errors.ErrNotOnMenu, err)
	})
}

func TestMealService_ListMenu(t *testing.T) {
	onMenu := []model.Meal{
		{ID: 3, Name: "rice and beans", Price: 450, InMenu: true},
		{ID: 2, Name: "chapo", Price: 20, InMenu: true},
	}

	mockRepo := new(MockMealRepository)
	mockRepo.On("ListInMenu", mock.Anything).Return(onMenu, nil)

	svc := NewMealService(mockRepo, nil)
	meals, err := svc.ListMenu(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, onMenu, meals)
	mockRepo.AssertExpectations(t)
}
