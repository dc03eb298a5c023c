package model

import "time"

// Order represents a meal order. MealName, Price and UserEmail are snapshots
// copied from the referenced records at write time: a historical order keeps
// the name and price it was placed at even if the meal later changes or is
// deleted.
type Order struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	MealID    uint      `json:"meal_id" gorm:"column:meal_id;not null"`
	MealName  string    `json:"meal_name" gorm:"column:meal_name;size:250;not null"`
	Price     int       `json:"price" gorm:"not null"`
	UserID    uint      `json:"user_id" gorm:"column:user_id;not null;index"`
	UserEmail string    `json:"user_email" gorm:"column:user_email;size:250;not null"`
	CreatedAt time.Time `json:"created_at"`
}
