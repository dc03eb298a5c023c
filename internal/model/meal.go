package model

// Meal represents an item in the caterer's catalog. The menu is not a
// separate table: it is the subset of meals with InMenu set.
type Meal struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	Name   string `json:"name" gorm:"uniqueIndex;size:250;not null"`
	Price  int    `json:"price" gorm:"not null"`
	InMenu bool   `json:"in_menu" gorm:"column:in_menu;default:false"`
}
