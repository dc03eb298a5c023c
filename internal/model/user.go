package model

// User represents an account in the system. Password holds the bcrypt hash;
// the column is named "password" for compatibility with the existing schema
// and is never serialized.
type User struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Username string `json:"username" gorm:"size:250;not null"`
	Email    string `json:"email" gorm:"uniqueIndex;size:250;not null"`
	Password string `json:"-" gorm:"size:250;not null"`
	Admin    bool   `json:"admin" gorm:"default:false"`

	// Relations
	Orders []Order `json:"orders,omitempty" gorm:"foreignKey:UserID"`
}
