package models

import "time"

// Роли персонала, известные серверу
const (
	RoleAdmin     = "admin"
	RoleFrontdesk = "frontdesk"
	RoleKitchen   = "kitchen"
	RoleDelivery  = "delivery"
)

// User представляет сотрудника ресторана в системе
type User struct {
	CreatedAt    time.Time  `json:"created_at"`           // время создания
	LastLogin    *time.Time `json:"last_login,omitempty"` // время последнего входа
	ID           string     `json:"id"`                   // UUID пользователя
	Username     string     `json:"username"`             // уникальный username
	PasswordHash string     `json:"-"`                    // bcrypt хеш пароля
	Role         string     `json:"role"`
	FirstName    string     `json:"first_name,omitempty"`
	LastName     string     `json:"last_name,omitempty"`
	Email        string     `json:"email,omitempty"`
	Phone        string     `json:"phone_number,omitempty"`
}

// Profile возвращает публичный профиль пользователя.
func (u *User) Profile() Profile {
	return Profile{
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
	}
}
