package storage

import "errors"

// Общие ошибки хранилища
var (
	// ErrUserNotFound пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists пользователь с таким именем уже есть
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrOrderNotFound заказ не найден
	ErrOrderNotFound = errors.New("order not found")
)
