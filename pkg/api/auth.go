package api

// LoginRequest представляет запрос на аутентификацию сотрудника
type LoginRequest struct {
	Username string `json:"username"` // username сотрудника
	Password string `json:"password"` // пароль в открытом виде, передается только по TLS
}

// TokenResponse представляет ответ с токеном доступа
type TokenResponse struct {
	AccessToken string `json:"access_token"` // JWT access токен
	UserID      string `json:"user_id"`      // UUID пользователя
	Username    string `json:"username"`
	Role        string `json:"role"`
	ExpiresIn   int64  `json:"expires_in"` // время жизни access token в секундах
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}

// HealthResponse ответ health endpoint
type HealthResponse struct {
	Status string `json:"status"`
}
