package api

// ListResponse постраничная обертка ответов со списками
type ListResponse[T any] struct {
	Results []T `json:"results"`
	Count   int `json:"count"`
}

// Endpoints сервера
const (
	PathLogin        = "/api/auth/login"
	PathHealth       = "/api/health"
	PathOrders       = "/api/orders"
	PathProfile      = "/api/users/profile"
	PathPayments     = "/api/payments"
	PathTransactions = "/api/transactions"
)
