package transactions

import (
	"strings"
	"time"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/models"
)

// IsRefund единственный признак возврата для всех подсчетов выручки:
// payment_type или type равен "refund" без учета регистра, либо отрицательная сумма.
func IsRefund(tx models.Transaction) bool {
	return strings.EqualFold(tx.PaymentType, "refund") ||
		strings.EqualFold(tx.Type, "refund") ||
		tx.Amount < 0
}

// FilterByDate оставляет транзакции, у которых дата в UTC или в loc равна date
// (YYYY-MM-DD). nil loc означает time.Local.
func FilterByDate(txs []models.Transaction, date string, loc *time.Location) []models.Transaction {
	if loc == nil {
		loc = time.Local
	}

	out := make([]models.Transaction, 0)
	for _, tx := range txs {
		if tx.CreatedAt.IsZero() {
			continue
		}
		if tx.CreatedAt.UTC().Format(time.DateOnly) == date || tx.CreatedAt.In(loc).Format(time.DateOnly) == date {
			out = append(out, tx)
		}
	}
	return out
}

// Группы статусов для CalculateStats
const (
	BucketCompleted = "completed"
	BucketPending   = "pending"
	BucketFailed    = "failed"
	BucketRefunded  = "refunded"
	BucketOther     = "other"
)

// Stats сводка по списку транзакций
type Stats struct {
	ByStatus     map[string]int `json:"by_status"`
	TotalAmount  float64        `json:"total_amount"`
	RefundAmount float64        `json:"refund_amount"`
	Count        int            `json:"count"`
	RefundCount  int            `json:"refund_count"`
}

// CalculateStats суммирует положительные суммы без возвратов и считает транзакции по группам статусов
func CalculateStats(txs []models.Transaction) Stats {
	stats := Stats{ByStatus: make(map[string]int)}

	for _, tx := range txs {
		stats.Count++

		if IsRefund(tx) {
			stats.RefundCount++
			if tx.Amount < 0 {
				stats.RefundAmount -= tx.Amount
			} else {
				stats.RefundAmount += tx.Amount
			}
			stats.ByStatus[BucketRefunded]++
			continue
		}

		if tx.Amount > 0 {
			stats.TotalAmount += tx.Amount
		}
		stats.ByStatus[statusBucket(tx.Status)]++
	}
	return stats
}

func statusBucket(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "paid", "completed", "complete", "success", "successful":
		return BucketCompleted
	case "pending", "processing", "partially paid", "partially_paid":
		return BucketPending
	case "failed", "cancelled", "canceled", "declined":
		return BucketFailed
	default:
		return BucketOther
	}
}

// GroupByPaymentMethod группирует транзакции по способу оплаты.
// Способы сравниваются без учета регистра; без способа попадают в "unknown".
func GroupByPaymentMethod(txs []models.Transaction) map[string][]models.Transaction {
	groups := make(map[string][]models.Transaction)
	for _, tx := range txs {
		method := strings.ToLower(strings.TrimSpace(tx.PaymentMethod))
		if method == "" {
			method = "unknown"
		}
		groups[method] = append(groups[method], tx)
	}
	return groups
}
