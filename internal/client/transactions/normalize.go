package transactions

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/models"
)

// Normalize приводит любой известный формат ответа к списку, отсортированному
// от новых к старым: массив, {transactions}, {data}, {results} или
// {data: {results}}. Нераспознанный ввод дает пустой список.
func Normalize(raw json.RawMessage) []models.Transaction {
	items := extractItems(raw)

	txs := make([]models.Transaction, 0, len(items))
	for _, item := range items {
		var rt rawTransaction
		if err := json.Unmarshal(item, &rt); err != nil {
			continue
		}
		txs = append(txs, rt.canonical())
	}

	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].CreatedAt.After(txs[j].CreatedAt)
	})
	return txs
}

// extractItems ищет массив записей в известных обертках
func extractItems(raw json.RawMessage) []json.RawMessage {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}

	var list []json.RawMessage
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &list); err == nil {
			return list
		}
		return nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil
	}
	for _, key := range []string{"transactions", "results", "data"} {
		nested, ok := envelope[key]
		if !ok {
			continue
		}
		if items := extractItems(nested); items != nil {
			return items
		}
	}
	return nil
}

// rawTransaction принимает как строки, так и числа в полях id и amount
type rawTransaction struct {
	ID            flexString `json:"id"`
	TransactionID flexString `json:"transaction_id"`
	OrderNumber   flexString `json:"order_number"`
	PaymentMethod string     `json:"payment_method"`
	PaymentType   string     `json:"payment_type"`
	Type          string     `json:"type"`
	Status        string     `json:"status"`
	CreatedAt     string     `json:"created_at"`
	Date          string     `json:"date"`
	Amount        flexFloat  `json:"amount"`
}

func (r rawTransaction) canonical() models.Transaction {
	created := parseTime(r.CreatedAt)
	if created.IsZero() {
		created = parseTime(r.Date)
	}

	id := string(r.ID)
	if id == "" {
		id = string(r.TransactionID)
	}

	return models.Transaction{
		ID:            id,
		TransactionID: string(r.TransactionID),
		OrderNumber:   string(r.OrderNumber),
		PaymentMethod: r.PaymentMethod,
		PaymentType:   r.PaymentType,
		Type:          r.Type,
		Status:        r.Status,
		Amount:        float64(r.Amount),
		CreatedAt:     created,
	}
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = 0
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err == nil {
		*f = flexFloat(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		// нечисловая сумма считается нулевой
		*f = 0
		return nil
	}
	*f = flexFloat(v)
	return nil
}
