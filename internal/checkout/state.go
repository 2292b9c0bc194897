package checkout

import "github.com/Gunvolt24/fastfood_storefront/internal/domain"

// State — состояние попытки оформления заказа.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateCreatingCustomer
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateCreatingCustomer:
		return "creating_customer"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText — в JSON состояние пишется строкой.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Terminal — попытка завершена (успехом или ошибкой).
func (s State) Terminal() bool { return s == StateSucceeded || s == StateFailed }

// Snapshot — состояние workflow для чтения снаружи.
type Snapshot struct {
	State        State                     `json:"state"`
	Confirmation *domain.OrderConfirmation `json:"confirmation,omitempty"`
	ErrorKind    string                    `json:"errorKind,omitempty"`
	Attempts     int                       `json:"attempts"`
}
