package apiclient

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/Gunvolt24/fastfood_storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// flexID — идентификатор, который API отдаёт то строкой (UUID), то числом.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

// productDTO — товар каталога в обоих вариантах схемы (pt/en).
type productDTO struct {
	ID flexID `json:"id"`

	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Category    string           `json:"category"`

	Nome      string           `json:"nome"`
	Descricao string           `json:"descricao"`
	Preco     *decimal.Decimal `json:"preco"`
	Categoria string           `json:"categoria"`

	Available  *bool `json:"available"`
	Disponivel *bool `json:"disponivel"`
}

// toDomain — нормализация на границе; false для товара, снятого с продажи.
func (d productDTO) toDomain() (domain.Product, bool) {
	p := domain.Product{
		ID:          string(d.ID),
		Name:        firstNonEmpty(d.Name, d.Nome),
		Description: firstNonEmpty(d.Description, d.Descricao),
		Category:    strings.ToLower(strings.TrimSpace(firstNonEmpty(d.Category, d.Categoria))),
	}
	switch {
	case d.Price != nil:
		p.UnitPrice = *d.Price
	case d.Preco != nil:
		p.UnitPrice = *d.Preco
	}

	available := true
	if d.Available != nil {
		available = *d.Available
	} else if d.Disponivel != nil {
		available = *d.Disponivel
	}
	return p, available
}

// confirmationDTO — ответ на создание заказа; поле id встречается под разными именами.
type confirmationDTO struct {
	OrderID  flexID `json:"orderId"`
	ID       flexID `json:"id"`
	PedidoID flexID `json:"pedido_id"`
	Status   string `json:"status"`
}

func (d confirmationDTO) toDomain() domain.OrderConfirmation {
	status := d.Status
	if canonical, ok := domain.NormalizeOrderStatus(status); ok {
		status = canonical
	}
	return domain.OrderConfirmation{
		OrderID: firstNonEmpty(string(d.OrderID), string(d.ID), string(d.PedidoID)),
		Status:  status,
	}
}

// customerRequest — тело создания клиента в схеме сервиса клиентов.
type customerRequest struct {
	Nome  string `json:"nome"`
	Email string `json:"email"`
	CPF   string `json:"cpf,omitempty"`
}

type customerDTO struct {
	CustomerID flexID `json:"customerId"`
	ID         flexID `json:"id"`
	ClienteID  flexID `json:"cliente_id"`
}

func (d customerDTO) toDomain() domain.CustomerRef {
	return domain.CustomerRef{CustomerID: firstNonEmpty(string(d.CustomerID), string(d.ID), string(d.ClienteID))}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// snippet — начало тела ответа для текста ошибки.
func snippet(b []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(b))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
