package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PriceMode — откуда берётся цена строки заказа.
type PriceMode string

const (
	// PriceModeClient — цена строки передаётся клиентом (unitPrice из корзины).
	PriceModeClient PriceMode = "client"
	// PriceModeServer — цену назначает сервис заказов, unitPrice не передаётся.
	PriceModeServer PriceMode = "server"
)

// ParsePriceMode — неизвестное значение трактуется как client.
func ParsePriceMode(s string) PriceMode {
	if PriceMode(s) == PriceModeServer {
		return PriceModeServer
	}
	return PriceModeClient
}

// OrderLine — строка заказа на отправку.
type OrderLine struct {
	ProductID string           `json:"productId"`
	Quantity  int              `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unitPrice,omitempty"`
}

// OrderRequest — заказ, собранный из снимка корзины в момент отправки.
type OrderRequest struct {
	Lines       []OrderLine `json:"lines"`
	CustomerRef string      `json:"customerRef,omitempty"`
}

// OrderConfirmation — ответ сервиса заказов; идентификатор и статус принадлежат ему.
type OrderConfirmation struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

// Customer — минимальный профиль клиента для создания/получения записи.
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	CPF   string `json:"cpf,omitempty"`
}

// CustomerRef — ссылка на запись клиента в удалённом сервисе.
type CustomerRef struct {
	CustomerID string `json:"customerId"`
}

// OrderStatusEvent — событие смены статуса заказа (из брокера).
type OrderStatusEvent struct {
	OrderID   string    `json:"orderId"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Статусы заказа, которые публикует сервис заказов.
const (
	OrderStatusPending   = "pending"
	OrderStatusReceived  = "received"
	OrderStatusPaid      = "paid"
	OrderStatusPreparing = "preparing"
	OrderStatusFinished  = "finished"
	OrderStatusCancelled = "cancelled"
)

var orderStatusAliases = map[string]string{
	"pendente":   OrderStatusPending,
	"recebido":   OrderStatusReceived,
	"pago":       OrderStatusPaid,
	"preparando": OrderStatusPreparing,
	"finalizado": OrderStatusFinished,
	"cancelado":  OrderStatusCancelled,
}

// NormalizeOrderStatus — приводит статус к каноническому виду (нижний регистр,
// португальские названия к английским). Второе значение false для неизвестного статуса.
func NormalizeOrderStatus(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case OrderStatusPending, OrderStatusReceived, OrderStatusPaid,
		OrderStatusPreparing, OrderStatusFinished, OrderStatusCancelled:
		return s, true
	}
	if canonical, ok := orderStatusAliases[s]; ok {
		return canonical, true
	}
	return s, false
}
