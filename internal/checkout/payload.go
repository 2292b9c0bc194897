package checkout

import "github.com/Gunvolt24/fastfood_storefront/internal/domain"

// BuildOrderRequest — заказ из снимка строк корзины.
// В режиме client каждая строка несёт unitPrice, в режиме server цену назначает сервис заказов.
func BuildOrderRequest(lines []domain.CartLine, mode domain.PriceMode, customerRef string) domain.OrderRequest {
	req := domain.OrderRequest{
		Lines:       make([]domain.OrderLine, 0, len(lines)),
		CustomerRef: customerRef,
	}
	for i := range lines {
		ol := domain.OrderLine{
			ProductID: lines[i].ProductID,
			Quantity:  lines[i].Quantity,
		}
		if mode != domain.PriceModeServer {
			price := lines[i].UnitPrice
			ol.UnitPrice = &price
		}
		req.Lines = append(req.Lines, ol)
	}
	return req
}
