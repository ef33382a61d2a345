package httpx

import (
	"github.com/ovenline/pizza-storefront/internal/cart"
	"github.com/ovenline/pizza-storefront/internal/order"
	"github.com/ovenline/pizza-storefront/internal/order/statuslog"
)

type AddItemRequest struct {
	ProductID string       `json:"product_id"`
	Name      string       `json:"name"`
	Size      string       `json:"size"`
	Price     float64      `json:"price"`
	Quantity  int          `json:"quantity"`
	Image     string       `json:"image,omitempty"`
	Dough     string       `json:"dough,omitempty"`
	Crust     string       `json:"crust,omitempty"`
	Extras    []cart.Extra `json:"extras,omitempty"`
	Note      string       `json:"note,omitempty"`
}

// UpdateItemRequest is a partial line update. Nil fields are left
// untouched; a non-nil Quantity of zero or less removes the line.
type UpdateItemRequest struct {
	Quantity *int          `json:"quantity,omitempty"`
	Name     *string       `json:"name,omitempty"`
	Size     *string       `json:"size,omitempty"`
	Price    *float64      `json:"price,omitempty"`
	Image    *string       `json:"image,omitempty"`
	Dough    *string       `json:"dough,omitempty"`
	Crust    *string       `json:"crust,omitempty"`
	Extras   *[]cart.Extra `json:"extras,omitempty"`
	Note     *string       `json:"note,omitempty"`
}

type PromoRequest struct {
	Code string `json:"code"`
}

type CartResponse struct {
	Items           []cart.Item  `json:"items"`
	SavedForLater   []cart.Item  `json:"saved_for_later"`
	RecentlyRemoved []cart.Item  `json:"recently_removed"`
	ItemsCount      int          `json:"items_count"`
	Subtotal        float64      `json:"subtotal"`
	DeliveryFee     float64      `json:"delivery_fee"`
	Discount        float64      `json:"discount"`
	PromoCode       string       `json:"promo_code,omitempty"`
	Total           float64      `json:"total"`
	Summary         cart.Summary `json:"summary"`
}

type CheckoutRequest struct {
	CustomerName string `json:"customer_name"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
}

type OrderItemResponse struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Size      string  `json:"size,omitempty"`
	Dough     string  `json:"dough,omitempty"`
	Crust     string  `json:"crust,omitempty"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Note      string  `json:"note,omitempty"`
}

type OrderResponse struct {
	ID           string              `json:"id"`
	CustomerName string              `json:"customer_name"`
	Phone        string              `json:"phone,omitempty"`
	Address      string              `json:"address"`
	Status       string              `json:"status"`
	Subtotal     float64             `json:"subtotal"`
	DeliveryFee  float64             `json:"delivery_fee"`
	Discount     float64             `json:"discount"`
	Tax          float64             `json:"tax"`
	Total        float64             `json:"total"`
	PromoCode    string              `json:"promo_code,omitempty"`
	Items        []OrderItemResponse `json:"items"`
	CreatedAt    string              `json:"created_at"`
	UpdatedAt    string              `json:"updated_at"`
}

type StatusEntryResponse struct {
	Status    string `json:"status"`
	Note      string `json:"note,omitempty"`
	UpdatedAt string `json:"updated_at"`
}

type TrackingResponse struct {
	Order   OrderResponse         `json:"order"`
	History []StatusEntryResponse `json:"history"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func mapOrderToResponse(o order.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, l := range o.Items {
		items[i] = OrderItemResponse{
			ProductID: l.ProductID,
			Name:      l.Name,
			Size:      l.Size,
			Dough:     l.Dough,
			Crust:     l.Crust,
			Price:     l.Price,
			Quantity:  l.Quantity,
			Note:      l.Note,
		}
	}
	return OrderResponse{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		Phone:        o.Phone,
		Address:      o.Address,
		Status:       string(o.Status),
		Subtotal:     o.Subtotal,
		DeliveryFee:  o.DeliveryFee,
		Discount:     o.Discount,
		Tax:          o.Tax,
		Total:        o.Total,
		PromoCode:    o.PromoCode,
		Items:        items,
		CreatedAt:    o.CreatedAt.Format(timeLayout),
		UpdatedAt:    o.UpdatedAt.Format(timeLayout),
	}
}

func mapHistoryToResponse(entries []statuslog.Entry) []StatusEntryResponse {
	out := make([]StatusEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = StatusEntryResponse{
			Status:    e.Status,
			Note:      e.Note,
			UpdatedAt: e.UpdatedAt.Format(timeLayout),
		}
	}
	return out
}
