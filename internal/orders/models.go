package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusWaitingPayment Status = "WAITING_PAYMENT"
	StatusPaid           Status = "PAID"
	StatusShipped        Status = "SHIPPED"
	StatusDelivered      Status = "DELIVERED"
	StatusCanceled       Status = "CANCELED"
)

// Client is the user an order belongs to.
type Client struct {
	ID    int64
	Name  string
	Email string
}

// Item is one order line; Price is frozen at order time.
type Item struct {
	ProductID int64
	Name      string
	Price     decimal.Decimal
	Quantity  int
	ImgURL    string
}

func (i Item) SubTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Order struct {
	ID     int64
	Moment time.Time
	Status Status
	Client Client
	Items  []Item
}

func (o *Order) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range o.Items {
		sum = sum.Add(it.SubTotal())
	}
	return sum
}

type ClientDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ItemDTO struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImgURL    string  `json:"imgUrl"`
	SubTotal  float64 `json:"subTotal"`
}

// OrderDTO is the JSON shape of an order. The client email is not exposed.
type OrderDTO struct {
	ID     int64     `json:"id"`
	Moment time.Time `json:"moment"`
	Status Status    `json:"status"`
	Client ClientDTO `json:"client"`
	Items  []ItemDTO `json:"items"`
	Total  float64   `json:"total"`
}

func toDTO(o *Order) OrderDTO {
	items := make([]ItemDTO, len(o.Items))
	for i, it := range o.Items {
		items[i] = ItemDTO{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price.InexactFloat64(),
			Quantity:  it.Quantity,
			ImgURL:    it.ImgURL,
			SubTotal:  it.SubTotal().InexactFloat64(),
		}
	}
	return OrderDTO{
		ID:     o.ID,
		Moment: o.Moment,
		Status: o.Status,
		Client: ClientDTO{ID: o.Client.ID, Name: o.Client.Name},
		Items:  items,
		Total:  o.Total().InexactFloat64(),
	}
}
