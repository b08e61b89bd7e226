// Package fixtures is the seed data of the commerce database. The same records
// back the in-memory stores and the postgres seed, so both serve identical content.
package fixtures

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID   int64
	Name string
}

type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	ImgURL      string
	CategoryIDs []int64
}

type User struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	BirthDate time.Time
	Roles     []string
}

type OrderItem struct {
	ProductID int64
	Quantity  int
	Price     decimal.Decimal
}

type Order struct {
	ID       int64
	Moment   time.Time
	Status   string
	ClientID int64
	Items    []OrderItem
}

const lorem = "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua. Ut enim ad minim veniam, quis nostrud exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat. Duis aute irure dolor in reprehenderit in voluptate velit esse cillum dolore eu fugiat nulla pariatur. Excepteur sint occaecat cupidatat non proident, sunt in culpa qui officia deserunt mollit anim id est laborum."

func img(id int) string {
	return fmt.Sprintf("https://raw.githubusercontent.com/devsuperior/dscatalog-resources/master/backend/img/%d-big.jpg", id)
}

func Categories() []Category {
	return []Category{
		{ID: 1, Name: "Livros"},
		{ID: 2, Name: "Eletrônicos"},
		{ID: 3, Name: "Computadores"},
	}
}

// Products returns the catalog ordered by id.
func Products() []Product {
	return []Product{
		{ID: 1, Name: "The Lord of the Rings", Description: lorem, Price: decimal.RequireFromString("90.5"), ImgURL: img(1), CategoryIDs: []int64{1}},
		{ID: 2, Name: "Smart TV", Description: lorem, Price: decimal.RequireFromString("2190.0"), ImgURL: img(2), CategoryIDs: []int64{2, 3}},
		{ID: 3, Name: "Macbook Pro", Description: lorem, Price: decimal.RequireFromString("1250.0"), ImgURL: img(3), CategoryIDs: []int64{3}},
		{ID: 4, Name: "PC Gamer", Description: lorem, Price: decimal.RequireFromString("1200.0"), ImgURL: img(4), CategoryIDs: []int64{3}},
		{ID: 5, Name: "Rails for Dummies", Description: lorem, Price: decimal.RequireFromString("100.99"), ImgURL: img(5), CategoryIDs: []int64{1}},
		{ID: 6, Name: "PC Gamer Ex", Description: lorem, Price: decimal.RequireFromString("1350.0"), ImgURL: img(6), CategoryIDs: []int64{3}},
		{ID: 7, Name: "PC Gamer X", Description: lorem, Price: decimal.RequireFromString("1350.0"), ImgURL: img(7), CategoryIDs: []int64{3}},
		{ID: 8, Name: "PC Gamer Alfa", Description: lorem, Price: decimal.RequireFromString("1850.0"), ImgURL: img(8), CategoryIDs: []int64{3}},
		{ID: 9, Name: "PC Gamer Tera", Description: lorem, Price: decimal.RequireFromString("1950.0"), ImgURL: img(9), CategoryIDs: []int64{3}},
		{ID: 10, Name: "PC Gamer Y", Description: lorem, Price: decimal.RequireFromString("1700.0"), ImgURL: img(10), CategoryIDs: []int64{3}},
		{ID: 11, Name: "PC Gamer Nitro", Description: lorem, Price: decimal.RequireFromString("1450.0"), ImgURL: img(11), CategoryIDs: []int64{3}},
		{ID: 12, Name: "PC Gamer Card", Description: lorem, Price: decimal.RequireFromString("1850.0"), ImgURL: img(12), CategoryIDs: []int64{3}},
		{ID: 13, Name: "PC Gamer Plus", Description: lorem, Price: decimal.RequireFromString("1350.0"), ImgURL: img(13), CategoryIDs: []int64{3}},
		{ID: 14, Name: "PC Gamer Hera", Description: lorem, Price: decimal.RequireFromString("1350.0"), ImgURL: img(14), CategoryIDs: []int64{3}},
		{ID: 15, Name: "PC Gamer Weed", Description: lorem, Price: decimal.RequireFromString("1350.0"), ImgURL: img(15), CategoryIDs: []int64{3}},
		{ID: 16, Name: "PC Gamer Max", Description: lorem, Price: decimal.RequireFromString("1350.0"), ImgURL: img(16), CategoryIDs: []int64{3}},
		{ID: 17, Name: "PC Gamer Turbo", Description: lorem, Price: decimal.RequireFromString("1350.0"), ImgURL: img(17), CategoryIDs: []int64{3}},
		{ID: 18, Name: "PC Gamer Hot", Description: lorem, Price: decimal.RequireFromString("1350.0"), ImgURL: img(18), CategoryIDs: []int64{3}},
		{ID: 19, Name: "PC Gamer Ez", Description: lorem, Price: decimal.RequireFromString("1350.0"), ImgURL: img(19), CategoryIDs: []int64{3}},
		{ID: 20, Name: "PC Gamer Tr", Description: lorem, Price: decimal.RequireFromString("1350.0"), ImgURL: img(20), CategoryIDs: []int64{3}},
		{ID: 21, Name: "PC Gamer Tx", Description: lorem, Price: decimal.RequireFromString("1350.0"), ImgURL: img(21), CategoryIDs: []int64{3}},
		{ID: 22, Name: "PC Gamer Er", Description: lorem, Price: decimal.RequireFromString("1350.0"), ImgURL: img(22), CategoryIDs: []int64{3}},
		{ID: 23, Name: "PC Gamer Min", Description: lorem, Price: decimal.RequireFromString("1350.0"), ImgURL: img(23), CategoryIDs: []int64{3}},
		{ID: 24, Name: "PC Gamer Boo", Description: lorem, Price: decimal.RequireFromString("2350.0"), ImgURL: img(24), CategoryIDs: []int64{3}},
		{ID: 25, Name: "PC Gamer Foo", Description: lorem, Price: decimal.RequireFromString("4340.0"), ImgURL: img(25), CategoryIDs: []int64{3}},
	}
}

func Users() []User {
	return []User{
		{ID: 1, Name: "Maria Brown", Email: "maria@gmail.com", Phone: "988888888", BirthDate: date(2001, 7, 25), Roles: []string{"CLIENT"}},
		{ID: 2, Name: "Alex Green", Email: "alex@gmail.com", Phone: "977777777", BirthDate: date(1987, 12, 13), Roles: []string{"CLIENT", "ADMIN"}},
	}
}

func Orders() []Order {
	return []Order{
		{
			ID: 1, Moment: moment("2022-07-25T13:00:00Z"), Status: "PAID", ClientID: 1,
			Items: []OrderItem{
				{ProductID: 1, Quantity: 2, Price: decimal.RequireFromString("90.5")},
				{ProductID: 3, Quantity: 1, Price: decimal.RequireFromString("1250.0")},
			},
		},
		{
			ID: 2, Moment: moment("2022-07-29T15:50:00Z"), Status: "DELIVERED", ClientID: 2,
			Items: []OrderItem{
				{ProductID: 3, Quantity: 1, Price: decimal.RequireFromString("1250.0")},
			},
		},
		{
			ID: 3, Moment: moment("2022-08-03T14:20:00Z"), Status: "WAITING_PAYMENT", ClientID: 1,
			Items: []OrderItem{
				{ProductID: 1, Quantity: 1, Price: decimal.RequireFromString("90.5")},
			},
		},
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func moment(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}
