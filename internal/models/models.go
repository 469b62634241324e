package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"  json:"_id"`
	Name      string             `bson:"name"           json:"name"`
	Email     string             `bson:"email"          json:"email"`
	Password  string             `bson:"password"       json:"-"`
	IsAdmin   bool               `bson:"is_admin"       json:"isAdmin"`
	Wishlist  []WishlistEntry    `bson:"wishlist"       json:"wishlist"`
	CreatedAt time.Time          `bson:"created_at"     json:"createdAt"`
}

// WishlistEntry snapshots the product's display fields at the time it was
// saved. Product is the reference used for membership checks; at most one
// entry per product is allowed.
type WishlistEntry struct {
	ID      primitive.ObjectID `bson:"_id"     json:"_id"`
	Name    string             `bson:"name"    json:"name"`
	Image   string             `bson:"image"   json:"image"`
	Price   float64            `bson:"price"   json:"price"`
	Product primitive.ObjectID `bson:"product" json:"product"`
}

type Product struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"  json:"_id"`
	Name         string             `bson:"name"           json:"name"`
	Image        string             `bson:"image"          json:"image"`
	Description  string             `bson:"description"    json:"description"`
	Brand        string             `bson:"brand"          json:"brand"`
	Category     string             `bson:"category"       json:"category"`
	Price        float64            `bson:"price"          json:"price"`
	CountInStock int                `bson:"count_in_stock" json:"countInStock"`
	Rating       float64            `bson:"rating"         json:"rating"`
	NumReviews   int                `bson:"num_reviews"    json:"numReviews"`
}

type OrderItem struct {
	Name    string             `bson:"name"    json:"name"`
	Qty     int                `bson:"qty"     json:"qty"`
	Image   string             `bson:"image"   json:"image"`
	Price   float64            `bson:"price"   json:"price"`
	Product primitive.ObjectID `bson:"product" json:"product"`
}

type ShippingAddress struct {
	Address    string `bson:"address"     json:"address"`
	City       string `bson:"city"        json:"city"`
	PostalCode string `bson:"postal_code" json:"postalCode"`
	Country    string `bson:"country"     json:"country"`
}

// PaymentResult is the confirmation payload of the external payment system,
// stored verbatim on the first successful mark-paid.
type PaymentResult struct {
	ID           string `bson:"id"            json:"id"`
	Status       string `bson:"status"        json:"status"`
	UpdateTime   string `bson:"update_time"   json:"updateTime"`
	EmailAddress string `bson:"email_address" json:"emailAddress"`
}

// Order is a frozen snapshot of a purchase. Items and prices are copied at
// checkout and never live-linked back to the catalog. The two status flags
// are independent and move one way only.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"            json:"_id"`
	User            primitive.ObjectID `bson:"user"                     json:"user"`
	OrderItems      []OrderItem        `bson:"order_items"              json:"orderItems"`
	ShippingAddress ShippingAddress    `bson:"shipping_address"         json:"shippingAddress"`
	PaymentMethod   string             `bson:"payment_method"           json:"paymentMethod"`
	ItemsPrice      float64            `bson:"items_price"              json:"itemsPrice"`
	TaxPrice        float64            `bson:"tax_price"                json:"taxPrice"`
	ShippingPrice   float64            `bson:"shipping_price"           json:"shippingPrice"`
	TotalPrice      float64            `bson:"total_price"              json:"totalPrice"`
	IsPaid          bool               `bson:"is_paid"                  json:"isPaid"`
	PaidAt          *time.Time         `bson:"paid_at,omitempty"        json:"paidAt,omitempty"`
	PaymentResult   *PaymentResult     `bson:"payment_result,omitempty" json:"paymentResult,omitempty"`
	IsDelivered     bool               `bson:"is_delivered"             json:"isDelivered"`
	DeliveredAt     *time.Time         `bson:"delivered_at,omitempty"   json:"deliveredAt,omitempty"`
	CreatedAt       time.Time          `bson:"created_at"               json:"createdAt"`
}
