package handlers

import (
	"strings"
	"time"

	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/shopspring/decimal"
)

// Serializer turns models into their JSON representations.
type Serializer struct {
	// MediaURL prefixes stored image paths, e.g. "/media".
	MediaURL string
}

func (s Serializer) media(path string) string {
	if path == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") || strings.HasPrefix(path, "/") {
		return path
	}
	return strings.TrimRight(s.MediaURL, "/") + "/" + path
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	IsStaff   bool      `json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
}

func (s Serializer) User(u *models.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		IsStaff:   u.IsStaff,
		CreatedAt: u.CreatedAt,
	}
}

type sellerResponse struct {
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	Avatar  string `json:"avatar"`
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
}

func (s Serializer) Seller(sel *models.Seller) *sellerResponse {
	if sel == nil {
		return nil
	}
	return &sellerResponse{
		Name:    sel.BusinessName,
		Slug:    sel.Slug,
		Avatar:  s.media(sel.Avatar),
		City:    sel.City,
		Country: sel.Country,
	}
}

type categoryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Image string `json:"image"`
}

func (s Serializer) Category(c *models.Category) categoryResponse {
	return categoryResponse{
		ID:    c.ID,
		Name:  c.Name,
		Slug:  c.Slug,
		Image: s.media(c.Image),
	}
}

func (s Serializer) Categories(categories []models.Category) []categoryResponse {
	out := make([]categoryResponse, len(categories))
	for i := range categories {
		out[i] = s.Category(&categories[i])
	}
	return out
}

type productResponse struct {
	ID           string           `json:"id"`
	Seller       *sellerResponse  `json:"seller"`
	Name         string           `json:"name"`
	Slug         string           `json:"slug"`
	Desc         string           `json:"desc"`
	PriceOld     *string          `json:"price_old"`
	PriceCurrent string           `json:"price_current"`
	Category     categoryResponse `json:"category"`
	InStock      int              `json:"in_stock"`
	Rating       float64          `json:"rating"`
	Image1       string           `json:"image1"`
	Image2       string           `json:"image2"`
	Image3       string           `json:"image3"`
	CreatedAt    time.Time        `json:"created_at"`
}

func (s Serializer) product(p *models.Product, rating float64) productResponse {
	resp := productResponse{
		ID:           p.ID,
		Seller:       s.Seller(p.Seller),
		Name:         p.Name,
		Slug:         p.Slug,
		Desc:         p.Desc,
		PriceCurrent: money(p.PriceCurrent),
		Category:     s.Category(&p.Category),
		InStock:      p.InStock,
		Rating:       rating,
		Image1:       s.media(p.Image1),
		Image2:       s.media(p.Image2),
		Image3:       s.media(p.Image3),
		CreatedAt:    p.CreatedAt,
	}
	if p.PriceOld != nil {
		old := money(*p.PriceOld)
		resp.PriceOld = &old
	}
	return resp
}

func (s Serializer) Product(v *services.ProductView) productResponse {
	return s.product(&v.Product, v.Rating)
}

func (s Serializer) Products(views []services.ProductView) []productResponse {
	out := make([]productResponse, len(views))
	for i := range views {
		out[i] = s.Product(&views[i])
	}
	return out
}

type productPageResponse struct {
	Count   int64             `json:"count"`
	Page    int               `json:"page"`
	PerPage int               `json:"per_page"`
	Results []productResponse `json:"results"`
}

func (s Serializer) ProductPage(p *services.ProductPage) productPageResponse {
	return productPageResponse{
		Count:   p.Count,
		Page:    p.Page,
		PerPage: p.PerPage,
		Results: s.Products(p.Results),
	}
}

type orderItemResponse struct {
	ID       string          `json:"id"`
	Product  productResponse `json:"product"`
	Quantity int             `json:"quantity"`
	Total    string          `json:"total"`
}

// OrderItem renders a cart or order line. Ratings are not part of line items.
func (s Serializer) OrderItem(i *models.OrderItem) orderItemResponse {
	return orderItemResponse{
		ID:       i.ID,
		Product:  s.product(&i.Product, 0),
		Quantity: i.Quantity,
		Total:    money(i.Total()),
	}
}

func (s Serializer) OrderItems(items []models.OrderItem) []orderItemResponse {
	out := make([]orderItemResponse, len(items))
	for i := range items {
		out[i] = s.OrderItem(&items[i])
	}
	return out
}

type orderResponse struct {
	ID             string              `json:"id"`
	TxRef          string              `json:"tx_ref"`
	PaymentStatus  string              `json:"payment_status"`
	DeliveryStatus string              `json:"delivery_status"`
	FullName       string              `json:"full_name"`
	Email          string              `json:"email"`
	Phone          string              `json:"phone"`
	Address        string              `json:"address"`
	City           string              `json:"city"`
	Country        string              `json:"country"`
	Zipcode        string              `json:"zipcode"`
	Items          []orderItemResponse `json:"items"`
	Total          string              `json:"total"`
	CreatedAt      time.Time           `json:"created_at"`
}

func (s Serializer) Order(o *models.Order) orderResponse {
	return orderResponse{
		ID:             o.ID,
		TxRef:          o.TxRef,
		PaymentStatus:  o.PaymentStatus,
		DeliveryStatus: o.DeliveryStatus,
		FullName:       o.FullName,
		Email:          o.Email,
		Phone:          o.Phone,
		Address:        o.Address,
		City:           o.City,
		Country:        o.Country,
		Zipcode:        o.Zipcode,
		Items:          s.OrderItems(o.Items),
		Total:          money(o.Total()),
		CreatedAt:      o.CreatedAt,
	}
}

func (s Serializer) Orders(orders []models.Order) []orderResponse {
	out := make([]orderResponse, len(orders))
	for i := range orders {
		out[i] = s.Order(&orders[i])
	}
	return out
}

type reviewerResponse struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

type reviewResponse struct {
	ID        string           `json:"id"`
	User      reviewerResponse `json:"user"`
	Rating    int              `json:"rating"`
	Text      string           `json:"text"`
	CreatedAt time.Time        `json:"created_at"`
}

func (s Serializer) Review(r *models.Review) reviewResponse {
	return reviewResponse{
		ID:        r.ID,
		User:      reviewerResponse{Username: r.User.Username, FullName: r.User.FullName},
		Rating:    r.Rating,
		Text:      r.Text,
		CreatedAt: r.CreatedAt,
	}
}

func (s Serializer) Reviews(reviews []models.Review) []reviewResponse {
	out := make([]reviewResponse, len(reviews))
	for i := range reviews {
		out[i] = s.Review(&reviews[i])
	}
	return out
}

type shippingAddressResponse struct {
	ID string `json:"id"`
	models.ShippingDetails
}

func (s Serializer) ShippingAddress(a *models.ShippingAddress) shippingAddressResponse {
	return shippingAddressResponse{ID: a.ID, ShippingDetails: models.ShippingDetailsFromAddress(*a)}
}

func (s Serializer) ShippingAddresses(addresses []models.ShippingAddress) []shippingAddressResponse {
	out := make([]shippingAddressResponse, len(addresses))
	for i := range addresses {
		out[i] = s.ShippingAddress(&addresses[i])
	}
	return out
}
