package domain

// DefaultImage is served from the embedded static assets.
const DefaultImage = "/static/placeholder.svg"

// InquiryStatusNew is the only status an inquiry ever has.
const InquiryStatusNew = "New"

type Product struct {
	ID          ID      `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Category    string  `db:"category" json:"category"`
	Price       float64 `db:"price" json:"price"`
	Description string  `db:"description" json:"description"`
	Image       string  `db:"image" json:"image"`
	CreatedAt   string  `db:"created_at" json:"created_at"`
}

// NewProduct is what the admin form submits; id and created_at come from the backend.
type NewProduct struct {
	Name        string
	Category    string
	Price       float64
	Description string
	Image       string
}

type Inquiry struct {
	ID        ID     `db:"id" json:"id"`
	Product   string `db:"product" json:"product"` // product name at submission time
	Customer  string `db:"customer" json:"customer"`
	Contact   string `db:"contact" json:"contact"`
	Message   string `db:"message" json:"message"`
	Status    string `db:"status" json:"status"`
	CreatedAt string `db:"created_at" json:"created_at"`
}

type NewInquiry struct {
	Product  string
	Customer string
	Contact  string
	Message  string
}
