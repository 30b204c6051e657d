package adminclient

import "time"

// Working copies of the three resource kinds. Unknown or read-only keys are
// ignored by the server, so the whole struct is posted back on update.

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Password  string    `json:"password"` // blank leaves the stored password unchanged
	Role      string    `json:"role"`
	Pict      Asset     `json:"pict"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Product struct {
	ID          int64      `json:"product_id"`
	Name        string     `json:"product_name"`
	Price       int64      `json:"price"`
	Description string     `json:"description"`
	Size        string     `json:"size"`
	Stock       int64      `json:"stock"`
	Pict        Asset      `json:"pict"`
	Rating      int        `json:"rating"`
	CategoryID  int64      `json:"categories_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at"`
}

type Category struct {
	ID        int64     `json:"categories_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductDeleted is the soft-delete acknowledgement.
type ProductDeleted struct {
	ProductID int64     `json:"product_id"`
	Present   bool      `json:"present"`
	DeletedAt time.Time `json:"deleted_at"`
}

// Listing paths the edit forms return to.
const (
	UsersPath      = "/admin/user"
	ProductsPath   = "/admin/product"
	CategoriesPath = "/admin/category"
)

func (c *Client) Users() *Resource[User]          { return NewResource[User](c, "/users") }
func (c *Client) Products() *Resource[Product]    { return NewResource[Product](c, "/products") }
func (c *Client) Categories() *Resource[Category] { return NewResource[Category](c, "/categories") }
