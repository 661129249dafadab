package models

// User is keyed by email; the password column holds whatever the configured
// credential scheme produced (plaintext under the legacy "plain" scheme).
type User struct {
	Email    string `gorm:"primaryKey"               json:"email"`
	Name     string `gorm:"not null"                 json:"name"`
	Password string `gorm:"not null"                 json:"-"`
	CPF      string `json:"cpf"`
	Address  string `json:"address"`
	Role     string `gorm:"not null;default:client"  json:"role"`
}

type Product struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"not null"                 json:"name"`
	Description string  `json:"description"`
	Price       float64 `gorm:"not null"                 json:"price"`
	Stock       int     `gorm:"default:0"                json:"stock"`
	ImagePath   string  `json:"image_path"`
}

// Order snapshots the product name as text on purpose: the order keeps the
// name it was placed under even if the product is later renamed or deleted.
type Order struct {
	ID                 uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserEmail          string `gorm:"index;not null"           json:"user_email"`
	ProductName        string `gorm:"not null"                 json:"product_name"`
	Quantity           int    `gorm:"not null;check:quantity>0" json:"quantity"`
	Details            string `json:"details"`
	ReferenceImagePath string `json:"reference_image_path"`
	Status             string `gorm:"not null;default:Pending" json:"status"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"      json:"id"`
	Token     string `gorm:"unique;not null" json:"token"`
	UserEmail string `gorm:"index;not null"  json:"user_email"`
	ExpiresAt int64  `gorm:"not null"        json:"expires_at"`
	Revoked   bool   `gorm:"default:false"   json:"revoked"`
}

const (
	RoleClient = "client"
	RoleAdmin  = "admin"

	StatusPending = "Pending"
)

// Session is per-request state, never persisted.
type Session struct {
	LoggedIn  bool   `json:"logged_in"`
	Username  string `json:"username"`
	UserEmail string `json:"user_email"`
	IsAdmin   bool   `json:"is_admin"`
}

func GuestSession() Session {
	return Session{Username: "Guest"}
}

func SessionFor(u *User) Session {
	return Session{
		LoggedIn:  true,
		Username:  u.Name,
		UserEmail: u.Email,
		IsAdmin:   u.Role == RoleAdmin,
	}
}
