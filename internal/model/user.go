package model

type User struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	LastName string `json:"last_name" db:"last_name"`
	Email    string `json:"email" db:"email"`
	Username string `json:"username" db:"username"`
	Password string `json:"-" db:"password"`
	Enabled  bool   `json:"enabled" db:"enabled"`
	Audit
}

type UserProfile struct {
	ID       int64  `json:"id" db:"id"`
	UserID   int64  `json:"user_id" db:"id_user"`
	Email    string `json:"email" db:"email"`
	IsAdmin  bool   `json:"is_admin" db:"is_admin"`
	RoleType Role   `json:"role_type" db:"role_type"`
	Audit
}

type Customer struct {
	ID       int64    `json:"id" db:"id"`
	UserID   int64    `json:"user_id" db:"id_user"`
	Name     string   `json:"name" db:"name"`
	DateYear *int     `json:"date_year,omitempty" db:"date_year"`
	DNI      string   `json:"dni,omitempty" db:"dni"`
	Email    string   `json:"email" db:"email"`
	Phone    string   `json:"phone,omitempty" db:"phone"`
	Address  string   `json:"address,omitempty" db:"address"`
	GPSLat   *float64 `json:"gps_lat,omitempty" db:"gps_lat"`
	GPSLon   *float64 `json:"gps_lon,omitempty" db:"gps_lon"`
	Audit
}

type Provider struct {
	ID              int64    `json:"id" db:"id"`
	UserID          int64    `json:"user_id" db:"id_user"`
	Name            string   `json:"name" db:"name"`
	Address         string   `json:"address,omitempty" db:"address"`
	GPSLat          *float64 `json:"gps_lat,omitempty" db:"gps_lat"`
	GPSLong         *float64 `json:"gps_long,omitempty" db:"gps_long"`
	TypeProviderID  *int64   `json:"type_provider_id,omitempty" db:"id_type_provider"`
	GradeProviderID *int64   `json:"grade_provider_id,omitempty" db:"id_grade_provider"`
	ProfessionID    *int64   `json:"profession_id,omitempty" db:"id_profession"`
	OfferID         *int64   `json:"offer_id,omitempty" db:"id_offer"`
	CategoryID      *int64   `json:"category_id,omitempty" db:"id_category"`
	Audit
}

// RegisterRequest is the payload accepted by the registration endpoint.
type RegisterRequest struct {
	Name     string        `json:"name" validate:"required,max=100"`
	LastName string        `json:"last_name" validate:"required,max=100"`
	Email    string        `json:"email" validate:"required,email,max=255"`
	Username string        `json:"username" validate:"omitempty,max=100"`
	Password string        `json:"password" validate:"required,min=6,max=72"`
	RoleType string        `json:"role_type" validate:"required"`
	Customer *CustomerData `json:"customer,omitempty"`
	Provider *ProviderData `json:"provider,omitempty"`
}

type CustomerData struct {
	Name     string   `json:"name" validate:"required,max=100"`
	DateYear *int     `json:"date_year,omitempty" validate:"omitempty,gte=1900,lte=2100"`
	DNI      string   `json:"dni,omitempty" validate:"max=20"`
	Phone    string   `json:"phone,omitempty" validate:"max=20"`
	Address  string   `json:"address,omitempty" validate:"max=255"`
	GPSLat   *float64 `json:"gps_lat,omitempty" validate:"omitempty,latitude"`
	GPSLon   *float64 `json:"gps_lon,omitempty" validate:"omitempty,longitude"`
}

type ProviderData struct {
	Name            string   `json:"name" validate:"required,max=100"`
	Address         string   `json:"address,omitempty" validate:"max=255"`
	GPSLat          *float64 `json:"gps_lat,omitempty" validate:"omitempty,latitude"`
	GPSLong         *float64 `json:"gps_long,omitempty" validate:"omitempty,longitude"`
	TypeProviderID  *int64   `json:"type_provider_id,omitempty"`
	GradeProviderID *int64   `json:"grade_provider_id,omitempty"`
	ProfessionID    *int64   `json:"profession_id,omitempty"`
	OfferID         *int64   `json:"offer_id,omitempty"`
	CategoryID      *int64   `json:"category_id,omitempty"`
}

// Registration is everything a successful registration created.
type Registration struct {
	User     *User        `json:"user"`
	Profile  *UserProfile `json:"profile"`
	Customer *Customer    `json:"customer,omitempty"`
	Provider *Provider    `json:"provider,omitempty"`
}
