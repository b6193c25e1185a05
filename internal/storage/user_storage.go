package storage

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/samims/notification-api/internal/model"
)

const (
	userColumns = `id, name, last_name, email, username, password, enabled,
		id_user_create, id_user_update, date_create, date_update`
	profileColumns = `id, id_user, email, is_admin, role_type,
		id_user_create, id_user_update, date_create, date_update`
	customerColumns = `id, id_user, name, date_year, dni, email, phone, address, gps_lat, gps_lon,
		id_user_create, id_user_update, date_create, date_update`
	providerColumns = `id, id_user, name, address, gps_lat, gps_long,
		id_type_provider, id_grade_provider, id_profession, id_offer, id_category,
		id_user_create, id_user_update, date_create, date_update`
)

type userStorage struct {
	sqlStore
}

func NewUserStorage(db *sqlx.DB) UserStorage {
	return &userStorage{sqlStore: newSQLStore(db)}
}

func (s *userStorage) WithTx(ctx context.Context, fn func(UserStorage) error) error {
	return s.withTx(ctx, func(tx sqlStore) error {
		return fn(&userStorage{sqlStore: tx})
	})
}

func (s *userStorage) CreateUser(ctx context.Context, u *model.User) error {
	stampCreate(ctx, &u.Audit, s.now)
	query := s.ext.Rebind(`
		INSERT INTO "user" (name, last_name, email, username, password, enabled,
			id_user_create, id_user_update, date_create, date_update)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)

	err := sqlx.GetContext(ctx, s.ext, &u.ID, query,
		u.Name, u.LastName, u.Email, u.Username, u.Password, u.Enabled,
		u.CreatedBy, u.UpdatedBy, u.CreatedAt, u.UpdatedAt)
	return mapError(err, "user")
}

func (s *userStorage) CreateProfile(ctx context.Context, p *model.UserProfile) error {
	stampCreate(ctx, &p.Audit, s.now)
	query := s.ext.Rebind(`
		INSERT INTO user_profile (id_user, email, is_admin, role_type,
			id_user_create, id_user_update, date_create, date_update)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)

	err := sqlx.GetContext(ctx, s.ext, &p.ID, query,
		p.UserID, p.Email, p.IsAdmin, string(p.RoleType),
		p.CreatedBy, p.UpdatedBy, p.CreatedAt, p.UpdatedAt)
	return mapError(err, "user profile")
}

func (s *userStorage) CreateCustomer(ctx context.Context, c *model.Customer) error {
	stampCreate(ctx, &c.Audit, s.now)
	query := s.ext.Rebind(`
		INSERT INTO customer (id_user, name, date_year, dni, email, phone, address, gps_lat, gps_lon,
			id_user_create, id_user_update, date_create, date_update)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)

	err := sqlx.GetContext(ctx, s.ext, &c.ID, query,
		c.UserID, c.Name, c.DateYear, c.DNI, c.Email, c.Phone, c.Address, c.GPSLat, c.GPSLon,
		c.CreatedBy, c.UpdatedBy, c.CreatedAt, c.UpdatedAt)
	return mapError(err, "customer")
}

func (s *userStorage) CreateProvider(ctx context.Context, p *model.Provider) error {
	stampCreate(ctx, &p.Audit, s.now)
	query := s.ext.Rebind(`
		INSERT INTO provider (id_user, name, address, gps_lat, gps_long,
			id_type_provider, id_grade_provider, id_profession, id_offer, id_category,
			id_user_create, id_user_update, date_create, date_update)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)

	err := sqlx.GetContext(ctx, s.ext, &p.ID, query,
		p.UserID, p.Name, p.Address, p.GPSLat, p.GPSLong,
		p.TypeProviderID, p.GradeProviderID, p.ProfessionID, p.OfferID, p.CategoryID,
		p.CreatedBy, p.UpdatedBy, p.CreatedAt, p.UpdatedAt)
	return mapError(err, "provider")
}

func (s *userStorage) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	query := s.ext.Rebind(`SELECT ` + userColumns + ` FROM "user" WHERE email = ?`)
	if err := sqlx.GetContext(ctx, s.ext, &u, query, email); err != nil {
		return nil, mapError(err, "user")
	}
	return &u, nil
}

func (s *userStorage) FindProfileByUserID(ctx context.Context, userID int64) (*model.UserProfile, error) {
	var p model.UserProfile
	query := s.ext.Rebind(`SELECT ` + profileColumns + ` FROM user_profile WHERE id_user = ?`)
	if err := sqlx.GetContext(ctx, s.ext, &p, query, userID); err != nil {
		return nil, mapError(err, "user profile")
	}
	return &p, nil
}

func (s *userStorage) FindCustomerByUserID(ctx context.Context, userID int64) (*model.Customer, error) {
	var c model.Customer
	query := s.ext.Rebind(`SELECT ` + customerColumns + ` FROM customer WHERE id_user = ?`)
	if err := sqlx.GetContext(ctx, s.ext, &c, query, userID); err != nil {
		return nil, mapError(err, "customer")
	}
	return &c, nil
}

func (s *userStorage) FindProviderByUserID(ctx context.Context, userID int64) (*model.Provider, error) {
	var p model.Provider
	query := s.ext.Rebind(`SELECT ` + providerColumns + ` FROM provider WHERE id_user = ?`)
	if err := sqlx.GetContext(ctx, s.ext, &p, query, userID); err != nil {
		return nil, mapError(err, "provider")
	}
	return &p, nil
}

func (s *userStorage) Ping(ctx context.Context) error {
	return s.ping(ctx)
}
