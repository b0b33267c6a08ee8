package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/shop-directory/internal/domain"
)

var (
	// ErrNotFound is returned when no shop matches the lookup.
	ErrNotFound = errors.New("shop not found")
	// ErrDuplicateEmail is returned when the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
)

const uniqueViolation = "23505"

// ShopRepository defines persistence access for shops.
type ShopRepository interface {
	Create(ctx context.Context, shop *domain.Shop) error
	GetByID(ctx context.Context, id string) (*domain.Shop, error)
	GetByEmail(ctx context.Context, email string) (*domain.Shop, error)
	FindByNormalizedName(ctx context.Context, name string) ([]domain.Shop, error)
	List(ctx context.Context) ([]domain.Shop, error)
	UpdateNames(ctx context.Context, id string, shopName, ownerName *string) (*domain.Shop, error)
	Delete(ctx context.Context, id string) (*domain.Shop, error)
}

// DBTX is the subset of pgx used by the repository. *pgxpool.Pool, pgx.Tx
// and pgxmock pools satisfy it.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type shopRepository struct {
	db DBTX
}

// NewShopRepository returns a Postgres-backed implementation.
func NewShopRepository(db DBTX) ShopRepository {
	return &shopRepository{db: db}
}

const shopColumns = `id::text, shop_name, email, password_hash, owner_name, address, city, pincode,
        latitude, longitude, created_at, updated_at`

func (r *shopRepository) Create(ctx context.Context, shop *domain.Shop) error {
	const query = `
        INSERT INTO shops (id, shop_name, email, password_hash, owner_name, address, city, pincode, latitude, longitude)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		shop.ID,
		shop.ShopName,
		shop.Email,
		shop.PasswordHash,
		shop.OwnerName,
		shop.Address,
		shop.City,
		shop.Pincode,
		shop.Latitude,
		shop.Longitude,
	).Scan(&shop.CreatedAt, &shop.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *shopRepository) GetByID(ctx context.Context, id string) (*domain.Shop, error) {
	query := `SELECT ` + shopColumns + ` FROM shops WHERE id=$1`
	return scanShop(r.db.QueryRow(ctx, query, id))
}

func (r *shopRepository) GetByEmail(ctx context.Context, email string) (*domain.Shop, error) {
	query := `SELECT ` + shopColumns + ` FROM shops WHERE email=$1`
	return scanShop(r.db.QueryRow(ctx, query, email))
}

// FindByNormalizedName compares whitespace-stripped, lower-cased names.
func (r *shopRepository) FindByNormalizedName(ctx context.Context, name string) ([]domain.Shop, error) {
	query := `SELECT ` + shopColumns + ` FROM shops
        WHERE lower(regexp_replace(shop_name, '` + domain.NameWhitespacePattern + `', '', 'g')) = $1
        ORDER BY created_at, id`
	return r.queryShops(ctx, query, domain.NormalizeShopName(name))
}

func (r *shopRepository) List(ctx context.Context) ([]domain.Shop, error) {
	query := `SELECT ` + shopColumns + ` FROM shops ORDER BY created_at, id`
	return r.queryShops(ctx, query)
}

// UpdateNames changes shop_name and/or owner_name; nil keeps the stored value.
func (r *shopRepository) UpdateNames(ctx context.Context, id string, shopName, ownerName *string) (*domain.Shop, error) {
	query := `
        UPDATE shops SET shop_name = COALESCE($2, shop_name), owner_name = COALESCE($3, owner_name), updated_at = NOW()
        WHERE id = $1
        RETURNING ` + shopColumns
	return scanShop(r.db.QueryRow(ctx, query, id, shopName, ownerName))
}

func (r *shopRepository) Delete(ctx context.Context, id string) (*domain.Shop, error) {
	query := `DELETE FROM shops WHERE id = $1 RETURNING ` + shopColumns
	return scanShop(r.db.QueryRow(ctx, query, id))
}

func (r *shopRepository) queryShops(ctx context.Context, query string, args ...any) ([]domain.Shop, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.Shop, 0)
	for rows.Next() {
		shop, err := scanShop(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *shop)
	}
	return result, rows.Err()
}

func scanShop(row pgx.Row) (*domain.Shop, error) {
	var shop domain.Shop
	if err := row.Scan(
		&shop.ID,
		&shop.ShopName,
		&shop.Email,
		&shop.PasswordHash,
		&shop.OwnerName,
		&shop.Address,
		&shop.City,
		&shop.Pincode,
		&shop.Latitude,
		&shop.Longitude,
		&shop.CreatedAt,
		&shop.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &shop, nil
}
