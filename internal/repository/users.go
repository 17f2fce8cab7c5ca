package repository

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"ayana_shop/internal/models"
)

const userColumns = `id, email, full_name, password_hash, role, email_confirmed, provider, created_at`

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, strings.ToLower(u.Email), u.FullName, u.PasswordHash, u.Role, u.EmailConfirmed, u.Provider, u.CreatedAt,
	)
	return errors.Wrap(err, "création utilisateur")
}

func (r *UserRepository) ByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.db.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE email = $1`, strings.ToLower(email))
	if err != nil {
		return nil, errors.Wrap(notFound(err), "utilisateur par email")
	}
	return &u, nil
}

func (r *UserRepository) ByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := r.db.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, errors.Wrapf(notFound(err), "utilisateur %s", id)
	}
	return &u, nil
}

func (r *UserRepository) ConfirmEmail(ctx context.Context, id string) error {
	err := affected(r.db.ExecContext(ctx, `UPDATE users SET email_confirmed = TRUE WHERE id = $1`, id))
	return errors.Wrapf(err, "confirmation email %s", id)
}

// CustomersWithLastPurchase clients ayant au moins une commande
func (r *UserRepository) CustomersWithLastPurchase(ctx context.Context) ([]models.CustomerActivity, error) {
	rows := []models.CustomerActivity{}
	err := r.db.SelectContext(ctx, &rows,
		`SELECT u.id, u.email, u.full_name, u.password_hash, u.role, u.email_confirmed, u.provider, u.created_at,
		        max(o.purchase_date) AS last_purchase
		 FROM users u JOIN orders o ON o.customer_id = u.id
		 WHERE u.role = $1
		 GROUP BY u.id
		 ORDER BY u.email`, models.RoleCustomer)
	return rows, errors.Wrap(err, "activité clients")
}
