package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"ayana_shop/internal/models"
)

const productColumns = `id, name, price, stock, category, flower_type, description, image_url`

type ProductRepository struct {
	db *sqlx.DB
}

func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) List(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	err := r.db.SelectContext(ctx, &products, `SELECT `+productColumns+` FROM products ORDER BY id`)
	return products, errors.Wrap(err, "liste produits")
}

func (r *ProductRepository) Get(ctx context.Context, id int64) (*models.Product, error) {
	var p models.Product
	err := r.db.GetContext(ctx, &p, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	if err != nil {
		return nil, errors.Wrapf(notFound(err), "produit %d", id)
	}
	return &p, nil
}

func (r *ProductRepository) ByIDs(ctx context.Context, ids []int64) ([]models.Product, error) {
	products := []models.Product{}
	if len(ids) == 0 {
		return products, nil
	}
	err := r.db.SelectContext(ctx, &products,
		`SELECT `+productColumns+` FROM products WHERE id = ANY($1) ORDER BY id`, pq.Array(ids))
	return products, errors.Wrap(err, "produits par id")
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO products (name, price, stock, category, flower_type, description, image_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		p.Name, p.Price, p.Stock, p.Category, p.FlowerType, p.Description, p.ImageURL,
	).Scan(&p.ID)
	return errors.Wrap(err, "création produit")
}

func (r *ProductRepository) Update(ctx context.Context, p models.Product) error {
	err := affected(r.db.ExecContext(ctx,
		`UPDATE products SET name = $1, price = $2, stock = $3, category = $4, flower_type = $5,
		 description = $6, image_url = $7 WHERE id = $8`,
		p.Name, p.Price, p.Stock, p.Category, p.FlowerType, p.Description, p.ImageURL, p.ID,
	))
	return errors.Wrapf(err, "mise à jour produit %d", p.ID)
}

func (r *ProductRepository) UpdateNameAndPrice(ctx context.Context, id int64, name string, price float64) error {
	err := affected(r.db.ExecContext(ctx,
		`UPDATE products SET name = $1, price = $2 WHERE id = $3`, name, price, id))
	return errors.Wrapf(err, "mise à jour nom/prix produit %d", id)
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	err := affected(r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id))
	return errors.Wrapf(err, "suppression produit %d", id)
}

// SearchByName recherche insensible à la casse, le terme est pris littéralement
func (r *ProductRepository) SearchByName(ctx context.Context, term string) ([]models.Product, error) {
	products := []models.Product{}
	err := r.db.SelectContext(ctx, &products,
		`SELECT `+productColumns+` FROM products WHERE name ILIKE $1 ORDER BY name`, containsPattern(term))
	return products, errors.Wrap(err, "recherche produits")
}

func (r *ProductRepository) ByCategory(ctx context.Context, category string) ([]models.Product, error) {
	products := []models.Product{}
	err := r.db.SelectContext(ctx, &products,
		`SELECT `+productColumns+` FROM products WHERE lower(category) = lower($1) ORDER BY id`, category)
	return products, errors.Wrap(err, "produits par catégorie")
}

func (r *ProductRepository) ByFlowerType(ctx context.Context, flowerType string) ([]models.Product, error) {
	products := []models.Product{}
	err := r.db.SelectContext(ctx, &products,
		`SELECT `+productColumns+` FROM products WHERE lower(flower_type) = lower($1) ORDER BY id`, flowerType)
	return products, errors.Wrap(err, "produits par type de fleur")
}

func (r *ProductRepository) PriceAtMost(ctx context.Context, max float64) ([]models.Product, error) {
	products := []models.Product{}
	err := r.db.SelectContext(ctx, &products,
		`SELECT `+productColumns+` FROM products WHERE price <= $1 ORDER BY price`, max)
	return products, errors.Wrap(err, "produits par prix")
}

// TopByPrice les plus chers, toutes catégories si category est vide
func (r *ProductRepository) TopByPrice(ctx context.Context, category string, limit int) ([]models.Product, error) {
	products := []models.Product{}
	err := r.db.SelectContext(ctx, &products,
		`SELECT `+productColumns+` FROM products
		 WHERE $1 = '' OR lower(category) = lower($1)
		 ORDER BY price DESC, id LIMIT $2`, category, limit)
	return products, errors.Wrap(err, "meilleures ventes")
}
