package orders

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"vinylshop/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

func (r *Repo) List(ctx context.Context, status string, limit, offset int) ([]models.Order, int, error) {
	var (
		where string
		args  []any
	)
	if status != "" {
		where = " WHERE o.status = ?"
		args = append(args, status)
	}

	var total int
	if err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders o`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT o.id, o.user_id, o.guest_email, o.status, o.total, o.created_at, o.updated_at,
		       u.email, u.first_name, u.last_name
		FROM orders o
		LEFT JOIN users u ON o.user_id = u.id`+where+`
		ORDER BY o.created_at DESC
		LIMIT ? OFFSET ?
	`, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	out := make([]models.Order, 0, limit)
	for rows.Next() {
		var (
			o          models.Order
			userID     sql.NullString
			guestEmail sql.NullString
			email      sql.NullString
			firstName  sql.NullString
			lastName   sql.NullString
		)
		if err := rows.Scan(&o.ID, &userID, &guestEmail, &o.Status, &o.Total,
			&o.CreatedAt, &o.UpdatedAt, &email, &firstName, &lastName); err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		o.UserID = userID.String
		o.GuestEmail = guestEmail.String
		o.Email = email.String
		o.FirstName = firstName.String
		o.LastName = lastName.String
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows err: %w", err)
	}

	for i := range out {
		items, err := r.listItems(ctx, out[i].ID)
		if err != nil {
			return nil, 0, err
		}
		out[i].Items = items
	}
	return out, total, nil
}

func (r *Repo) listItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, product_id, product_title, product_artist, quantity, unit_price
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	items := make([]models.OrderItem, 0)
	for rows.Next() {
		var (
			it        models.OrderItem
			productID sql.NullInt64
			artist    sql.NullString
		)
		if err := rows.Scan(&it.ID, &productID, &it.ProductTitle, &artist, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		if productID.Valid {
			it.ProductID = &productID.Int64
		}
		it.ProductArtist = artist.String
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return items, nil
}

// UpdateStatus sets any allow-listed status regardless of the current
// one; validation happens in the handler. Returns nil when the order
// does not exist.
func (r *Repo) UpdateStatus(ctx context.Context, id int64, status string) (*models.Order, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE orders SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, status, id)
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update order rows: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}

	row := r.DB.QueryRowContext(ctx, `
		SELECT id, user_id, guest_email, status, total, created_at, updated_at
		FROM orders WHERE id = ?
	`, id)
	var (
		o          models.Order
		userID     sql.NullString
		guestEmail sql.NullString
	)
	if err := row.Scan(&o.ID, &userID, &guestEmail, &o.Status, &o.Total, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, fmt.Errorf("scan order: %w", err)
	}
	o.UserID = userID.String
	o.GuestEmail = guestEmail.String
	return &o, nil
}

// Stats is the admin dashboard payload.
type Stats struct {
	Products struct {
		Total      int `json:"total"`
		OutOfStock int `json:"out_of_stock"`
	} `json:"products"`
	Categories int `json:"categories"`
	Users      struct {
		Total  int `json:"total"`
		Admins int `json:"admins"`
	} `json:"users"`
	Orders struct {
		Total        int     `json:"total"`
		TotalRevenue float64 `json:"total_revenue"`
	} `json:"orders"`
	TopProducts  []TopProduct  `json:"top_products"`
	RecentOrders []RecentOrder `json:"recent_orders"`
}

type RecentOrder struct {
	ID        int64     `json:"id"`
	Status    string    `json:"status"`
	Total     float64   `json:"total"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type TopProduct struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	Artist    string  `json:"artist"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock"`
	UnitsSold int     `json:"units_sold"`
}

func (r *Repo) Stats(ctx context.Context) (*Stats, error) {
	var s Stats

	if err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN stock = 0 THEN 1 ELSE 0 END), 0) FROM products
	`).Scan(&s.Products.Total, &s.Products.OutOfStock); err != nil {
		return nil, fmt.Errorf("product stats: %w", err)
	}

	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&s.Categories); err != nil {
		return nil, fmt.Errorf("category stats: %w", err)
	}

	if err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN role = 'admin' THEN 1 ELSE 0 END), 0) FROM users
	`).Scan(&s.Users.Total, &s.Users.Admins); err != nil {
		return nil, fmt.Errorf("user stats: %w", err)
	}

	// cancelled orders don't count toward revenue
	if err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total), 0) FROM orders WHERE status != 'cancelled'
	`).Scan(&s.Orders.Total, &s.Orders.TotalRevenue); err != nil {
		return nil, fmt.Errorf("order stats: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT p.id, p.title, p.artist, p.price, p.stock, COALESCE(SUM(oi.quantity), 0) AS units
		FROM products p
		LEFT JOIN order_items oi ON oi.product_id = p.id
		GROUP BY p.id
		ORDER BY units DESC
		LIMIT 5
	`)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()

	s.TopProducts = make([]TopProduct, 0, 5)
	for rows.Next() {
		var tp TopProduct
		if err := rows.Scan(&tp.ID, &tp.Title, &tp.Artist, &tp.Price, &tp.Stock, &tp.UnitsSold); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		s.TopProducts = append(s.TopProducts, tp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}

	recent, err := r.DB.QueryContext(ctx, `
		SELECT o.id, o.status, o.total, COALESCE(u.email, o.guest_email, ''), o.created_at
		FROM orders o
		LEFT JOIN users u ON o.user_id = u.id
		ORDER BY o.created_at DESC
		LIMIT 5
	`)
	if err != nil {
		return nil, fmt.Errorf("recent orders: %w", err)
	}
	defer recent.Close()

	s.RecentOrders = make([]RecentOrder, 0, 5)
	for recent.Next() {
		var ro RecentOrder
		if err := recent.Scan(&ro.ID, &ro.Status, &ro.Total, &ro.Email, &ro.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan recent order: %w", err)
		}
		s.RecentOrders = append(s.RecentOrders, ro)
	}
	if err := recent.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return &s, nil
}

// AdminUser is one row of the admin user listing.
type AdminUser struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	FirstName   string  `json:"first_name,omitempty"`
	LastName    string  `json:"last_name,omitempty"`
	Role        string  `json:"role"`
	IsActive    bool    `json:"is_active"`
	TotalOrders int     `json:"total_orders"`
	TotalSpent  float64 `json:"total_spent"`
}

func (r *Repo) ListUsers(ctx context.Context) ([]AdminUser, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT u.id, u.email, u.first_name, u.last_name, u.role, u.is_active,
		       COUNT(o.id), COALESCE(SUM(o.total), 0)
		FROM users u
		LEFT JOIN orders o ON o.user_id = u.id AND o.status != 'cancelled'
		GROUP BY u.id
		ORDER BY u.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	out := make([]AdminUser, 0)
	for rows.Next() {
		var (
			u         AdminUser
			firstName sql.NullString
			lastName  sql.NullString
		)
		if err := rows.Scan(&u.ID, &u.Email, &firstName, &lastName, &u.Role, &u.IsActive,
			&u.TotalOrders, &u.TotalSpent); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.FirstName = firstName.String
		u.LastName = lastName.String
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}
