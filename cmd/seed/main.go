// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"backoffice/internal/core/id"
	"backoffice/internal/infrastructure/storage/postgres"
	"backoffice/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Connect to database
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	poolCfg := postgres.DefaultPoolConfig(dbURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	// Seed roles and permissions first so the admin role is assignable
	if err := seedRolesAndPermissions(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed roles and permissions", "error", err)
	}

	// Seed admin user
	if _, err := seedAdminUser(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	// Seed demo data if requested
	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedRolesAndPermissions(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	permissions := []struct {
		code        string
		description string
	}{
		{"catalog:customer:read", "View customers"},
		{"catalog:customer:create", "Create customers"},
		{"catalog:customer:update", "Update customers"},
		{"catalog:customer:delete", "Deactivate and delete customers"},
		{"catalog:product:read", "View products"},
		{"catalog:product:create", "Create products"},
		{"catalog:product:update", "Update products"},
		{"catalog:product:delete", "Deactivate and delete products"},
		{"audit:read", "View entity change history"},
	}

	for _, p := range permissions {
		_, err := pool.Pool.Exec(ctx, `
			INSERT INTO permissions (id, code, description)
			VALUES ($1, $2, $3)
			ON CONFLICT (code) DO NOTHING
		`, id.New(), p.code, p.description)
		if err != nil {
			return fmt.Errorf("insert permission %s: %w", p.code, err)
		}
	}

	roles := []struct {
		code        string
		name        string
		isSystem    bool
		permissions []string // empty means all
	}{
		{"admin", "Administrator", true, nil},
		{"manager", "Catalog Manager", true, []string{
			"catalog:customer:read", "catalog:customer:create", "catalog:customer:update",
			"catalog:product:read", "catalog:product:create", "catalog:product:update",
			"audit:read",
		}},
		{"viewer", "Read-only Viewer", true, []string{
			"catalog:customer:read", "catalog:product:read",
		}},
	}

	for _, r := range roles {
		roleID := id.New()
		tag, err := pool.Pool.Exec(ctx, `
			INSERT INTO roles (id, code, name, is_system)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (code) DO NOTHING
		`, roleID, r.code, r.name, r.isSystem)
		if err != nil {
			return fmt.Errorf("insert role %s: %w", r.code, err)
		}
		if tag.RowsAffected() == 0 {
			if err := pool.Pool.QueryRow(ctx,
				`SELECT id FROM roles WHERE code = $1`, r.code,
			).Scan(&roleID); err != nil {
				return fmt.Errorf("fetch role %s: %w", r.code, err)
			}
		}

		if r.permissions == nil {
			// Admin gets everything, including permissions added later by re-running the seeder.
			_, err = pool.Pool.Exec(ctx, `
				INSERT INTO role_permissions (role_id, permission_id)
				SELECT $1, id FROM permissions
				ON CONFLICT DO NOTHING
			`, roleID)
		} else {
			_, err = pool.Pool.Exec(ctx, `
				INSERT INTO role_permissions (role_id, permission_id)
				SELECT $1, id FROM permissions WHERE code = ANY($2)
				ON CONFLICT DO NOTHING
			`, roleID, r.permissions)
		}
		if err != nil {
			return fmt.Errorf("grant permissions to role %s: %w", r.code, err)
		}
	}

	log.Info("roles and permissions seeded")
	return nil
}

func seedAdminUser(ctx context.Context, pool *postgres.Pool, log *logger.Logger) (id.ID, error) {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@backoffice.local"
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	// Check if admin already exists
	var existingID id.ID
	err := pool.Pool.QueryRow(ctx,
		`SELECT id FROM users WHERE email = $1 AND is_active = TRUE`,
		adminEmail,
	).Scan(&existingID)
	if err == nil {
		log.Infow("admin user already exists", "email", adminEmail, "user_id", existingID)
		return existingID, nil
	}
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return id.Nil(), fmt.Errorf("check admin exists: %w", err)
	}

	// Hash password
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return id.Nil(), fmt.Errorf("hash password: %w", err)
	}

	userID := id.New()
	now := time.Now()

	// Create admin user
	_, err = pool.Pool.Exec(ctx, `
		INSERT INTO users (
			id, email, password_hash, first_name, last_name,
			is_active, is_admin, email_verified, email_verified_at,
			created_at, updated_at, version
		)
		VALUES ($1, $2, $3, 'System', 'Admin', true, true, true, $4, $4, $4, 1)
	`, userID, adminEmail, string(passwordHash), now)
	if err != nil {
		return id.Nil(), fmt.Errorf("insert admin user: %w", err)
	}

	// Assign admin role
	var adminRoleID id.ID
	err = pool.Pool.QueryRow(ctx,
		`SELECT id FROM roles WHERE code = 'admin'`,
	).Scan(&adminRoleID)
	if err != nil {
		log.Warnw("admin role not found, skipping role assignment", "error", err)
	} else {
		_, err = pool.Pool.Exec(ctx, `
			INSERT INTO user_roles (user_id, role_id, granted_by)
			VALUES ($1, $2, NULL)
			ON CONFLICT (user_id, role_id) DO NOTHING
		`, userID, adminRoleID)
		if err != nil {
			log.Warnw("failed to assign admin role", "error", err)
		}
	}

	log.Infow("admin user created",
		"email", adminEmail,
		"user_id", userID,
	)

	return userID, nil
}

func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	log.Info("seeding demo data...")

	// 1. Seed Customers
	customers := []struct {
		code    string
		name    string
		ctype   string // company, individual, government
		taxID   string
		email   string
		contact struct{ first, last, position string }
	}{
		{"CUST-001", "Acme Corporation", "company", "77012345678", "billing@acme.example",
			struct{ first, last, position string }{"Jane", "Miller", "Procurement Lead"}},
		{"CUST-002", "Northwind Traders", "company", "77098765432", "office@northwind.example",
			struct{ first, last, position string }{"Tom", "Brandt", "CFO"}},
		{"CUST-003", "John Smith", "individual", "772300001234", "john.smith@example.com",
			struct{ first, last, position string }{"John", "Smith", ""}},
	}

	customerIDs := make(map[string]id.ID)

	for _, c := range customers {
		custID := id.New()
		tag, err := pool.Pool.Exec(ctx, `
			INSERT INTO cat_customers (id, code, name, type, tax_id, email, is_active, version, attributes)
			VALUES ($1, $2, $3, $4, $5, $6, true, 1, '{}')
			ON CONFLICT (code) WHERE is_active = TRUE DO NOTHING
		`, custID, c.code, c.name, c.ctype, c.taxID, c.email)
		if err != nil {
			log.Warnw("failed to seed customer", "name", c.name, "error", err)
			continue
		}

		// If the customer already existed, fetch its ID so contacts attach correctly.
		if tag.RowsAffected() == 0 {
			err = pool.Pool.QueryRow(ctx, `
				SELECT id FROM cat_customers WHERE code = $1 AND is_active = TRUE
			`, c.code).Scan(&custID)
			if err != nil {
				log.Warnw("failed to fetch existing customer", "code", c.code, "error", err)
				continue
			}
		}
		customerIDs[c.code] = custID

		var position any
		if c.contact.position != "" {
			position = c.contact.position
		}
		_, err = pool.Pool.Exec(ctx, `
			INSERT INTO cat_customer_contacts (
				id, customer_id, first_name, last_name, position,
				is_primary, is_active, version, attributes
			)
			VALUES ($1, $2, $3, $4, $5, true, true, 1, '{}')
			ON CONFLICT (customer_id, first_name, last_name) WHERE is_active = TRUE DO NOTHING
		`, id.New(), custID, c.contact.first, c.contact.last, position)
		if err != nil {
			log.Warnw("failed to seed contact", "customer", c.code, "error", err)
		}
	}

	// 2. Seed Products
	products := []struct {
		code  string
		name  string
		ptype string // goods, service, digital
		sku   string
		price string
	}{
		{"PROD-001", "Office Paper A4", "goods", "PAP-A4", "5.90"},
		{"PROD-002", "Ballpoint Pen (blue)", "goods", "PEN-BLU", "0.80"},
		{"PROD-003", "Desktop Stapler", "goods", "STP-001", "12.50"},
		{"PROD-004", "Courier Delivery", "service", "DELIVERY", "25.00"},
		{"PROD-005", "Annual Support License", "digital", "LIC-SUP", "499.00"},
	}

	for _, p := range products {
		_, err := pool.Pool.Exec(ctx, `
			INSERT INTO cat_products (id, code, name, type, sku, price, weight, is_active, version, attributes)
			VALUES ($1, $2, $3, $4, $5, $6, 0, true, 1, '{}')
			ON CONFLICT (code) WHERE is_active = TRUE DO NOTHING
		`, id.New(), p.code, p.name, p.ptype, p.sku, p.price)
		if err != nil {
			log.Warnw("failed to seed product", "name", p.name, "error", err)
		}
	}

	log.Info("demo data seeded successfully")
	return nil
}
