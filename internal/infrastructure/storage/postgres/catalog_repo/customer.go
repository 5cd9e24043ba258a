package catalog_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/id"
	"backoffice/internal/domain/catalogs/customer"
	"backoffice/internal/infrastructure/storage/postgres"
)

const (
	customerTable = "cat_customers"
	contactTable  = "cat_customer_contacts"
)

// CustomerRepo implements customer.Repository.
type CustomerRepo struct {
	*BaseCatalogRepo[*customer.Customer]
	batch *postgres.BatchInserter
}

// NewCustomerRepo creates a new customer repository.
func NewCustomerRepo(txManager *postgres.TxManager) *CustomerRepo {
	base := NewBaseCatalogRepo[*customer.Customer](
		txManager,
		customerTable,
		postgres.ExtractDBColumns[customer.Customer](),
		func() *customer.Customer { return &customer.Customer{} },
	)
	base.RegisterRelation(customer.RelationContacts, Relation{
		ChildTable: contactTable,
		FKColumn:   "customer_id",
	})
	return &CustomerRepo{
		BaseCatalogRepo: base,
		batch:           postgres.NewBatchInserter(txManager),
	}
}

// FindByTaxID retrieves a customer by tax identifier.
func (r *CustomerRepo) FindByTaxID(ctx context.Context, taxID string) (*customer.Customer, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"tax_id": taxID}).
		Where(squirrel.Eq{"is_active": true}).
		Limit(1)

	c, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("customer", taxID)
		}
		return nil, err
	}
	return c, nil
}

// ListContacts returns the contacts of a customer, ordered by primacy then name.
func (r *CustomerRepo) ListContacts(ctx context.Context, customerID id.ID, includeInactive bool) ([]customer.Contact, error) {
	q := r.Builder().
		Select(postgres.ExtractDBColumns[customer.Contact]()...).
		From(contactTable).
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("is_primary DESC", "last_name ASC", "first_name ASC")

	if !includeInactive {
		q = q.Where(squirrel.Eq{"is_active": true})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build contacts query: %w", err)
	}

	var contacts []customer.Contact
	if err := pgxscan.Select(ctx, r.Querier(ctx), &contacts, sql, args...); err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}

// CountActiveContacts returns the number of active contacts of a customer.
func (r *CustomerRepo) CountActiveContacts(ctx context.Context, customerID id.ID) (int, error) {
	q := r.Builder().
		Select("COUNT(*)").
		From(contactTable).
		Where(squirrel.Eq{"customer_id": customerID}).
		Where(squirrel.Eq{"is_active": true})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var count int
	if err := r.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count contacts: %w", err)
	}
	return count, nil
}

// CreateContact inserts a new contact row.
func (r *CustomerRepo) CreateContact(ctx context.Context, contact *customer.Contact) error {
	data := postgres.StructToMap(contact)

	cols := postgres.ExtractDBColumns[customer.Contact]()
	filteredData := make(map[string]any, len(cols))
	for _, col := range cols {
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.Builder().
		Insert(contactTable).
		SetMap(filteredData)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build contact insert: %w", err)
	}

	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

// ImportContacts bulk-inserts contacts via the COPY protocol.
// Must be called inside a transaction.
func (r *CustomerRepo) ImportContacts(ctx context.Context, contacts []customer.Contact) (int64, error) {
	if len(contacts) == 0 {
		return 0, nil
	}

	columns := []string{
		"id", "customer_id", "first_name", "last_name", "position",
		"email", "phone", "is_primary",
		"is_active", "version", "attributes", "created_at", "updated_at",
	}

	rows := make([][]any, len(contacts))
	for i := range contacts {
		c := &contacts[i]
		attrs := c.Attributes
		if attrs == nil {
			attrs = map[string]any{}
		}
		rows[i] = []any{
			c.ID, c.CustomerID, c.FirstName, c.LastName, c.Position,
			c.Email, c.Phone, c.IsPrimary,
			c.IsActive, c.Version, attrs, c.CreatedAt, c.UpdatedAt,
		}
	}

	inserted, err := r.batch.CopyFromSlice(ctx, contactTable, columns, rows)
	if err != nil {
		return 0, fmt.Errorf("copy contacts: %w", err)
	}
	return inserted, nil
}

// UpdateContact modifies an existing contact with optimistic locking.
func (r *CustomerRepo) UpdateContact(ctx context.Context, contact *customer.Contact) error {
	data := postgres.StructToMap(contact)

	cols := postgres.ExtractDBColumns[customer.Contact]()
	filteredData := make(map[string]any, len(cols))
	for _, col := range cols {
		switch col {
		case "id", "version", "created_at", "customer_id":
			continue
		}
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}
	filteredData["updated_at"] = time.Now().UTC()

	q := r.Builder().
		Update(contactTable).
		SetMap(filteredData).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": contact.ID}).
		Where(squirrel.Eq{"version": contact.Version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build contact update: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification(contactTable, contact.ID)
	}
	return nil
}
