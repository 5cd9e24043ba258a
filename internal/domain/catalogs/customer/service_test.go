package customer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/id"
	"backoffice/internal/domain"
	"backoffice/internal/domain/deactivate"
)

// --- mocks ---

type passThroughTx struct{}

func (passThroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeCustomerRepo struct {
	customers map[id.ID]*Customer
	contacts  map[id.ID][]Contact

	imported []Contact
}

func newFakeCustomerRepo(customers ...*Customer) *fakeCustomerRepo {
	r := &fakeCustomerRepo{
		customers: make(map[id.ID]*Customer),
		contacts:  make(map[id.ID][]Contact),
	}
	for _, c := range customers {
		r.customers[c.ID] = c
	}
	return r
}

func (r *fakeCustomerRepo) Create(ctx context.Context, c *Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) GetByID(ctx context.Context, customerID id.ID) (*Customer, error) {
	c, ok := r.customers[customerID]
	if !ok {
		return nil, apperror.NewNotFound("customer", customerID.String())
	}
	return c, nil
}

func (r *fakeCustomerRepo) GetByCode(ctx context.Context, code string) (*Customer, error) {
	for _, c := range r.customers {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, apperror.NewNotFound("customer", code)
}

func (r *fakeCustomerRepo) Update(ctx context.Context, c *Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) ToggleIsActive(ctx context.Context, cmd deactivate.Command) (*Customer, error) {
	c, ok := r.customers[cmd.ID]
	if !ok {
		return nil, apperror.NewNotFound("customer", cmd.ID.String())
	}
	if cmd.IsHard() {
		delete(r.customers, cmd.ID)
		return c, nil
	}
	c.Deactivate()
	for _, rel := range cmd.Cascade.Relations {
		if rel == RelationContacts {
			list := r.contacts[cmd.ID]
			for i := range list {
				list[i].Deactivate()
			}
		}
	}
	return c, nil
}

func (r *fakeCustomerRepo) Restore(ctx context.Context, customerID id.ID) (*Customer, error) {
	c, ok := r.customers[customerID]
	if !ok {
		return nil, apperror.NewNotFound("customer", customerID.String())
	}
	c.Restore()
	return c, nil
}

func (r *fakeCustomerRepo) List(ctx context.Context, f domain.ListFilter) (domain.ListResult[*Customer], error) {
	var items []*Customer
	for _, c := range r.customers {
		items = append(items, c)
	}
	return domain.ListResult[*Customer]{Items: items, TotalCount: int64(len(items))}, nil
}

func (r *fakeCustomerRepo) Exists(ctx context.Context, customerID id.ID) (bool, error) {
	_, ok := r.customers[customerID]
	return ok, nil
}

func (r *fakeCustomerRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	_, err := r.GetByCode(ctx, code)
	return err == nil, nil
}

func (r *fakeCustomerRepo) FindByTaxID(ctx context.Context, taxID string) (*Customer, error) {
	for _, c := range r.customers {
		if c.TaxID != nil && *c.TaxID == taxID {
			return c, nil
		}
	}
	return nil, apperror.NewNotFound("customer", taxID)
}

func (r *fakeCustomerRepo) GetForUpdate(ctx context.Context, customerID id.ID) (*Customer, error) {
	return r.GetByID(ctx, customerID)
}

func (r *fakeCustomerRepo) ListContacts(ctx context.Context, customerID id.ID, includeInactive bool) ([]Contact, error) {
	var out []Contact
	for _, c := range r.contacts[customerID] {
		if includeInactive || c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCustomerRepo) CountActiveContacts(ctx context.Context, customerID id.ID) (int, error) {
	count := 0
	for _, c := range r.contacts[customerID] {
		if c.IsActive {
			count++
		}
	}
	return count, nil
}

func (r *fakeCustomerRepo) CreateContact(ctx context.Context, contact *Contact) error {
	r.contacts[contact.CustomerID] = append(r.contacts[contact.CustomerID], *contact)
	return nil
}

func (r *fakeCustomerRepo) ImportContacts(ctx context.Context, contacts []Contact) (int64, error) {
	r.imported = append(r.imported, contacts...)
	for _, c := range contacts {
		r.contacts[c.CustomerID] = append(r.contacts[c.CustomerID], c)
	}
	return int64(len(contacts)), nil
}

func (r *fakeCustomerRepo) UpdateContact(ctx context.Context, contact *Contact) error {
	return nil
}

var _ Repository = (*fakeCustomerRepo)(nil)

func newTestService(repo *fakeCustomerRepo) *Service {
	return NewService(repo, passThroughTx{}, nil)
}

// --- tests ---

func TestService_Deactivate_BlockedByActiveContacts(t *testing.T) {
	cust := NewCustomer("CUST-001", "Acme Inc.", TypeCompany)
	repo := newFakeCustomerRepo(cust)
	repo.contacts[cust.ID] = []Contact{*NewContact(cust.ID, "Jane")}
	svc := newTestService(repo)

	_, err := svc.Deactivate(context.Background(), deactivate.NewCommand(cust.ID))

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeRestriction, appErr.Code)
	assert.True(t, cust.IsActive, "customer must stay active when blocked")
}

func TestService_Deactivate_CascadePassesRestriction(t *testing.T) {
	cust := NewCustomer("CUST-001", "Acme Inc.", TypeCompany)
	repo := newFakeCustomerRepo(cust)
	repo.contacts[cust.ID] = []Contact{*NewContact(cust.ID, "Jane")}
	svc := newTestService(repo)

	cmd := deactivate.NewCommand(cust.ID)
	cmd.Cascade.Relations = []string{RelationContacts}

	got, err := svc.Deactivate(context.Background(), cmd)
	require.NoError(t, err)

	assert.False(t, got.IsActive)
	require.NotNil(t, got.DeletedAt)
	for _, contact := range repo.contacts[cust.ID] {
		assert.False(t, contact.IsActive, "cascade must deactivate contacts")
	}
}

func TestService_Deactivate_SkipRestriction(t *testing.T) {
	cust := NewCustomer("CUST-001", "Acme Inc.", TypeCompany)
	repo := newFakeCustomerRepo(cust)
	repo.contacts[cust.ID] = []Contact{*NewContact(cust.ID, "Jane")}
	svc := newTestService(repo)

	cmd := deactivate.NewCommand(cust.ID)
	cmd.SkipRestrictions = []string{RestrictionActiveContacts}

	got, err := svc.Deactivate(context.Background(), cmd)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestService_AddContact_InactiveCustomer(t *testing.T) {
	cust := NewCustomer("CUST-001", "Acme Inc.", TypeCompany)
	cust.Deactivate()
	repo := newFakeCustomerRepo(cust)
	svc := newTestService(repo)

	err := svc.AddContact(context.Background(), NewContact(cust.ID, "Jane"))

	assert.True(t, apperror.IsConflict(err))
}

func TestService_ImportContacts(t *testing.T) {
	cust := NewCustomer("CUST-001", "Acme Inc.", TypeCompany)
	repo := newFakeCustomerRepo(cust)
	svc := newTestService(repo)

	contacts := []Contact{
		*NewContact(cust.ID, "Jane"),
		*NewContact(cust.ID, "Tom"),
	}

	inserted, err := svc.ImportContacts(context.Background(), cust.ID, contacts)
	require.NoError(t, err)

	assert.Equal(t, int64(2), inserted)
	assert.Len(t, repo.imported, 2)
}

func TestService_ImportContacts_InvalidContactFailsAll(t *testing.T) {
	cust := NewCustomer("CUST-001", "Acme Inc.", TypeCompany)
	repo := newFakeCustomerRepo(cust)
	svc := newTestService(repo)

	contacts := []Contact{
		*NewContact(cust.ID, "Jane"),
		*NewContact(cust.ID, ""), // missing first name
	}

	_, err := svc.ImportContacts(context.Background(), cust.ID, contacts)

	assert.True(t, apperror.IsValidation(err))
	assert.Empty(t, repo.imported, "no contact may be written when one is invalid")
}
