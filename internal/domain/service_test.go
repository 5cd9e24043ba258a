package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/entity"
	"backoffice/internal/core/id"
	"backoffice/internal/domain/deactivate"
)

// --- mocks ---

type passThroughTx struct{}

func (passThroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	entities map[id.ID]*entity.Catalog

	toggleCalls  []deactivate.Command
	restoreCalls []id.ID
}

func newFakeRepo(entities ...*entity.Catalog) *fakeRepo {
	r := &fakeRepo{entities: make(map[id.ID]*entity.Catalog)}
	for _, e := range entities {
		r.entities[e.ID] = e
	}
	return r
}

func (r *fakeRepo) Create(ctx context.Context, e *entity.Catalog) error {
	r.entities[e.ID] = e
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, entityID id.ID) (*entity.Catalog, error) {
	e, ok := r.entities[entityID]
	if !ok {
		return nil, apperror.NewNotFound("entity", entityID.String())
	}
	return e, nil
}

func (r *fakeRepo) GetByCode(ctx context.Context, code string) (*entity.Catalog, error) {
	for _, e := range r.entities {
		if e.Code == code {
			return e, nil
		}
	}
	return nil, apperror.NewNotFound("entity", code)
}

func (r *fakeRepo) Update(ctx context.Context, e *entity.Catalog) error {
	r.entities[e.ID] = e
	return nil
}

func (r *fakeRepo) ToggleIsActive(ctx context.Context, cmd deactivate.Command) (*entity.Catalog, error) {
	r.toggleCalls = append(r.toggleCalls, cmd)
	e, ok := r.entities[cmd.ID]
	if !ok {
		return nil, apperror.NewNotFound("entity", cmd.ID.String())
	}
	if cmd.IsHard() {
		delete(r.entities, cmd.ID)
		return e, nil
	}
	e.Deactivate()
	return e, nil
}

func (r *fakeRepo) Restore(ctx context.Context, entityID id.ID) (*entity.Catalog, error) {
	r.restoreCalls = append(r.restoreCalls, entityID)
	e, ok := r.entities[entityID]
	if !ok {
		return nil, apperror.NewNotFound("entity", entityID.String())
	}
	e.Restore()
	return e, nil
}

func (r *fakeRepo) List(ctx context.Context, f ListFilter) (ListResult[*entity.Catalog], error) {
	var items []*entity.Catalog
	for _, e := range r.entities {
		items = append(items, e)
	}
	return ListResult[*entity.Catalog]{Items: items, TotalCount: int64(len(items))}, nil
}

func (r *fakeRepo) Exists(ctx context.Context, entityID id.ID) (bool, error) {
	_, ok := r.entities[entityID]
	return ok, nil
}

func (r *fakeRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	_, err := r.GetByCode(ctx, code)
	return err == nil, nil
}

func newTestService(repo *fakeRepo) *EntityService[*entity.Catalog] {
	return NewEntityService(EntityServiceConfig[*entity.Catalog]{
		Repo:       repo,
		TxManager:  passThroughTx{},
		EntityName: "customer",
	})
}

func newCatalog(code, name string) *entity.Catalog {
	c := entity.NewCatalog(code, name)
	return &c
}

// --- tests ---

func TestEntityService_Deactivate_Soft(t *testing.T) {
	cust := newCatalog("CUST-001", "Acme Inc.")
	repo := newFakeRepo(cust)
	svc := newTestService(repo)

	got, err := svc.Deactivate(context.Background(), deactivate.NewCommand(cust.ID))
	require.NoError(t, err)

	assert.False(t, got.IsActive)
	require.NotNil(t, got.DeletedAt)
	require.Len(t, repo.toggleCalls, 1)
	assert.Equal(t, deactivate.StrategySoft, repo.toggleCalls[0].Strategy)
}

func TestEntityService_Deactivate_DefaultsToSoft(t *testing.T) {
	cust := newCatalog("CUST-001", "Acme Inc.")
	repo := newFakeRepo(cust)
	svc := newTestService(repo)

	_, err := svc.Deactivate(context.Background(), deactivate.Command{ID: cust.ID})
	require.NoError(t, err)

	require.Len(t, repo.toggleCalls, 1)
	assert.Equal(t, deactivate.StrategySoft, repo.toggleCalls[0].Strategy)
}

func TestEntityService_Deactivate_UnknownStrategy(t *testing.T) {
	cust := newCatalog("CUST-001", "Acme Inc.")
	repo := newFakeRepo(cust)
	svc := newTestService(repo)

	_, err := svc.Deactivate(context.Background(), deactivate.Command{ID: cust.ID, Strategy: "purge"})

	assert.True(t, apperror.IsValidation(err))
	assert.Empty(t, repo.toggleCalls, "invalid command must not reach the repository")
}

func TestEntityService_Deactivate_NotFound(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.Deactivate(context.Background(), deactivate.NewCommand(id.New()))

	assert.True(t, apperror.IsNotFound(err))
}

func TestEntityService_Deactivate_RestrictionBlocks(t *testing.T) {
	cust := newCatalog("CUST-001", "Acme Inc.")
	repo := newFakeRepo(cust)
	svc := newTestService(repo)
	svc.RegisterRestriction("active_orders", func(ctx context.Context, e *entity.Catalog, cmd deactivate.Command) error {
		return apperror.NewRestriction("active_orders", "customer has active orders")
	})

	_, err := svc.Deactivate(context.Background(), deactivate.NewCommand(cust.ID))

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeRestriction, appErr.Code)
	assert.Empty(t, repo.toggleCalls)
}

func TestEntityService_Deactivate_SkipRestriction(t *testing.T) {
	cust := newCatalog("CUST-001", "Acme Inc.")
	repo := newFakeRepo(cust)
	svc := newTestService(repo)
	svc.RegisterRestriction("active_orders", func(ctx context.Context, e *entity.Catalog, cmd deactivate.Command) error {
		return apperror.NewRestriction("active_orders", "customer has active orders")
	})

	cmd := deactivate.NewCommand(cust.ID)
	cmd.SkipRestrictions = []string{"active_orders"}

	_, err := svc.Deactivate(context.Background(), cmd)
	require.NoError(t, err)
	assert.Len(t, repo.toggleCalls, 1)
}

func TestEntityService_Deactivate_HardNeverSkips(t *testing.T) {
	cust := newCatalog("CUST-001", "Acme Inc.")
	repo := newFakeRepo(cust)
	svc := newTestService(repo)
	svc.RegisterRestriction("active_orders", func(ctx context.Context, e *entity.Catalog, cmd deactivate.Command) error {
		return apperror.NewRestriction("active_orders", "customer has active orders")
	})

	cmd := deactivate.NewHardCommand(cust.ID)
	cmd.SkipRestrictions = []string{"active_orders"}

	_, err := svc.Deactivate(context.Background(), cmd)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeRestriction, appErr.Code)
	assert.Empty(t, repo.toggleCalls)
}

func TestEntityService_Deactivate_Hard(t *testing.T) {
	cust := newCatalog("CUST-001", "Acme Inc.")
	repo := newFakeRepo(cust)
	svc := newTestService(repo)

	got, err := svc.Deactivate(context.Background(), deactivate.NewHardCommand(cust.ID))
	require.NoError(t, err)

	// Hard delete returns the last persisted state and removes the row.
	assert.Equal(t, cust.ID, got.ID)
	exists, _ := repo.Exists(context.Background(), cust.ID)
	assert.False(t, exists)
}

func TestEntityService_Restore(t *testing.T) {
	cust := newCatalog("CUST-001", "Acme Inc.")
	cust.Deactivate()
	repo := newFakeRepo(cust)
	svc := newTestService(repo)

	got, err := svc.Restore(context.Background(), cust.ID)
	require.NoError(t, err)

	assert.True(t, got.IsActive)
	assert.Nil(t, got.DeletedAt)
}

func TestEntityService_DeactivateHooks(t *testing.T) {
	cust := newCatalog("CUST-001", "Acme Inc.")
	repo := newFakeRepo(cust)
	svc := newTestService(repo)

	var events []string
	svc.Hooks().OnBeforeDeactivate(func(ctx context.Context, e *entity.Catalog) error {
		events = append(events, "before")
		return nil
	})
	svc.Hooks().OnAfterDeactivate(func(ctx context.Context, e *entity.Catalog) error {
		events = append(events, "after")
		return nil
	})

	_, err := svc.Deactivate(context.Background(), deactivate.NewCommand(cust.ID))
	require.NoError(t, err)
	assert.Equal(t, []string{"before", "after"}, events)
}

func TestEntityService_Create_Validates(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	err := svc.Create(context.Background(), newCatalog("CUST-001", ""))
	assert.True(t, apperror.IsValidation(err))
	assert.Empty(t, repo.entities)
}
