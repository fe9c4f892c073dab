package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/pkg/constants"
	"inventory-system/pkg/contextkeys"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"
	"inventory-system/pkg/utils"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeUserRepository struct {
	users map[uint64]*entities.User
}

func (r *fakeUserRepository) FindUser(ctx context.Context, id uint64) (*entities.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepository) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

type fakeEquipmentRepository struct {
	counts map[string]int
}

func equipmentKey(placementType string, placementID uint64) string {
	return fmt.Sprintf("%s:%d", placementType, placementID)
}

func (r *fakeEquipmentRepository) CountByPlacement(ctx context.Context, placementType string, placementID uint64) (int, error) {
	if !constants.IsValidPlacementType(placementType) {
		return 0, apperrors.ErrInvalidPlacementType
	}
	return r.counts[equipmentKey(placementType, placementID)], nil
}

type fakeCacheRepository struct {
	values map[string]string
}

func (r *fakeCacheRepository) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	r.values[key] = fmt.Sprintf("%v", value)
	return nil
}

func (r *fakeCacheRepository) Get(ctx context.Context, key string) (string, error) {
	if v, ok := r.values[key]; ok {
		return v, nil
	}
	return "", apperrors.ErrNotFound
}

func (r *fakeCacheRepository) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(r.values, key)
	}
	return nil
}

func (r *fakeCacheRepository) Incr(ctx context.Context, key string) (int64, error) {
	n := int64(0)
	fmt.Sscanf(r.values[key], "%d", &n)
	n++
	r.values[key] = fmt.Sprintf("%d", n)
	return n, nil
}

func (r *fakeCacheRepository) Expire(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	return true, nil
}

type fakeInventaireRepository struct {
	items  map[uint64]*entities.Inventaire
	nextID uint64
}

func newFakeInventaireRepository() *fakeInventaireRepository {
	return &fakeInventaireRepository{items: map[uint64]*entities.Inventaire{}, nextID: 1}
}

func (r *fakeInventaireRepository) CreateInventaire(ctx context.Context, inv entities.Inventaire) (*entities.Inventaire, error) {
	inv.ID = r.nextID
	r.nextID++
	inv.CreatedAt = time.Now()
	inv.UpdatedAt = inv.CreatedAt
	stored := inv
	r.items[inv.ID] = &stored
	out := inv
	return &out, nil
}

func (r *fakeInventaireRepository) FindInventaire(ctx context.Context, id uint64) (*entities.Inventaire, error) {
	inv, ok := r.items[id]
	if !ok || inv.IsDeleted {
		return nil, apperrors.ErrNotFound
	}
	out := *inv
	return &out, nil
}

func (r *fakeInventaireRepository) FindInventaireForUser(ctx context.Context, id uint64, userID uint64) (*entities.Inventaire, error) {
	inv, ok := r.items[id]
	if !ok || inv.IsDeleted || inv.AssociatedTo != userID {
		return nil, apperrors.ErrNotFound
	}
	out := *inv
	return &out, nil
}

func (r *fakeInventaireRepository) FindInventaireAny(ctx context.Context, id uint64) (*entities.Inventaire, error) {
	inv, ok := r.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	out := *inv
	return &out, nil
}

func (r *fakeInventaireRepository) GetInventaires(ctx context.Context, filter types.Filter) ([]entities.Inventaire, uint64, error) {
	var out []entities.Inventaire
	for _, inv := range r.items {
		if !inv.IsDeleted {
			out = append(out, *inv)
		}
	}
	return out, uint64(len(out)), nil
}

func (r *fakeInventaireRepository) GetInventairesByUser(ctx context.Context, userID uint64) ([]entities.Inventaire, error) {
	var out []entities.Inventaire
	for _, inv := range r.items {
		if !inv.IsDeleted && inv.AssociatedTo == userID {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (r *fakeInventaireRepository) GetInventairesByPlacement(ctx context.Context, placementType string, placementID uint64) ([]entities.Inventaire, error) {
	var out []entities.Inventaire
	for _, inv := range r.items {
		if !inv.IsDeleted && inv.PlacementType == placementType && inv.IDPlacement == placementID {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (r *fakeInventaireRepository) GetInventairesByName(ctx context.Context, name string) ([]entities.Inventaire, error) {
	var out []entities.Inventaire
	for _, inv := range r.items {
		if !inv.IsDeleted && inv.Name == name {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (r *fakeInventaireRepository) GetDeletedInventaires(ctx context.Context) ([]entities.Inventaire, error) {
	var out []entities.Inventaire
	for _, inv := range r.items {
		if inv.IsDeleted {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (r *fakeInventaireRepository) CountInventaires(ctx context.Context) (uint64, error) {
	_, total, _ := r.GetInventaires(ctx, types.Filter{})
	return total, nil
}

func (r *fakeInventaireRepository) CountInventairesByUser(ctx context.Context, userID uint64) (uint64, error) {
	list, _ := r.GetInventairesByUser(ctx, userID)
	return uint64(len(list)), nil
}

func (r *fakeInventaireRepository) CountByStatusForUser(ctx context.Context, userID uint64, status string) (uint64, error) {
	var count uint64
	for _, inv := range r.items {
		if !inv.IsDeleted && inv.AssociatedTo == userID && inv.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *fakeInventaireRepository) UpdateInventaire(ctx context.Context, id uint64, inv entities.Inventaire) error {
	stored, ok := r.items[id]
	if !ok || stored.IsDeleted {
		return apperrors.ErrNotFound
	}
	inv.ID = id
	inv.CreatedAt = stored.CreatedAt
	inv.UpdatedAt = time.Now()
	r.items[id] = &inv
	return nil
}

func (r *fakeInventaireRepository) UpdateStatusCAS(ctx context.Context, id uint64, currentStatus, newStatus string) error {
	stored, ok := r.items[id]
	if !ok || stored.IsDeleted || stored.Status != currentStatus {
		return apperrors.ErrNotFound
	}
	stored.Status = newStatus
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *fakeInventaireRepository) UpdateTotalEquipment(ctx context.Context, id uint64, total int) error {
	stored, ok := r.items[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	stored.TotalEquipment = total
	return nil
}

func (r *fakeInventaireRepository) SetDeleted(ctx context.Context, id uint64, deleted bool) error {
	stored, ok := r.items[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	stored.IsDeleted = deleted
	if deleted {
		stored.DeletedAt = null.TimeFrom(time.Now())
	} else {
		stored.DeletedAt = null.Time{}
	}
	return nil
}

type serviceFixture struct {
	service    InventaireServiceInterface
	repo       *fakeInventaireRepository
	equipments *fakeEquipmentRepository
	cache      *fakeCacheRepository
}

func newServiceFixture() *serviceFixture {
	users := &fakeUserRepository{users: map[uint64]*entities.User{
		5: {ID: 5, Name: "Умед Рахимов", Email: "umed@example.com"},
		9: {ID: 9, Name: "Далер Назаров", Email: "daler@example.com"},
	}}
	equipments := &fakeEquipmentRepository{counts: map[string]int{
		equipmentKey(constants.PlacementTypeDesk, 12):   3,
		equipmentKey(constants.PlacementTypeSection, 7): 10,
	}}
	cache := &fakeCacheRepository{values: map[string]string{}}
	repo := newFakeInventaireRepository()

	placementService := NewPlacementService(newFakePlacementRepository(), zap.NewNop())
	svc := NewInventaireService(repo, users, equipments, placementService, cache, time.Minute, zap.NewNop())

	return &serviceFixture{service: svc, repo: repo, equipments: equipments, cache: cache}
}

func actorContext(userID uint64) context.Context {
	ctx := context.WithValue(context.Background(), contextkeys.UserIDKey, userID)
	return context.WithValue(ctx, contextkeys.IsAdminKey, false)
}

func TestCreateInventaireSnapshotsEquipmentCount(t *testing.T) {
	f := newServiceFixture()

	res, err := f.service.CreateInventaire(context.Background(), dto.CreateInventaireDTO{
		StartDate:     "2024-03-01",
		AssociatedTo:  5,
		PlacementType: constants.PlacementTypeDesk,
		IDPlacement:   12,
		InventoryType: constants.InventoryTypeBarcode,
	})
	require.NoError(t, err)

	assert.Equal(t, constants.InventaireStatusPending, res.Status)
	assert.Equal(t, 3, res.TotalEquipment)
	assert.Equal(t, constants.PriorityMedium, res.Priority)
	assert.Equal(t, "Desk-12_3/1/2024", res.Name)
	assert.Equal(t, "2024-03-01", res.StartDate)
}

func TestCreateInventaireKeepsExplicitName(t *testing.T) {
	f := newServiceFixture()

	res, err := f.service.CreateInventaire(context.Background(), dto.CreateInventaireDTO{
		Name:          utils.ToPtr("Годовая ревизия"),
		StartDate:     "2024-03-01",
		AssociatedTo:  5,
		PlacementType: constants.PlacementTypeSection,
		IDPlacement:   7,
		InventoryType: constants.InventoryTypeRFID,
		Priority:      constants.PriorityHigh,
	})
	require.NoError(t, err)

	assert.Equal(t, "Годовая ревизия", res.Name)
	assert.Equal(t, 10, res.TotalEquipment)
	assert.Equal(t, constants.PriorityHigh, res.Priority)
}

func TestCreateInventaireUnknownUser(t *testing.T) {
	f := newServiceFixture()

	_, err := f.service.CreateInventaire(context.Background(), dto.CreateInventaireDTO{
		StartDate:     "2024-03-01",
		AssociatedTo:  404,
		PlacementType: constants.PlacementTypeDesk,
		IDPlacement:   12,
		InventoryType: constants.InventoryTypeBarcode,
	})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestCreateInventaireUnknownPlacement(t *testing.T) {
	f := newServiceFixture()

	_, err := f.service.CreateInventaire(context.Background(), dto.CreateInventaireDTO{
		StartDate:     "2024-03-01",
		AssociatedTo:  5,
		PlacementType: constants.PlacementTypeDesk,
		IDPlacement:   404,
		InventoryType: constants.InventoryTypeBarcode,
	})
	assert.ErrorIs(t, err, apperrors.ErrPlacementNotFound)
}

// Снимок оборудования не трогается обновлениями, не меняющими размещение.
func TestUpdateInventaireWithoutPlacementChangeKeepsSnapshot(t *testing.T) {
	f := newServiceFixture()

	created, err := f.service.CreateInventaire(context.Background(), dto.CreateInventaireDTO{
		StartDate:     "2024-03-01",
		AssociatedTo:  5,
		PlacementType: constants.PlacementTypeDesk,
		IDPlacement:   12,
		InventoryType: constants.InventoryTypeBarcode,
	})
	require.NoError(t, err)

	// оборудование переехало, снимок должен устареть
	f.equipments.counts[equipmentKey(constants.PlacementTypeDesk, 12)] = 8

	updated, err := f.service.UpdateInventaire(context.Background(), created.IDInventaire, dto.UpdateInventaireDTO{
		Priority: utils.ToPtr(constants.PriorityLow),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, updated.TotalEquipment)
	assert.Equal(t, constants.PriorityLow, updated.Priority)
}

func TestUpdateInventairePlacementChangeRecounts(t *testing.T) {
	f := newServiceFixture()

	created, err := f.service.CreateInventaire(context.Background(), dto.CreateInventaireDTO{
		StartDate:     "2024-03-01",
		AssociatedTo:  5,
		PlacementType: constants.PlacementTypeDesk,
		IDPlacement:   12,
		InventoryType: constants.InventoryTypeBarcode,
	})
	require.NoError(t, err)

	updated, err := f.service.UpdateInventaire(context.Background(), created.IDInventaire, dto.UpdateInventaireDTO{
		PlacementType: utils.ToPtr(constants.PlacementTypeSection),
		IDPlacement:   utils.ToPtr(uint64(7)),
	})
	require.NoError(t, err)

	assert.Equal(t, constants.PlacementTypeSection, updated.PlacementType)
	assert.Equal(t, 10, updated.TotalEquipment)
	// имя при смене размещения не регенерируется
	assert.Equal(t, created.Name, updated.Name)
}

func TestRecalculateEquipmentCount(t *testing.T) {
	f := newServiceFixture()

	created, err := f.service.CreateInventaire(context.Background(), dto.CreateInventaireDTO{
		StartDate:     "2024-03-01",
		AssociatedTo:  5,
		PlacementType: constants.PlacementTypeDesk,
		IDPlacement:   12,
		InventoryType: constants.InventoryTypeBarcode,
	})
	require.NoError(t, err)

	f.equipments.counts[equipmentKey(constants.PlacementTypeDesk, 12)] = 8

	count, err := f.service.RecalculateEquipmentCount(context.Background(), created.IDInventaire)
	require.NoError(t, err)
	assert.Equal(t, 8, count)

	reloaded, err := f.service.FindInventaire(context.Background(), created.IDInventaire)
	require.NoError(t, err)
	assert.Equal(t, 8, reloaded.TotalEquipment)
}

func TestSoftDeleteAndUndelete(t *testing.T) {
	f := newServiceFixture()

	created, err := f.service.CreateInventaire(context.Background(), dto.CreateInventaireDTO{
		StartDate:     "2024-03-01",
		AssociatedTo:  5,
		PlacementType: constants.PlacementTypeDesk,
		IDPlacement:   12,
		InventoryType: constants.InventoryTypeBarcode,
	})
	require.NoError(t, err)

	_, err = f.service.UndeleteInventaire(context.Background(), created.IDInventaire)
	assert.ErrorIs(t, err, apperrors.ErrInventaireNotDeleted)

	require.NoError(t, f.service.SoftDeleteInventaire(context.Background(), created.IDInventaire))

	err = f.service.SoftDeleteInventaire(context.Background(), created.IDInventaire)
	assert.ErrorIs(t, err, apperrors.ErrInventaireAlreadyDeleted)

	_, err = f.service.FindInventaire(context.Background(), created.IDInventaire)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	deleted, err := f.service.GetDeletedInventaires(context.Background())
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.NotEmpty(t, deleted[0].DeletedAt)

	restored, err := f.service.UndeleteInventaire(context.Background(), created.IDInventaire)
	require.NoError(t, err)
	assert.Empty(t, restored.DeletedAt)
}

func TestUpdateMyInventaireStatus(t *testing.T) {
	f := newServiceFixture()
	ctx := actorContext(5)

	created, err := f.service.CreateMyInventaire(ctx, dto.CreateMyInventaireDTO{
		StartDate:     "2024-03-01",
		PlacementType: constants.PlacementTypeDesk,
		IDPlacement:   12,
		InventoryType: constants.InventoryTypeBarcode,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(5), created.AssociatedTo)

	// переход вперёд через шаг
	view, err := f.service.UpdateMyInventaireStatus(ctx, created.IDInventaire, constants.InventaireStatusDone)
	require.NoError(t, err)
	assert.Equal(t, constants.InventaireStatusDone, view.Status)
	require.NotNil(t, view.Emplacement)
	assert.Equal(t, "Desk-12", *view.Emplacement)
	assert.Equal(t, 3, view.EquipCount)
	assert.Equal(t, "Умед Рахимов", view.AssociatedUser.Name)

	// откат назад запрещён
	_, err = f.service.UpdateMyInventaireStatus(ctx, created.IDInventaire, constants.InventaireStatusStarted)
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatusTransition)

	// отмена возможна из любого состояния
	view, err = f.service.UpdateMyInventaireStatus(ctx, created.IDInventaire, constants.InventaireStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, constants.InventaireStatusCancelled, view.Status)
}

// Чужая запись неотличима от отсутствующей.
func TestMobileScopeHidesForeignRecords(t *testing.T) {
	f := newServiceFixture()

	created, err := f.service.CreateMyInventaire(actorContext(5), dto.CreateMyInventaireDTO{
		StartDate:     "2024-03-01",
		PlacementType: constants.PlacementTypeDesk,
		IDPlacement:   12,
		InventoryType: constants.InventoryTypeBarcode,
	})
	require.NoError(t, err)

	stranger := actorContext(9)

	_, err = f.service.FindMyInventaire(stranger, created.IDInventaire)
	assert.ErrorIs(t, err, apperrors.ErrInventaireNotFound)

	_, err = f.service.UpdateMyInventaireStatus(stranger, created.IDInventaire, constants.InventaireStatusStarted)
	assert.ErrorIs(t, err, apperrors.ErrInventaireNotFound)

	_, err = f.service.UpdateMyInventaire(stranger, created.IDInventaire, dto.UpdateInventaireDTO{
		Priority: utils.ToPtr(constants.PriorityHigh),
	})
	assert.ErrorIs(t, err, apperrors.ErrInventaireNotFound)
}

func TestGetMyInventaireStats(t *testing.T) {
	f := newServiceFixture()
	ctx := actorContext(5)

	for _, status := range []string{
		constants.InventaireStatusPending,
		constants.InventaireStatusStarted,
		constants.InventaireStatusDone,
		constants.InventaireStatusDone,
	} {
		created, err := f.service.CreateMyInventaire(ctx, dto.CreateMyInventaireDTO{
			StartDate:     "2024-03-01",
			PlacementType: constants.PlacementTypeDesk,
			IDPlacement:   12,
			InventoryType: constants.InventoryTypeBarcode,
		})
		require.NoError(t, err)
		if status != constants.InventaireStatusPending {
			_, err = f.service.UpdateMyInventaireStatus(ctx, created.IDInventaire, status)
			require.NoError(t, err)
		}
	}

	stats, err := f.service.GetMyInventaireStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), stats.Total)
	assert.Equal(t, uint64(1), stats.Pending)
	assert.Equal(t, uint64(1), stats.InProgress)
	assert.Equal(t, uint64(2), stats.Completed)

	// результат закеширован
	assert.Contains(t, f.cache.values, "inventaire:stats:user:5")

	// мутация сбрасывает кеш
	_, err = f.service.CreateMyInventaire(ctx, dto.CreateMyInventaireDTO{
		StartDate:     "2024-03-02",
		PlacementType: constants.PlacementTypeSection,
		IDPlacement:   7,
		InventoryType: constants.InventoryTypeRFID,
	})
	require.NoError(t, err)
	assert.NotContains(t, f.cache.values, "inventaire:stats:user:5")

	stats, err = f.service.GetMyInventaireStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), stats.Total)
	assert.Equal(t, uint64(2), stats.Pending)
}
