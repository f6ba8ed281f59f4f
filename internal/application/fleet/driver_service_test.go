package fleet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gatesec/backend/internal/domain/fleet"
	"github.com/gatesec/backend/internal/domain/shared"
)

// in-memory repositories backing the roster sync tests

type memVehicleRepo struct {
	vehicles map[int64]*fleet.Vehicle
}

func newMemVehicleRepo() *memVehicleRepo {
	return &memVehicleRepo{vehicles: make(map[int64]*fleet.Vehicle)}
}

func (r *memVehicleRepo) add(v *fleet.Vehicle) { r.vehicles[v.ID] = v }

func (r *memVehicleRepo) FindByID(_ context.Context, id int64) (*fleet.Vehicle, error) {
	v, ok := r.vehicles[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *v
	return &copied, nil
}

func (r *memVehicleRepo) FindByIDs(_ context.Context, ids []int64) ([]fleet.Vehicle, error) {
	var out []fleet.Vehicle
	for _, id := range ids {
		if v, ok := r.vehicles[id]; ok {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *memVehicleRepo) FindAll(_ context.Context, _ shared.Filter) ([]fleet.Vehicle, error) {
	var out []fleet.Vehicle
	for _, v := range r.vehicles {
		out = append(out, *v)
	}
	return out, nil
}

func (r *memVehicleRepo) ExistsByPlate(_ context.Context, plate string, excludeID int64) (bool, error) {
	for _, v := range r.vehicles {
		if v.PlateNumber == plate && v.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memVehicleRepo) Save(_ context.Context, v *fleet.Vehicle) error {
	if v.ID == 0 {
		v.ID = int64(len(r.vehicles) + 1)
	}
	copied := *v
	r.vehicles[v.ID] = &copied
	return nil
}

func (r *memVehicleRepo) Delete(_ context.Context, id int64) error {
	delete(r.vehicles, id)
	return nil
}

type memDriverRepo struct {
	drivers map[int64]*fleet.Driver
	nextID  int64
}

func newMemDriverRepo() *memDriverRepo {
	return &memDriverRepo{drivers: make(map[int64]*fleet.Driver), nextID: 1}
}

func (r *memDriverRepo) FindByID(_ context.Context, id int64) (*fleet.Driver, error) {
	d, ok := r.drivers[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *d
	return &copied, nil
}

func (r *memDriverRepo) FindAll(_ context.Context, _ shared.Filter) ([]fleet.Driver, error) {
	var out []fleet.Driver
	for _, d := range r.drivers {
		out = append(out, *d)
	}
	return out, nil
}

func (r *memDriverRepo) ExistsByPhone(_ context.Context, phone string, excludeID int64) (bool, error) {
	for _, d := range r.drivers {
		if d.Phone == phone && d.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memDriverRepo) ExistsByLicense(_ context.Context, license string, excludeID int64) (bool, error) {
	for _, d := range r.drivers {
		if d.LicenseNumber == license && d.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memDriverRepo) Save(_ context.Context, d *fleet.Driver) error {
	if d.ID == 0 {
		d.ID = r.nextID
		r.nextID++
	}
	copied := *d
	r.drivers[d.ID] = &copied
	return nil
}

func (r *memDriverRepo) Delete(_ context.Context, id int64) error {
	delete(r.drivers, id)
	return nil
}

type nopStorage struct{}

func (nopStorage) PutObject(_ context.Context, _, _ string, _ []byte) error { return nil }
func (nopStorage) DeleteObject(_ context.Context, _ string) error           { return nil }
func (nopStorage) ObjectURL(key string) string                              { return key }

func newTestDriverService() (*DriverService, *memVehicleRepo, *memDriverRepo) {
	vehicleRepo := newMemVehicleRepo()
	driverRepo := newMemDriverRepo()
	svc := NewDriverService(NewNoOpTransactionScope(vehicleRepo, driverRepo), nopStorage{}, zap.NewNop())
	return svc, vehicleRepo, driverRepo
}

func seedVehicle(repo *memVehicleRepo, id int64, plate string) {
	v, _ := fleet.NewVehicle(plate, "Hilux", "white", nil)
	v.ID = id
	repo.add(v)
}

func TestDriverService_Create(t *testing.T) {
	t.Run("mirrors driver onto the vehicle roster", func(t *testing.T) {
		svc, vehicleRepo, _ := newTestDriverService()
		seedVehicle(vehicleRepo, 5, "GS-1234")
		vehicleID := int64(5)

		dto, err := svc.Create(context.Background(), CreateDriverInput{
			FullName:      "Sam",
			Phone:         "0700111222",
			LicenseNumber: "DL-9",
			Type:          "staff",
			VehicleID:     &vehicleID,
		}, 1)

		require.NoError(t, err)
		vehicle := vehicleRepo.vehicles[5]
		require.Len(t, vehicle.Roster, 1)
		assert.Equal(t, dto.ID, vehicle.Roster[0].DriverID)
		assert.Equal(t, "Sam", vehicle.Roster[0].Name)
		assert.Equal(t, "GS-1234", vehicle.Roster[0].VehicleNumber, "vehicle number falls back to plate")
	})

	t.Run("unassigned driver touches no roster", func(t *testing.T) {
		svc, vehicleRepo, _ := newTestDriverService()
		seedVehicle(vehicleRepo, 5, "GS-1234")

		_, err := svc.Create(context.Background(), CreateDriverInput{
			FullName:      "Sam",
			Phone:         "0700111222",
			LicenseNumber: "DL-9",
			Type:          "staff",
		}, 1)

		require.NoError(t, err)
		assert.Empty(t, vehicleRepo.vehicles[5].Roster)
	})

	t.Run("rejects duplicate phone", func(t *testing.T) {
		svc, vehicleRepo, _ := newTestDriverService()
		seedVehicle(vehicleRepo, 5, "GS-1234")
		_, err := svc.Create(context.Background(), CreateDriverInput{
			FullName: "Sam", Phone: "0700111222", LicenseNumber: "DL-9", Type: "staff",
		}, 1)
		require.NoError(t, err)

		_, err = svc.Create(context.Background(), CreateDriverInput{
			FullName: "Lee", Phone: "0700111222", LicenseNumber: "DL-10", Type: "cargo",
		}, 1)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})

	t.Run("unknown vehicle still creates the driver, no roster entry", func(t *testing.T) {
		svc, vehicleRepo, driverRepo := newTestDriverService()
		seedVehicle(vehicleRepo, 5, "GS-1234")
		vehicleID := int64(404)

		dto, err := svc.Create(context.Background(), CreateDriverInput{
			FullName: "Sam", Phone: "0700111222", LicenseNumber: "DL-9", Type: "staff",
			VehicleID: &vehicleID,
		}, 1)

		require.NoError(t, err)
		_, ok := driverRepo.drivers[dto.ID]
		assert.True(t, ok, "driver row persisted")
		assert.Empty(t, vehicleRepo.vehicles[5].Roster)
	})
}

func TestDriverService_Update(t *testing.T) {
	setup := func(t *testing.T) (*DriverService, *memVehicleRepo, int64) {
		t.Helper()
		svc, vehicleRepo, _ := newTestDriverService()
		seedVehicle(vehicleRepo, 5, "GS-1234")
		seedVehicle(vehicleRepo, 6, "GS-5678")
		vehicleID := int64(5)
		dto, err := svc.Create(context.Background(), CreateDriverInput{
			FullName: "Sam", Phone: "0700111222", LicenseNumber: "DL-9", Type: "staff",
			VehicleID: &vehicleID,
		}, 1)
		require.NoError(t, err)
		return svc, vehicleRepo, dto.ID
	}

	t.Run("field change syncs the roster entry in place", func(t *testing.T) {
		svc, vehicleRepo, driverID := setup(t)
		phone := "0700999888"

		_, err := svc.Update(context.Background(), driverID, UpdateDriverInput{Phone: &phone})

		require.NoError(t, err)
		roster := vehicleRepo.vehicles[5].Roster
		require.Len(t, roster, 1)
		assert.Equal(t, "0700999888", roster[0].Phone)
	})

	t.Run("vehicle move prunes old roster and fills new one", func(t *testing.T) {
		svc, vehicleRepo, driverID := setup(t)
		newVehicle := int64(6)

		_, err := svc.Update(context.Background(), driverID, UpdateDriverInput{VehicleID: &newVehicle})

		require.NoError(t, err)
		assert.Empty(t, vehicleRepo.vehicles[5].Roster, "old vehicle loses the entry")
		require.Len(t, vehicleRepo.vehicles[6].Roster, 1)
		assert.Equal(t, driverID, vehicleRepo.vehicles[6].Roster[0].DriverID)
		assert.Equal(t, "GS-5678", vehicleRepo.vehicles[6].Roster[0].VehicleNumber)
	})

	t.Run("rejects duplicate license on update", func(t *testing.T) {
		svc, _, driverID := setup(t)
		_, err := svc.Create(context.Background(), CreateDriverInput{
			FullName: "Lee", Phone: "0700000001", LicenseNumber: "DL-10", Type: "cargo",
		}, 1)
		require.NoError(t, err)

		taken := "DL-10"
		_, err = svc.Update(context.Background(), driverID, UpdateDriverInput{LicenseNumber: &taken})
		assert.Error(t, err)
	})
}

func TestDriverService_Delete(t *testing.T) {
	t.Run("prunes the roster entry with the driver", func(t *testing.T) {
		svc, vehicleRepo, _ := newTestDriverService()
		seedVehicle(vehicleRepo, 5, "GS-1234")
		vehicleID := int64(5)
		dto, err := svc.Create(context.Background(), CreateDriverInput{
			FullName: "Sam", Phone: "0700111222", LicenseNumber: "DL-9", Type: "staff",
			VehicleID: &vehicleID,
		}, 1)
		require.NoError(t, err)

		require.NoError(t, svc.Delete(context.Background(), dto.ID))

		assert.Empty(t, vehicleRepo.vehicles[5].Roster)
		_, err = svc.Get(context.Background(), dto.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("survives a vehicle deleted out from under the driver", func(t *testing.T) {
		svc, vehicleRepo, _ := newTestDriverService()
		seedVehicle(vehicleRepo, 5, "GS-1234")
		vehicleID := int64(5)
		dto, err := svc.Create(context.Background(), CreateDriverInput{
			FullName: "Sam", Phone: "0700111222", LicenseNumber: "DL-9", Type: "staff",
			VehicleID: &vehicleID,
		}, 1)
		require.NoError(t, err)
		require.NoError(t, vehicleRepo.Delete(context.Background(), 5))

		assert.NoError(t, svc.Delete(context.Background(), dto.ID))
	})
}
