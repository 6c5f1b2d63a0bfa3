package repository

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raceboard/backend/internal/errs"
	"github.com/raceboard/backend/internal/model"
	"github.com/raceboard/backend/internal/sqlerr"
)

func createUser(t *testing.T, ctx context.Context, repos *Repositories, login string, role model.AppRole) *model.User {
	t.Helper()
	u, err := repos.Users.Create(ctx, &model.User{
		Login:        login,
		Email:        login + "@example.com",
		PasswordHash: "hash",
		FirstName:    "Test",
		LastName:     "User",
		Role:         role,
		Status:       model.UserStatusPending,
	})
	require.NoError(t, err)
	return u
}

func exec(t *testing.T, ctx context.Context, repos *Repositories, sql string, args ...any) int64 {
	t.Helper()
	var id int64
	require.NoError(t, repos.Users.db.QueryRow(ctx, sql, args...).Scan(&id))
	return id
}

func TestUserRepository(t *testing.T) {
	withTx(t, func(ctx context.Context, repos *Repositories) {
		u := createUser(t, ctx, repos, "racer", model.AppRoleUser)
		assert.NotZero(t, u.ID)
		assert.Equal(t, model.UserStatusPending, u.Status)

		byIdent, err := repos.Users.GetByLoginOrEmail(ctx, "RACER@example.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, byIdent.ID)

		exists, err := repos.Users.LoginExists(ctx, "Racer")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repos.Users.EmailExists(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.False(t, exists)

		require.NoError(t, repos.Users.SetStatus(ctx, u.ID, model.UserStatusActive))
		require.NoError(t, repos.Users.UpdatePassword(ctx, u.ID, "new-hash"))

		got, err := repos.Users.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, model.UserStatusActive, got.Status)
		assert.Equal(t, "new-hash", got.PasswordHash)

		_, err = repos.Users.GetByEmail(ctx, "missing@example.com")
		assert.ErrorIs(t, err, pgx.ErrNoRows)
	})
}

func TestUserRepository_DuplicateLogin(t *testing.T) {
	withTx(t, func(ctx context.Context, repos *Repositories) {
		createUser(t, ctx, repos, "dupe", model.AppRoleUser)

		_, err := repos.Users.Create(ctx, &model.User{
			Login: "DUPE", Email: "other@example.com", PasswordHash: "h",
			Role: model.AppRoleUser, Status: model.UserStatusPending,
		})
		require.Error(t, err)
		assert.Equal(t, sqlerr.UniqueViolation, sqlerr.ConvertPgError(asPgError(t, err)).Code)
	})
}

func TestDriverDocumentRepository(t *testing.T) {
	withTx(t, func(ctx context.Context, repos *Repositories) {
		owner := createUser(t, ctx, repos, "driver1", model.AppRoleDriver)
		driverID := exec(t, ctx, repos, `INSERT INTO drivers (user_id) VALUES ($1) RETURNING id`, owner.ID)

		ownerID, err := repos.DriverDocuments.GetDriverOwner(ctx, driverID)
		require.NoError(t, err)
		assert.Equal(t, owner.ID, ownerID)

		issued := time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC)
		doc, err := repos.DriverDocuments.Create(ctx, &model.DriverDocument{
			DriverID:     driverID,
			DocumentType: model.DocumentTypeLicense,
			Number:       "LV-001",
			IssuedAt:     &issued,
			File:         []byte("scan"),
		})
		require.NoError(t, err)
		assert.Len(t, doc.ID, 36)
		assert.Equal(t, owner.ID, doc.OwnerUserID)
		assert.Equal(t, []byte("scan"), doc.File)
		assert.Nil(t, doc.ExpiresAt)

		_, err = repos.DriverDocuments.Create(ctx, &model.DriverDocument{
			DriverID: driverID, DocumentType: model.DocumentTypeInsurance, Number: "INS", File: []byte("x"),
		})
		require.NoError(t, err)

		all, err := repos.DriverDocuments.List(ctx, driverID, model.DriverDocumentFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 2)

		licenseType := model.DocumentTypeLicense
		licenses, err := repos.DriverDocuments.List(ctx, driverID, model.DriverDocumentFilter{DocumentType: &licenseType})
		require.NoError(t, err)
		require.Len(t, licenses, 1)
		assert.Equal(t, doc.ID, licenses[0].ID)

		number := "LV-002"
		updated, err := repos.DriverDocuments.Update(ctx, driverID, doc.ID, model.DriverDocumentPatch{Number: &number})
		require.NoError(t, err)
		assert.Equal(t, "LV-002", updated.Number)
		assert.Equal(t, []byte("scan"), updated.File)
		require.NotNil(t, updated.IssuedAt)

		require.NoError(t, repos.DriverDocuments.Delete(ctx, driverID, doc.ID))

		_, err = repos.DriverDocuments.Get(ctx, driverID, doc.ID)
		httpErr := sqlerr.HandleError(err).(*errs.HTTPError)
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
		assert.Equal(t, "Driver Document not found", httpErr.Message)

		err = repos.DriverDocuments.Delete(ctx, driverID, doc.ID)
		assert.ErrorIs(t, err, pgx.ErrNoRows)
	})
}

func TestCatalogAndRecords(t *testing.T) {
	withTx(t, func(ctx context.Context, repos *Repositories) {
		organizer := createUser(t, ctx, repos, "org", model.AppRoleOrganizer)
		driverUser := createUser(t, ctx, repos, "fast", model.AppRoleDriver)
		driverID := exec(t, ctx, repos, `INSERT INTO drivers (user_id) VALUES ($1) RETURNING id`, driverUser.ID)

		locationID := exec(t, ctx, repos, `INSERT INTO locations (name) VALUES ('{"en":"Bikernieki"}') RETURNING id`)
		taConfig := exec(t, ctx, repos, `
			INSERT INTO location_configs (location_id, c_race_type, name, description, image, length, difficulty)
			VALUES ($1, 1, '{"en":"Full"}', '{"en":"Long"}', '\x0102', 3.5, 3) RETURNING id`, locationID)
		dragConfig := exec(t, ctx, repos, `
			INSERT INTO location_configs (location_id, c_race_type, name, length)
			VALUES ($1, 2, '{"en":"Quarter"}', 0.402) RETURNING id`, locationID)

		vehicleID := exec(t, ctx, repos, `INSERT INTO vehicles (driver_id, name) VALUES ($1, 'Civic') RETURNING id`, driverID)
		tiresID := exec(t, ctx, repos, `INSERT INTO tires (name) VALUES ('Michelin') RETURNING id`)

		ev2023 := exec(t, ctx, repos, `INSERT INTO events (organizer_id, location_config_id, c_race_type, name, starts_at)
			VALUES ($1, $2, 1, 'TA 23', '2023-05-01') RETURNING id`, organizer.ID, taConfig)
		ev2024a := exec(t, ctx, repos, `INSERT INTO events (organizer_id, location_config_id, c_race_type, name, starts_at)
			VALUES ($1, $2, 1, 'TA 24', '2024-05-01') RETURNING id`, organizer.ID, taConfig)
		ev2024b := exec(t, ctx, repos, `INSERT INTO events (organizer_id, location_config_id, c_race_type, name, starts_at)
			VALUES ($1, $2, 1, 'TA 24 b', '2024-08-01') RETURNING id`, organizer.ID, taConfig)
		evDrag := exec(t, ctx, repos, `INSERT INTO events (organizer_id, location_config_id, c_race_type, name, starts_at)
			VALUES ($1, $2, 2, 'Drag 24', '2024-06-01') RETURNING id`, organizer.ID, dragConfig)

		exec(t, ctx, repos, `INSERT INTO driver_records (driver_id, event_id, vehicle_id, tires_id, c_road_condition, lap_time)
			VALUES ($1, $2, $3, $4, 1, '1:23.4') RETURNING id`, driverID, ev2024a, vehicleID, tiresID)
		exec(t, ctx, repos, `INSERT INTO driver_records (driver_id, event_id, vehicle_id, c_road_condition, lap_time)
			VALUES ($1, $2, $3, 2, '1:22.95') RETURNING id`, driverID, ev2024b, vehicleID)
		exec(t, ctx, repos, `INSERT INTO driver_records (driver_id, event_id, vehicle_id, c_road_condition, lap_time)
			VALUES ($1, $2, $3, 1, '12.1') RETURNING id`, driverID, evDrag, vehicleID)
		exec(t, ctx, repos, `INSERT INTO driver_records (driver_id, event_id, vehicle_id, c_road_condition, lap_time)
			VALUES ($1, $2, $3, 1, '1:30.0') RETURNING id`, driverID, ev2023, vehicleID)

		records, err := repos.DriverRecords.List(ctx, driverID, model.DriverRecordFilter{Year: 2024})
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, model.RaceTypeTimeAttack, records[0].RaceType)
		assert.Equal(t, "1:22.95", *records[0].LapTime)
		assert.Nil(t, records[0].TiresName)
		assert.Equal(t, "Bikernieki", records[0].LocationName["en"])
		assert.Equal(t, model.RaceTypeDrag, records[1].RaceType)

		drag := model.RaceTypeDrag
		records, err = repos.DriverRecords.List(ctx, driverID, model.DriverRecordFilter{Year: 2024, RaceType: &drag})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, evDrag, records[0].EventID)

		configs, err := repos.LocationConfigs.List(ctx, nil)
		require.NoError(t, err)
		assert.Len(t, configs, 2)

		timeAttack := model.RaceTypeTimeAttack
		configs, err = repos.LocationConfigs.List(ctx, &timeAttack)
		require.NoError(t, err)
		require.Len(t, configs, 1)
		assert.Equal(t, []byte{1, 2}, configs[0].Image)
		assert.InDelta(t, 3.5, configs[0].Length, 0.0001)
		assert.Equal(t, "Long", configs[0].Description["en"])

		years, err := repos.Events.OrganizerYears(ctx, organizer.ID)
		require.NoError(t, err)
		assert.Equal(t, []model.OrganizerEventYears{
			{RaceType: model.RaceTypeTimeAttack, Years: []int{2024, 2023}},
			{RaceType: model.RaceTypeDrag, Years: []int{2024}},
		}, years)

		types, err := repos.Classifiers.ListTypes(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, types)
		assert.Equal(t, 1, types[0].Type)
	})
}
