package ownership

import (
	"testing"

	"github.com/Jfdeev/reflora/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveOwnedSensor(t *testing.T) {
	db := setupDB(t)
	guard := NewGuard(db)
	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")
	aliceSensor := createSensor(t, db, &alice)
	bobSensor := createSensor(t, db, &bob)
	unowned := createSensor(t, db, nil)

	sensor, err := guard.ResolveOwnedSensor(ctx, alice.ID, aliceSensor.ID)
	require.NoError(t, err)
	assert.Equal(t, aliceSensor.ID, sensor.ID)
	assert.True(t, sensor.OwnedBy(alice.ID))

	_, errForeign := guard.ResolveOwnedSensor(ctx, alice.ID, bobSensor.ID)
	_, errMissing := guard.ResolveOwnedSensor(ctx, alice.ID, 9999)
	_, errUnowned := guard.ResolveOwnedSensor(ctx, alice.ID, unowned.ID)
	assert.ErrorIs(t, errForeign, ErrNotFound)
	assert.Equal(t, errMissing, errForeign)
	assert.Equal(t, errMissing, errUnowned)
}

func TestResolveOwnedReading(t *testing.T) {
	db := setupDB(t)
	guard := NewGuard(db)
	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")
	first := createSensor(t, db, &alice)
	second := createSensor(t, db, &alice)
	bobSensor := createSensor(t, db, &bob)
	reading := createReading(t, db, first)
	bobReading := createReading(t, db, bobSensor)

	got, err := guard.ResolveOwnedReading(ctx, alice.ID, first.ID, reading.ID)
	require.NoError(t, err)
	assert.Equal(t, reading.ID, got.ID)

	// right owner, wrong sensor
	_, err = guard.ResolveOwnedReading(ctx, alice.ID, second.ID, reading.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// somebody else's sensor
	_, err = guard.ResolveOwnedReading(ctx, alice.ID, bobSensor.ID, bobReading.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = guard.ResolveOwnedReading(ctx, alice.ID, first.ID, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveOwnedAlert(t *testing.T) {
	db := setupDB(t)
	guard := NewGuard(db)
	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")
	aliceAlert := createAlert(t, db, createSensor(t, db, &alice))
	bobAlert := createAlert(t, db, createSensor(t, db, &bob))
	orphanAlert := createAlert(t, db, createSensor(t, db, nil))

	got, err := guard.ResolveOwnedAlert(ctx, alice.ID, aliceAlert.ID)
	require.NoError(t, err)
	assert.Equal(t, aliceAlert.Message, got.Message)
	assert.Equal(t, aliceAlert.SensorID, got.SensorID)

	for _, id := range []uint{bobAlert.ID, orphanAlert.ID, 9999} {
		_, err := guard.ResolveOwnedAlert(ctx, alice.ID, id)
		assert.ErrorIs(t, err, ErrNotFound)
	}
}

func TestSensorByToken(t *testing.T) {
	db := setupDB(t)
	guard := NewGuard(db)
	unowned := createSensor(t, db, nil)

	got, err := guard.SensorByToken(ctx, unowned.WebhookToken)
	require.NoError(t, err)
	assert.Equal(t, unowned.ID, got.ID)

	_, err = guard.SensorByToken(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = guard.SensorByToken(ctx, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteReadingOfForeignSensorLeavesRow(t *testing.T) {
	db := setupDB(t)
	guard := NewGuard(db)
	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")
	aliceSensor := createSensor(t, db, &alice)
	bobSensor := createSensor(t, db, &bob)
	bobReading := createReading(t, db, bobSensor)

	// through bob's sensor id
	err := guard.DeleteReading(ctx, alice.ID, bobSensor.ID, bobReading.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	// through alice's own sensor id
	err = guard.DeleteReading(ctx, alice.ID, aliceSensor.ID, bobReading.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, int64(1), count(t, db, &models.Reading{}, "id = ?", bobReading.ID))

	require.NoError(t, guard.DeleteReading(ctx, bob.ID, bobSensor.ID, bobReading.ID))
	assert.Equal(t, int64(0), count(t, db, &models.Reading{}, "id = ?", bobReading.ID))
}

func TestAlertOperationsRespectOwnership(t *testing.T) {
	db := setupDB(t)
	guard := NewGuard(db)
	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")
	aliceSensor := createSensor(t, db, &alice)
	bobSensor := createSensor(t, db, &bob)
	bobAlert := createAlert(t, db, bobSensor)

	err := guard.DeleteAlert(ctx, alice.ID, bobAlert.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = guard.UpdateAlert(ctx, alice.ID, bobAlert.ID, models.AlertRequest{Message: "hijack", Level: models.LevelAlert})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = guard.SensorAlert(ctx, alice.ID, aliceSensor.ID, bobAlert.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = guard.CreateAlert(ctx, alice.ID, bobSensor.ID, models.AlertRequest{Message: "x", Level: models.LevelAlert})
	assert.ErrorIs(t, err, ErrNotFound)

	var stored models.Alert
	require.NoError(t, db.First(&stored, bobAlert.ID).Error)
	assert.Equal(t, bobAlert.Message, stored.Message)
	assert.Equal(t, int64(0), count(t, db, &models.Alert{}, "sensor_id = ?", aliceSensor.ID))

	updated, err := guard.UpdateAlert(ctx, bob.ID, bobAlert.ID, models.AlertRequest{Message: "checked", Level: models.LevelAlert})
	require.NoError(t, err)
	assert.Equal(t, "checked", updated.Message)
	assert.Equal(t, models.LevelAlert, updated.Level)

	got, err := guard.SensorAlert(ctx, bob.ID, bobSensor.ID, bobAlert.ID)
	require.NoError(t, err)
	assert.Equal(t, "checked", got.Message)

	require.NoError(t, guard.DeleteAlert(ctx, bob.ID, bobAlert.ID))
	assert.Equal(t, int64(0), count(t, db, &models.Alert{}, "id = ?", bobAlert.ID))
}

func TestCreateAndListAlerts(t *testing.T) {
	db := setupDB(t)
	guard := NewGuard(db)
	alice := createUser(t, db, "alice@example.com")
	sensor := createSensor(t, db, &alice)

	created, err := guard.CreateAlert(ctx, alice.ID, sensor.ID, models.AlertRequest{Message: "irrigation valve stuck", Level: models.LevelCritical})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.Timestamp.IsZero())

	alerts, err := guard.ListAlerts(ctx, alice.ID, sensor.ID)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "irrigation valve stuck", alerts[0].Message)
}

func TestSensorLifecycle(t *testing.T) {
	db := setupDB(t)
	guard := NewGuard(db)
	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")

	sensor, err := guard.CreateSensor(ctx, alice.ID, models.SensorRequest{SensorName: "north bed", Location: "field 1"})
	require.NoError(t, err)
	assert.True(t, sensor.OwnedBy(alice.ID))
	assert.NotEmpty(t, sensor.WebhookToken)
	assert.False(t, sensor.InstallationDate.IsZero())

	sensors, err := guard.ListSensors(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, sensors, 1)
	sensors, err = guard.ListSensors(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, sensors)

	_, err = guard.UpdateSensor(ctx, bob.ID, sensor.ID, models.SensorRequest{SensorName: "mine", Location: "now"})
	assert.ErrorIs(t, err, ErrNotFound)

	renamed, err := guard.UpdateSensor(ctx, alice.ID, sensor.ID, models.SensorRequest{SensorName: "south bed", Location: "field 2"})
	require.NoError(t, err)
	assert.Equal(t, "south bed", renamed.SensorName)
	assert.Equal(t, "field 2", renamed.Location)
	assert.Equal(t, sensor.WebhookToken, renamed.WebhookToken)

	createReading(t, db, *sensor)
	createAlert(t, db, *sensor)

	assert.ErrorIs(t, guard.DeleteSensor(ctx, bob.ID, sensor.ID), ErrNotFound)
	assert.Equal(t, int64(1), count(t, db, &models.Sensor{}, "id = ?", sensor.ID))

	require.NoError(t, guard.DeleteSensor(ctx, alice.ID, sensor.ID))
	assert.Equal(t, int64(0), count(t, db, &models.Sensor{}, "id = ?", sensor.ID))
	assert.Equal(t, int64(0), count(t, db, &models.Reading{}, "sensor_id = ?", sensor.ID))
	assert.Equal(t, int64(0), count(t, db, &models.Alert{}, "sensor_id = ?", sensor.ID))
}

func TestProvisionSensorIsUnowned(t *testing.T) {
	db := setupDB(t)
	guard := NewGuard(db)

	sensor, err := guard.ProvisionSensor(ctx, models.SensorRequest{SensorName: "probe", Location: "orchard"})
	require.NoError(t, err)
	assert.Nil(t, sensor.UserID)

	other, err := guard.ProvisionSensor(ctx, models.SensorRequest{SensorName: "probe", Location: "orchard"})
	require.NoError(t, err)
	assert.NotEqual(t, sensor.WebhookToken, other.WebhookToken)
}

func TestListReadings(t *testing.T) {
	db := setupDB(t)
	guard := NewGuard(db)
	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")
	sensor := createSensor(t, db, &alice)
	createReading(t, db, sensor)
	createReading(t, db, sensor)

	readings, err := guard.ListReadings(ctx, alice.ID, sensor.ID)
	require.NoError(t, err)
	assert.Len(t, readings, 2)

	_, err = guard.ListReadings(ctx, bob.ID, sensor.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateUser(t *testing.T) {
	db := setupDB(t)
	guard := NewGuard(db)
	alice := createUser(t, db, "alice@example.com")
	createUser(t, db, "bob@example.com")

	user, err := guard.UpdateUser(ctx, alice.ID, models.UpdateUserRequest{Name: "Alice", Email: "alice@farm.example"})
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "alice@farm.example", user.Email)

	_, err = guard.UpdateUser(ctx, alice.ID, models.UpdateUserRequest{Name: "Alice", Email: "bob@example.com"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = guard.UpdateUser(ctx, 9999, models.UpdateUserRequest{Name: "Ghost", Email: "ghost@example.com"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteUserCascades(t *testing.T) {
	db := setupDB(t)
	guard := NewGuard(db)
	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")
	aliceSensor := createSensor(t, db, &alice)
	bobSensor := createSensor(t, db, &bob)
	createReading(t, db, aliceSensor)
	createAlert(t, db, aliceSensor)
	createReading(t, db, bobSensor)
	createAlert(t, db, bobSensor)

	require.NoError(t, guard.DeleteUser(ctx, alice.ID))

	assert.Equal(t, int64(0), count(t, db, &models.User{}, "id = ?", alice.ID))
	assert.Equal(t, int64(0), count(t, db, &models.Sensor{}, "user_id = ?", alice.ID))
	assert.Equal(t, int64(0), count(t, db, &models.Reading{}, "sensor_id = ?", aliceSensor.ID))
	assert.Equal(t, int64(0), count(t, db, &models.Alert{}, "sensor_id = ?", aliceSensor.ID))

	assert.Equal(t, int64(1), count(t, db, &models.Sensor{}, "user_id = ?", bob.ID))
	assert.Equal(t, int64(1), count(t, db, &models.Reading{}, "sensor_id = ?", bobSensor.ID))
	assert.Equal(t, int64(1), count(t, db, &models.Alert{}, "sensor_id = ?", bobSensor.ID))

	assert.ErrorIs(t, guard.DeleteUser(ctx, alice.ID), ErrNotFound)
}

func TestCreateSensorForDeletedUser(t *testing.T) {
	db := setupDB(t)
	guard := NewGuard(db)
	alice := createUser(t, db, "alice@example.com")
	require.NoError(t, guard.DeleteUser(ctx, alice.ID))

	_, err := guard.CreateSensor(ctx, alice.ID, models.SensorRequest{SensorName: "north bed", Location: "field 1"})
	assert.ErrorIs(t, err, ErrUnknownUser)
	assert.Equal(t, int64(0), count(t, db, &models.Sensor{}, "1 = 1"))
}
