package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/Jfdeev/reflora/config"
	"github.com/Jfdeev/reflora/ingest"
	"github.com/Jfdeev/reflora/models"
	"github.com/Jfdeev/reflora/ownership"
	"github.com/Jfdeev/reflora/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	adminSecret = "admin-secret"

	healthyBody = `{"soilHumidity":40,"temperature":24,"condutivity":1,"ph":6.5,"nitrogen":30,"phosphorus":25,"potassium":200}`
	dryBody     = `{"soilHumidity":10,"temperature":24,"condutivity":1,"ph":6.5,"nitrogen":30,"phosphorus":25,"potassium":200}`
)

type testAPI struct {
	t      *testing.T
	router *gin.Engine
	db     *gorm.DB
}

type ingestResponse struct {
	Message string                  `json:"message"`
	Reading models.Reading          `json:"reading"`
	Alerts  []ingest.GeneratedAlert `json:"alerts"`
}

func setup(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := config.Open("sqlite", filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection: requests queue for it instead of racing SQLite's lock
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	cfg := &config.Config{
		JWTSecret:      "test-secret",
		JWTExpiration:  time.Hour,
		AdminSecret:    adminSecret,
		AllowOrigins:   []string{"http://localhost:3000"},
		RequestTimeout: 5 * time.Second,
	}
	h := NewHandler(db, ownership.NewGuard(db), ingest.New(db, utils.DefaultThresholds()), cfg)
	return &testAPI{t: t, router: SetupRouter(h), db: db}
}

func (a *testAPI) request(method, path, token, body string, headers ...string) *httptest.ResponseRecorder {
	a.t.Helper()
	req, err := http.NewRequest(method, path, bytes.NewBufferString(body))
	require.NoError(a.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// register signs a new user up and returns the issued token.
func (a *testAPI) register(email string) string {
	a.t.Helper()
	w := a.request("POST", "/register", "", `{"name":"Ana","email":"`+email+`","password":"securepassword"}`)
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	var body struct {
		Token string `json:"token"`
	}
	decode(a.t, w, &body)
	require.NotEmpty(a.t, body.Token)
	return body.Token
}

func (a *testAPI) createSensor(token string) models.Sensor {
	a.t.Helper()
	w := a.request("POST", "/sensors", token, `{"sensorName":"bed 1","location":"greenhouse"}`)
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	var body struct {
		Sensor models.Sensor `json:"sensor"`
	}
	decode(a.t, w, &body)
	return body.Sensor
}

func (a *testAPI) ingest(token string, sensorID uint, body string) ingestResponse {
	a.t.Helper()
	w := a.request("POST", path("/sensors/%d/data", sensorID), token, body)
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	var resp ingestResponse
	decode(a.t, w, &resp)
	return resp
}

func (a *testAPI) count(model interface{}, query string, args ...interface{}) int64 {
	a.t.Helper()
	var n int64
	require.NoError(a.t, a.db.Model(model).Where(query, args...).Count(&n).Error)
	return n
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}
