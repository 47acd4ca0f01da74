package controllers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/LenaVoss/lenavoss-web/app/repository"
)

var (
	handlerMockOnce sync.Once
	handlerMock     sqlmock.Sqlmock
)

// handlerTestMock initializes the global repository factory against a
// sqlmock connection once and returns the shared mock. Handler tests
// queue their expectations on it sequentially.
func handlerTestMock(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	handlerMockOnce.Do(func() {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		if err != nil {
			panic(err)
		}
		gormDB, err := gorm.Open(mysql.New(mysql.Config{
			Conn:                      db,
			SkipInitializeWithVersion: true,
		}), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			panic(err)
		}
		repository.InitializeFactory(gormDB)
		handlerMock = mock
	})

	return handlerMock
}

func postForm(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func newSubscribeApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock) {
	mock := handlerTestMock(t)
	app := fiber.New()
	app.Post("/api/subscribe", HandleSubscribe)
	return app, mock
}

func TestSubscribeHoneypotPretendsSuccess(t *testing.T) {
	app, mock := newSubscribeApp(t)

	resp := postForm(t, app, "/api/subscribe",
		"email=bot@spam.test&_honey=gotcha&website=http://spam.example")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), `"success":true`)

	// Nothing reached the database.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscribeValidatesBeforeRateLimit(t *testing.T) {
	app, mock := newSubscribeApp(t)

	// More malformed submissions than the rate limit allows.
	for i := 0; i < 5; i++ {
		resp := postForm(t, app, "/api/subscribe", "email=not-an-address")
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	}

	// A valid signup from the same address still goes through.
	mock.ExpectQuery("SELECT .+ FROM `subscribers` WHERE email = .+").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `subscribers`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	resp := postForm(t, app, "/api/subscribe", "email=fan@example.com")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscribeReceiveEventAlertsField(t *testing.T) {
	app, mock := newSubscribeApp(t)

	mock.ExpectQuery("SELECT .+ FROM `subscribers` WHERE email = .+").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `subscribers`").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	resp := postForm(t, app, "/api/subscribe",
		"email=alerts-off@example.com&receiveEventAlerts=false")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), `"eventAlertsEnabled":false`)
	assert.NoError(t, mock.ExpectationsWereMet())
}
