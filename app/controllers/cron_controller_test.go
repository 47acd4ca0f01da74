package controllers

import (
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCronApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock) {
	mock := handlerTestMock(t)
	app := fiber.New()
	app.Get("/cron/event-reminders", HandleEventReminders)
	return app, mock
}

func TestEventRemindersQueriesTheSweepWindow(t *testing.T) {
	app, mock := newCronApp(t)

	mock.ExpectQuery("SELECT .+ FROM `events` WHERE .+is_active = .+ AND is_sold_out = .+ AND auto_reminder = .+").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "date"}))

	req := httptest.NewRequest(fiber.MethodGet, "/cron/event-reminders", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := readBody(t, resp)
	assert.Contains(t, body, `"processed":0`)
	assert.Contains(t, body, `"window_start"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}
