package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/promojour/promojour/storage/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSettingsDefaultToAllOff(t *testing.T) {
	_, queries, cleanup := NewTestDB()
	defer cleanup()

	user, err := CreateTestUser(queries)
	require.NoError(t, err)

	handler := NewStoresHandler(queries)

	c, rec := NewTestContext(http.MethodPost, "/api/stores", map[string]any{
		"name":      "Main Street",
		"is_active": true,
	})
	SetTestUser(c, user)
	require.NoError(t, handler.HandleCreate(c))
	var store db.Store
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &store))

	// No settings row yet: the store reads back as all platforms off.
	c, rec = NewTestContext(http.MethodGet, "/api/stores/:id/settings", nil)
	SetTestUser(c, user)
	c.SetParamNames("id")
	c.SetParamValues(store.ID)
	require.NoError(t, handler.HandleGetSettings(c))
	var settings db.StoreSetting
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &settings))
	assert.False(t, settings.AutoPublishFacebook)
	assert.False(t, settings.AutoPublishInstagram)

	c, rec = NewTestContext(http.MethodPut, "/api/stores/:id/settings", map[string]any{
		"auto_publish_facebook":  true,
		"auto_publish_instagram": false,
	})
	SetTestUser(c, user)
	c.SetParamNames("id")
	c.SetParamValues(store.ID)
	require.NoError(t, handler.HandleUpdateSettings(c))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &settings))
	assert.True(t, settings.AutoPublishFacebook)
	assert.False(t, settings.AutoPublishInstagram)
}

func TestStoreHistoryLimitValidation(t *testing.T) {
	_, queries, cleanup := NewTestDB()
	defer cleanup()

	user, err := CreateTestUser(queries)
	require.NoError(t, err)

	handler := NewStoresHandler(queries)

	c, rec := NewTestContext(http.MethodPost, "/api/stores", map[string]any{
		"name":      "Main Street",
		"is_active": true,
	})
	SetTestUser(c, user)
	require.NoError(t, handler.HandleCreate(c))
	var store db.Store
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &store))

	c, rec = NewTestContext(http.MethodGet, "/api/stores/:id/history?limit=10", nil)
	SetTestUser(c, user)
	c.SetParamNames("id")
	c.SetParamValues(store.ID)
	require.NoError(t, handler.HandleHistory(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, _ = NewTestContext(http.MethodGet, "/api/stores/:id/history?limit=0", nil)
	SetTestUser(c, user)
	c.SetParamNames("id")
	c.SetParamValues(store.ID)
	err = handler.HandleHistory(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}
