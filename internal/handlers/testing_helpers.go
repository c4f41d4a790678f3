package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/labstack/echo/v4"
	"github.com/oklog/ulid/v2"
	"github.com/promojour/promojour/internal/auth"
	"github.com/promojour/promojour/storage"
	"github.com/promojour/promojour/storage/db"
)

// TestContext creates a new Echo context for testing
func NewTestContext(method, path string, body interface{}) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()

	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath(path)

	return c, rec
}

// SetTestUser sets a user in the Echo context for authenticated tests
func SetTestUser(c echo.Context, user *db.User) {
	c.Set(auth.DBUserKey, user)
	c.Set(auth.IsAuthenticatedKey, true)
}

// CreateTestOrganization creates an organization for tests
func CreateTestOrganization(queries *db.Queries) (*db.Organization, error) {
	org, err := queries.CreateOrganization(context.Background(), db.CreateOrganizationParams{
		ID:   ulid.Make().String(),
		Name: "Test Org",
		Plan: "starter",
	})
	return &org, err
}

// CreateTestUser creates a test user and its organization in the database
func CreateTestUser(queries *db.Queries) (*db.User, error) {
	org, err := CreateTestOrganization(queries)
	if err != nil {
		return nil, err
	}
	return CreateTestUserInOrganization(queries, org.ID, "test@example.com")
}

// CreateTestUserInOrganization creates a test user belonging to an organization
func CreateTestUserInOrganization(queries *db.Queries, orgID, email string) (*db.User, error) {
	user, err := queries.CreateUser(context.Background(), db.CreateUserParams{
		ID:             ulid.Make().String(),
		Email:          email,
		FullName:       "Test User",
		OrganizationID: orgID,
	})
	return &user, err
}

// NewTestDB creates a test database with migrations applied
func NewTestDB() (*sql.DB, *db.Queries, func()) {
	database, queries, cleanup, err := storage.NewTestDB()
	if err != nil {
		panic("failed to create test database: " + err.Error())
	}
	return database, queries, cleanup
}

// AssertJSONResponse checks if the response is valid JSON and returns the parsed body
func AssertJSONResponse(rec *httptest.ResponseRecorder) (map[string]interface{}, error) {
	var body map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		return nil, err
	}
	return body, nil
}
