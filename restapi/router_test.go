package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mycms/portfolio-backend/graphql"
	"github.com/mycms/portfolio-backend/internal/blobstore"
	"github.com/mycms/portfolio-backend/internal/common"
	"github.com/mycms/portfolio-backend/internal/render"
	"github.com/mycms/portfolio-backend/internal/services"
	"github.com/mycms/portfolio-backend/model"
)

const routerTestTemplate = `<html><body>
<h1>{{name}}</h1><p>{{bio}}</p>
<ul>{{skills}}</ul><ol>{{projects}}</ol>
</body></html>`

type memUsers struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func (m *memUsers) Find(_ context.Context, username string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[username]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, fmt.Errorf("user %s: %w", username, common.ErrNotFound)
}

func (m *memUsers) Create(_ context.Context, u *model.User) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.Username]; ok {
		return "", fmt.Errorf("user %s: %w", u.Username, common.ErrConflict)
	}
	u.Key = fmt.Sprintf("%d", len(m.users)+1)
	copied := *u
	m.users[u.Username] = &copied
	return u.Key, nil
}

func (m *memUsers) Update(_ context.Context, username string, patch model.UserPatch) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[username]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", username, common.ErrNotFound)
	}
	if patch.Realname != "" {
		u.Realname = patch.Realname
	}
	if patch.Bio != "" {
		u.Bio = patch.Bio
	}
	if patch.ProfilePic != "" {
		u.ProfilePic = patch.ProfilePic
	}
	copied := *u
	return &copied, nil
}

type memPortfolios struct {
	mu      sync.Mutex
	records []model.Portfolio
}

func (m *memPortfolios) Create(_ context.Context, p *model.Portfolio) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.Key = fmt.Sprintf("%d", len(m.records)+1)
	m.records = append(m.records, *p)
	return nil
}

func (m *memPortfolios) ListByOwner(_ context.Context, owner string) ([]model.Portfolio, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Portfolio{}
	for _, p := range m.records {
		if p.Username == owner {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *memPortfolios) Find(_ context.Context, filename string) (*model.Portfolio, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.records {
		if p.Filename == filename {
			found := p
			return &found, nil
		}
	}
	return nil, fmt.Errorf("portfolio %s: %w", filename, common.ErrNotFound)
}

func (m *memPortfolios) Delete(_ context.Context, filename string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.records[:0]
	for _, p := range m.records {
		if p.Filename != filename {
			kept = append(kept, p)
		}
	}
	m.records = kept
	return nil
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	templateDir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(templateDir, services.DefaultTemplate+".html"),
		[]byte(routerTestTemplate), 0o644))
	manifest := "templates:\n  - id: " + services.DefaultTemplate +
		"\n    file: " + services.DefaultTemplate + ".html\n    display_name: Journey\n"
	require.NoError(t, os.WriteFile(
		filepath.Join(templateDir, "templates.yaml"), []byte(manifest), 0o644))

	blobs, err := blobstore.NewLocalStore(t.TempDir(), "/files")
	require.NoError(t, err)

	usersRepo := &memUsers{users: map[string]*model.User{}}
	portfoliosRepo := &memPortfolios{}
	renderer := render.New(templateDir)
	logger := zap.NewNop().Sugar()

	schema, err := graphql.NewSchema(usersRepo, portfoliosRepo)
	require.NoError(t, err)

	app := fiber.New()
	SetupRoutes(app, Services{
		Portfolios: services.NewPortfolioService(portfoliosRepo, blobs, renderer, logger),
		Accounts:   services.NewAccountService(usersRepo, logger),
		Renderer:   renderer,
		Schema:     schema,
		UploadDir:  t.TempDir(),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	if len(raw) > 0 && strings.Contains(resp.Header.Get(fiber.HeaderContentType), "json") {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func signupBody() map[string]string {
	return map[string]string{
		"username":  "alice",
		"password":  "Abcdefg1",
		"realname":  "Alice Kim",
		"birthdate": "1995-03-02",
	}
}

func TestSignupEndpoint(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, fiber.MethodPost, "/users/signup", signupBody())
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Signup complete", body["message"])
	assert.NotEmpty(t, body["userId"])

	// Same username again conflicts.
	resp, body = doJSON(t, app, fiber.MethodPost, "/users/signup", signupBody())
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Username is already taken", body["message"])
}

func TestSignupEndpointRejectsWeakPassword(t *testing.T) {
	app := newTestApp(t)

	req := signupBody()
	req["password"] = "abcdefgh"
	resp, _ := doJSON(t, app, fiber.MethodPost, "/users/signup", req)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLoginEndpoint(t *testing.T) {
	app := newTestApp(t)
	_, _ = doJSON(t, app, fiber.MethodPost, "/users/signup", signupBody())

	resp, body := doJSON(t, app, fiber.MethodPost, "/users/login", map[string]string{
		"username": "alice", "password": "Abcdefg1",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Login successful", body["message"])

	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, "Alice Kim", user["realname"])
	assert.NotContains(t, user, "password")
}

func TestLoginEndpointBadCredentials(t *testing.T) {
	app := newTestApp(t)
	_, _ = doJSON(t, app, fiber.MethodPost, "/users/signup", signupBody())

	// Unknown user and wrong password get the identical response.
	for _, creds := range []map[string]string{
		{"username": "nobody", "password": "Abcdefg1"},
		{"username": "alice", "password": "Wrong999"},
	} {
		resp, body := doJSON(t, app, fiber.MethodPost, "/users/login", creds)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Invalid username or password", body["message"])
	}
}

func TestUpdateProfileEndpoint(t *testing.T) {
	app := newTestApp(t)
	_, _ = doJSON(t, app, fiber.MethodPost, "/users/signup", signupBody())

	resp, body := doJSON(t, app, fiber.MethodPut, "/api/users/alice", map[string]string{
		"bio": "hello there",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "hello there", body["bio"])
	assert.Equal(t, "Alice Kim", body["realname"])

	resp, _ = doJSON(t, app, fiber.MethodPut, "/api/users/nobody", map[string]string{
		"bio": "x",
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func createPortfolioBody() map[string]interface{} {
	return map[string]interface{}{
		"username": "alice",
		"name":     "Alice Kim",
		"bio":      "dev",
		"email":    "a@x.com",
		"skills":   []string{"go", "sql"},
		"projects": []string{"p1"},
	}
}

func TestPortfolioLifecycle(t *testing.T) {
	app := newTestApp(t)

	// Create
	resp, body := doJSON(t, app, fiber.MethodPost, "/api/portfolios", createPortfolioBody())
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Portfolio created", body["message"])

	link, ok := body["link"].(string)
	require.True(t, ok)
	assert.Contains(t, link, "/files/portfolios/")
	assert.Contains(t, link, "_Alice_Kim.html")
	filename := path.Base(link)

	// List
	req := httptest.NewRequest(fiber.MethodGet, "/api/portfolios?user=alice", nil)
	listResp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, listResp.StatusCode)

	var items []map[string]interface{}
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&items))
	require.Len(t, items, 1)
	assert.Equal(t, "Alice Kim", items[0]["title"])
	assert.Equal(t, filename, items[0]["filename"])
	assert.Equal(t, model.DefaultThumbnail, items[0]["thumbnail"])

	// Read raw HTML
	readResp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/portfolios/"+filename, nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, readResp.StatusCode)
	assert.Contains(t, readResp.Header.Get(fiber.HeaderContentType), "text/html")
	page, err := io.ReadAll(readResp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(page), "<h1>Alice Kim</h1>")

	// Update overwrites the stored page
	resp, _ = doJSON(t, app, fiber.MethodPut, "/api/portfolios/"+filename, map[string]string{
		"html": "<html><body>edited</body></html>",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	readResp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/api/portfolios/"+filename, nil), -1)
	require.NoError(t, err)
	page, err = io.ReadAll(readResp.Body)
	require.NoError(t, err)
	assert.Equal(t, "<html><body>edited</body></html>", string(page))

	// Delete, then the page is gone
	resp, _ = doJSON(t, app, fiber.MethodDelete, "/api/portfolios/"+filename, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	readResp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/api/portfolios/"+filename, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, readResp.StatusCode)
}

func TestPortfolioCreateEndpointValidation(t *testing.T) {
	app := newTestApp(t)

	body := createPortfolioBody()
	delete(body, "name")
	resp, decoded := doJSON(t, app, fiber.MethodPost, "/api/portfolios", body)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Required fields are missing", decoded["message"])
}

func TestPortfolioListRequiresUserParam(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/portfolios", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestTemplatesEndpoint(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/templates", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var templates []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&templates))
	require.Len(t, templates, 1)
	assert.Equal(t, services.DefaultTemplate, templates[0]["id"])
	assert.Equal(t, "Journey", templates[0]["display_name"])
}

func TestGraphQLEndpoint(t *testing.T) {
	app := newTestApp(t)
	_, _ = doJSON(t, app, fiber.MethodPost, "/users/signup", signupBody())
	_, _ = doJSON(t, app, fiber.MethodPost, "/api/portfolios", createPortfolioBody())

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/graphql", map[string]string{
		"query": `{ user(username: "alice") { username realname } portfolios(user: "alice") { title } }`,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotContains(t, body, "errors")

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)

	user := data["user"].(map[string]interface{})
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, "Alice Kim", user["realname"])

	list := data["portfolios"].([]interface{})
	require.Len(t, list, 1)
	assert.Equal(t, "Alice Kim", list[0].(map[string]interface{})["title"])
}

func TestGraphQLUnknownUserIsNull(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/graphql", map[string]string{
		"query": `{ user(username: "nobody") { username } }`,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.Nil(t, data["user"])
}

func TestUploadProfileEndpoint(t *testing.T) {
	app := newTestApp(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("profilePic", "me.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("not-really-a-png"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(fiber.MethodPost, "/upload-profile", &buf)
	req.Header.Set(fiber.HeaderContentType, writer.FormDataContentType())

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	url, ok := body["url"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.Contains(t, url, "me.png")
}

func TestUploadProfileEndpointMissingFile(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, fiber.MethodPost, "/upload-profile", map[string]string{})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "No file uploaded", body["message"])
}
