package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhi1083/simple-crud-ops/internal/errs"
	"github.com/abhi1083/simple-crud-ops/internal/model"
	"github.com/abhi1083/simple-crud-ops/internal/repository"
	"github.com/abhi1083/simple-crud-ops/internal/service"
	"github.com/abhi1083/simple-crud-ops/internal/token"
)

type memUsers struct {
	byEmail map[string]*model.User
}

var _ repository.UserRepository = (*memUsers)(nil)

func (m *memUsers) Create(_ context.Context, u *model.User) error {
	if m.byEmail == nil {
		m.byEmail = map[string]*model.User{}
	}
	if _, exists := m.byEmail[u.Email]; exists {
		return errs.ErrAlreadyExists
	}
	cpy := *u
	m.byEmail[u.Email] = &cpy
	return nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *u
	return &c, nil
}

type memTemplates struct {
	byID map[uuid.UUID]*model.Template
}

var _ repository.TemplateRepository = (*memTemplates)(nil)

func (m *memTemplates) Create(_ context.Context, ownerID uuid.UUID, payload model.Payload) (uuid.UUID, error) {
	if m.byID == nil {
		m.byID = map[uuid.UUID]*model.Template{}
	}
	id := uuid.Must(uuid.NewV4())
	m.byID[id] = &model.Template{ID: id, OwnerID: ownerID, Payload: payload}
	return id, nil
}

func (m *memTemplates) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]model.TemplateSummary, error) {
	out := []model.TemplateSummary{}
	for _, t := range m.byID {
		if t.OwnerID == ownerID {
			out = append(out, model.TemplateSummary{ID: t.ID, Payload: t.Payload})
		}
	}
	return out, nil
}

func (m *memTemplates) Get(_ context.Context, ownerID, id uuid.UUID) (*model.Template, error) {
	t, ok := m.byID[id]
	if !ok || t.OwnerID != ownerID {
		return nil, errs.ErrNotFound
	}
	c := *t
	return &c, nil
}

func (m *memTemplates) Update(_ context.Context, ownerID, id uuid.UUID, partial model.Payload) error {
	t, ok := m.byID[id]
	if !ok || t.OwnerID != ownerID {
		return errs.ErrNotFound
	}
	for k, v := range partial {
		t.Payload[k] = v
	}
	return nil
}

func (m *memTemplates) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	t, ok := m.byID[id]
	if !ok || t.OwnerID != ownerID {
		return errs.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

// newTestRouter wires real services over in-memory repositories.
func newTestRouter(t *testing.T) (*gin.Engine, *token.Codec) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	codec := token.NewCodec([]byte("test-secret"))
	authSvc := service.NewAuthService(&memUsers{}, codec, time.Hour, bcrypt.MinCost)
	templateSvc := service.NewTemplateService(&memTemplates{})
	srv := New(authSvc, templateSvc, NewGuard(codec))
	return srv.Router(zap.NewNop()), codec
}

// doJSON performs a request with an optional bearer token and JSON body.
func doJSON(t *testing.T, router *gin.Engine, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals a JSON object response.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// registerAndLogin creates an account and returns its access token.
func registerAndLogin(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/register", "", map[string]string{
		"first_name": "Test", "last_name": "User", "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/login", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, w.Code)
	tok, _ := decodeBody(t, w)["token"].(string)
	require.NotEmpty(t, tok)
	return tok
}
