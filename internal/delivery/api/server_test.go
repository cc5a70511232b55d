package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"storerating/config"
	apimiddleware "storerating/internal/delivery/api/middleware"
	"storerating/internal/delivery/api/router"
	"storerating/internal/delivery/api/router/handler"
	deliverycontext "storerating/internal/delivery/context"
	"storerating/internal/infra/auth"
	"storerating/internal/infra/qrcode"
	"storerating/internal/infra/validation"
	mockRepo "storerating/internal/mocks/repository"
	"storerating/internal/usecase"
	"storerating/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"details"`
	} `json:"error"`
	Meta struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

type testAPI struct {
	t     *testing.T
	e     *echo.Echo
	admin usecase.AdminUsecase
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	cfg := &config.Config{
		Auth:             &config.AuthConfig{BcryptCost: bcrypt.MinCost},
		PasswordStrength: config.DefaultPasswordStrength(),
		Pagination:       &config.PaginationConfig{DefaultLimit: 10, MaxLimit: 100},
		Stores:           &config.StoresConfig{RequireOwnerRole: true},
	}
	cfg.SecretKey.Access = "api-test-secret"
	cfg.HTTP.MaxRequestBodySize = "2KB"

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db := mockRepo.NewMemoryStore()
	hasher := auth.NewBcryptHasher(cfg)
	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	v := validation.New()
	qr := qrcode.NewFromConfig(cfg)

	authUC := impl.NewAuthService(impl.AuthServiceParams{
		UserRepo: db.Users(), Hasher: hasher, TokenService: tokens, Validator: v, Logger: logger,
	})
	adminUC := impl.NewAdminService(impl.AdminServiceParams{
		TxManager: db, UserRepo: db.Users(), StoreRepo: db.Stores(), RatingRepo: db.Ratings(),
		Hasher: hasher, Validator: v, Config: cfg, Logger: logger,
	})
	storeUC := impl.NewStoreService(impl.StoreServiceParams{
		UserRepo: db.Users(), StoreRepo: db.Stores(), RatingRepo: db.Ratings(), Validator: v, Config: cfg, Logger: logger,
	})
	ratingUC := impl.NewRatingService(impl.RatingServiceParams{
		TxManager: db, StoreRepo: db.Stores(), RatingRepo: db.Ratings(), QRService: qr, Config: cfg, Logger: logger,
	})
	ownerUC := impl.NewStoreOwnerService(impl.StoreOwnerServiceParams{
		StoreRepo: db.Stores(), RatingRepo: db.Ratings(), QRService: qr, Logger: logger,
	})

	e := NewEcho(cfg, logger,
		apimiddleware.NewErrorMiddleware(apimiddleware.ErrorMiddlewareParams{Logger: logger}),
		router.RouterParams{
			AuthHandler:       handler.NewAuthHandler(handler.AuthHandlerParams{AuthUC: authUC, Logger: logger}),
			AdminHandler:      handler.NewAdminHandler(handler.AdminHandlerParams{AdminUC: adminUC, StoreUC: storeUC, Logger: logger}),
			StoreOwnerHandler: handler.NewStoreOwnerHandler(handler.StoreOwnerHandlerParams{StoreOwnerUC: ownerUC, Logger: logger}),
			UserHandler:       handler.NewUserHandler(handler.UserHandlerParams{RatingUC: ratingUC, Logger: logger}),
			AuthMiddleware:    apimiddleware.NewAuthMiddleware(apimiddleware.AuthMiddlewareParams{AuthUC: authUC}),
		},
	)

	return &testAPI{t: t, e: e, admin: adminUC}
}

func (a *testAPI) do(method, path, token, body string) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &env))
	}

	return rec, env
}

func (a *testAPI) login(email string) string {
	a.t.Helper()

	rec, env := a.do(http.MethodPost, "/auth/login", "", `{"email":"`+email+`","password":"Secret1!"}`)
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())

	var out struct {
		Token string `json:"token"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &out))

	return out.Token
}

func decodeID(t *testing.T, data json.RawMessage) int64 {
	t.Helper()

	var out struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(data, &out))
	require.NotZero(t, out.ID)

	return out.ID
}

func TestAPI_Health(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, "trace-123")
	rec := httptest.NewRecorder()
	api.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "trace-123", rec.Header().Get(deliverycontext.HeaderXRequestID))
	assert.JSONEq(t, `{"data":{"status":"ok"},"meta":{"request_id":"trace-123"}}`, rec.Body.String())
}

func TestAPI_RatingFlow(t *testing.T) {
	api := newTestAPI(t)
	ctx := context.Background()

	admin, err := api.admin.CreateUser(ctx, &usecase.CreateUserInput{
		Name: "System Admin", Email: "admin@example.com", Password: "Secret1!", Address: "HQ", Role: "ADMIN",
	})
	require.NoError(t, err)
	adminToken := api.login("admin@example.com")

	// Registration ignores a supplied role.
	rec, env := api.do(http.MethodPost, "/auth/register", "",
		`{"name":"Normal User","email":"user@example.com","password":"Secret1!","address":"1 Road","role":"ADMIN"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var registered struct {
		Token string `json:"token"`
		User  struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &registered))
	assert.Equal(t, "USER", registered.User.Role)
	assert.NotContains(t, rec.Body.String(), "password")
	userToken := registered.Token

	rec, env = api.do(http.MethodPost, "/admin/users", adminToken,
		`{"name":"Shop Owner","email":"owner@example.com","password":"Secret1!","address":"2 Road","role":"STORE_OWNER"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	ownerID := decodeID(t, env.Data)

	rec, env = api.do(http.MethodPost, "/admin/stores", adminToken,
		`{"name":"Short name","email":"shop@example.com","address":"3 Road","owner_id":`+strconv.FormatInt(ownerID, 10)+`}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
	require.Len(t, env.Error.Details, 1)
	assert.Equal(t, "name", env.Error.Details[0].Field)

	rec, env = api.do(http.MethodPost, "/admin/stores", adminToken,
		`{"name":"The Neighbourhood Grocery","email":"shop@example.com","address":"3 Road","owner_id":`+strconv.FormatInt(ownerID, 10)+`}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	storeID := decodeID(t, env.Data)
	ratingPath := "/user/stores/" + strconv.FormatInt(storeID, 10) + "/rating"

	rec, env = api.do(http.MethodPost, ratingPath, userToken, `{"rating":4}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var rated struct {
		Message string `json:"message"`
		Created bool   `json:"created"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &rated))
	assert.True(t, rated.Created)
	assert.Equal(t, "Rating submitted successfully", rated.Message)

	rec, env = api.do(http.MethodPost, ratingPath, userToken, `{"rating":5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &rated))
	assert.False(t, rated.Created)
	assert.Equal(t, "Rating updated successfully", rated.Message)

	rec, _ = api.do(http.MethodPost, ratingPath, userToken, `{"rating":4.5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = api.do(http.MethodPost, ratingPath, userToken, `{"rating":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_INPUT", env.Error.Code)

	rec, env = api.do(http.MethodPost, "/user/stores/99999/rating", userToken, `{"rating":9}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "STORE_NOT_FOUND", env.Error.Code)

	rec, env = api.do(http.MethodGet, "/user/stores?search=grocery", userToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var browsed struct {
		Items []struct {
			ID         int64   `json:"id"`
			AvgRating  float64 `json:"avgRating"`
			UserRating *int    `json:"userRating"`
		} `json:"items"`
		Pagination struct {
			TotalItems int64 `json:"totalItems"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &browsed))
	require.Len(t, browsed.Items, 1)
	assert.Equal(t, 5.0, browsed.Items[0].AvgRating)
	require.NotNil(t, browsed.Items[0].UserRating)
	assert.Equal(t, 5, *browsed.Items[0].UserRating)

	ownerToken := api.login("owner@example.com")
	rec, env = api.do(http.MethodGet, "/store-owner/dashboard", ownerToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var dash struct {
		Stats struct {
			TotalStores      int     `json:"totalStores"`
			TotalRatings     int64   `json:"totalRatings"`
			OverallAvgRating float64 `json:"overallAvgRating"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &dash))
	assert.Equal(t, 1, dash.Stats.TotalStores)
	assert.Equal(t, int64(1), dash.Stats.TotalRatings)
	assert.Equal(t, 5.0, dash.Stats.OverallAvgRating)

	rec, _ = api.do(http.MethodGet, "/store-owner/stores/"+strconv.FormatInt(storeID, 10)+"/qr", ownerToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, []byte("\x89PNG"), rec.Body.Bytes()[:4])

	rec, env = api.do(http.MethodGet, "/admin/dashboard", adminToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"totalUsers":3,"totalStores":1,"totalRatings":1}`, string(env.Data))

	rec, env = api.do(http.MethodDelete, "/admin/users/"+strconv.FormatInt(admin.ID, 10), adminToken, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_OPERATION", env.Error.Code)
}

func TestAPI_AccessControl(t *testing.T) {
	api := newTestAPI(t)

	rec, env := api.do(http.MethodPost, "/auth/register", "",
		`{"name":"Normal User","email":"user@example.com","password":"Secret1!","address":"1 Road"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var registered struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &registered))

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		status int
		code   string
	}{
		{name: "no token", method: http.MethodGet, path: "/admin/dashboard", status: http.StatusUnauthorized, code: "UNAUTHENTICATED"},
		{name: "bad token", method: http.MethodGet, path: "/auth/profile", token: "garbage", status: http.StatusUnauthorized, code: "INVALID_TOKEN"},
		{name: "user on admin route", method: http.MethodGet, path: "/admin/users", token: registered.Token, status: http.StatusForbidden, code: "FORBIDDEN"},
		{name: "user on owner route", method: http.MethodGet, path: "/store-owner/dashboard", token: registered.Token, status: http.StatusForbidden, code: "FORBIDDEN"},
		{name: "profile", method: http.MethodGet, path: "/auth/profile", token: registered.Token, status: http.StatusOK},
		{name: "verify", method: http.MethodGet, path: "/auth/verify", token: registered.Token, status: http.StatusOK},
		{name: "unknown auth path", method: http.MethodGet, path: "/auth/nope", status: http.StatusNotFound, code: "NOT_FOUND"},
		{name: "unknown admin path", method: http.MethodGet, path: "/admin/nope", status: http.StatusNotFound, code: "NOT_FOUND"},
		{name: "unknown user path with token", method: http.MethodGet, path: "/user/nope", token: registered.Token, status: http.StatusNotFound, code: "NOT_FOUND"},
		{name: "wrong method", method: http.MethodPost, path: "/admin/dashboard", status: http.StatusMethodNotAllowed, code: "METHOD_NOT_ALLOWED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := api.do(tt.method, tt.path, tt.token, "")

			assert.Equal(t, tt.status, rec.Code)
			if tt.code != "" {
				require.NotNil(t, env.Error)
				assert.Equal(t, tt.code, env.Error.Code)
				assert.Empty(t, env.Error.Details)
			}
		})
	}
}

func TestAPI_LoginFailuresMatch(t *testing.T) {
	api := newTestAPI(t)

	rec, _ := api.do(http.MethodPost, "/auth/register", "",
		`{"name":"Normal User","email":"user@example.com","password":"Secret1!","address":"1 Road"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	unknown, unknownEnv := api.do(http.MethodPost, "/auth/login", "", `{"email":"ghost@example.com","password":"Secret1!"}`)
	wrong, wrongEnv := api.do(http.MethodPost, "/auth/login", "", `{"email":"user@example.com","password":"Wrong1!!"}`)

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, unknown.Code, wrong.Code)
	assert.Equal(t, unknownEnv.Error, wrongEnv.Error)
}

func TestAPI_BodyLimit(t *testing.T) {
	api := newTestAPI(t)

	body := `{"name":"` + strings.Repeat("x", 4096) + `"}`
	rec, env := api.do(http.MethodPost, "/auth/register", "", body)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "PAYLOAD_TOO_LARGE", env.Error.Code)
}
