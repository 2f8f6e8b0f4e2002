package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/loren166/foodgram-project-react/internal/api"
	"github.com/loren166/foodgram-project-react/internal/models"
	"github.com/loren166/foodgram-project-react/internal/router"
	"github.com/loren166/foodgram-project-react/internal/service"
	"github.com/loren166/foodgram-project-react/internal/testhelpers"
)

type testAPI struct {
	router *gin.Engine
	db     *gorm.DB
	auth   *service.AuthService
}

func setupTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.NewTestDB(t)
	authService := service.NewAuthService(db, "test-secret")
	storage := service.NewLocalImageStorage(t.TempDir(), "/media/")
	recipeService := service.NewRecipeService(db, storage)
	subscriptionService := service.NewSubscriptionService(db)

	engine := router.SetupRouter(
		api.NewUserHandler(db, authService, subscriptionService),
		api.NewRecipeHandler(db, recipeService, authService, nil),
		api.NewTagHandler(db),
		api.NewIngredientHandler(db),
	)
	return &testAPI{router: engine, db: db, auth: authService}
}

func (a *testAPI) tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := a.auth.GenerateToken(user)
	require.NoError(t, err)
	return token
}

func (a *testAPI) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
