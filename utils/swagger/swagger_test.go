package swagger

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type SwaggerTestSuite struct {
	suite.Suite
	router *gin.Engine
}

func (suite *SwaggerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
}

func (suite *SwaggerTestSuite) serve(config SwaggerConfig) *httptest.ResponseRecorder {
	suite.router.GET("/swagger", ServeCleanSwagger(config))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/swagger", nil)
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *SwaggerTestSuite) TestServeCleanSwagger() {
	w := suite.serve(SwaggerConfig{
		Title:         "GrocerFlow Backend API",
		SwaggerDocURL: "/swagger/doc.json",
		AuthURL:       "/api/v1/auth/login",
	})

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), "text/html; charset=utf-8", w.Header().Get("Content-Type"))

	body := w.Body.String()
	assert.Contains(suite.T(), body, "<title>GrocerFlow Backend API</title>")
	assert.Contains(suite.T(), body, "url: '/swagger/doc.json'")
	assert.Contains(suite.T(), body, "window.AUTH_URL = '/api/v1/auth/login'")
}

func (suite *SwaggerTestSuite) TestDefaults() {
	w := suite.serve(SwaggerConfig{})

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(suite.T(), body, "<title>API Documentation</title>")
	assert.Contains(suite.T(), body, "url: '/swagger/doc.json'")
	assert.Contains(suite.T(), body, "window.AUTH_URL = '/api/v1/auth/login'")
}

func (suite *SwaggerTestSuite) TestLoginFormPostsEmailAndPassword() {
	w := suite.serve(SwaggerConfig{Title: "GrocerFlow Backend API"})

	body := w.Body.String()
	assert.Contains(suite.T(), body, `id="swagger-email"`)
	assert.Contains(suite.T(), body, `id="swagger-password"`)
	assert.Contains(suite.T(), body, "JSON.stringify({ email: email, password: password })")
	assert.Contains(suite.T(), body, `preauthorizeApiKey("BearerAuth", token)`)
}

func (suite *SwaggerTestSuite) TestSwaggerUIBootstrap() {
	w := suite.serve(SwaggerConfig{})

	body := w.Body.String()
	assert.Contains(suite.T(), body, "SwaggerUIBundle({")
	assert.Contains(suite.T(), body, `dom_id: '#swagger-ui'`)
	assert.Contains(suite.T(), body, "SwaggerUIStandalonePreset")
	assert.Contains(suite.T(), body, `layout: "StandaloneLayout"`)
}

func TestSwaggerTestSuite(t *testing.T) {
	suite.Run(t, new(SwaggerTestSuite))
}

func TestTitleEscaping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/swagger", ServeCleanSwagger(SwaggerConfig{Title: "Docs <script>alert(1)</script>"}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/swagger", nil)
	router.ServeHTTP(w, req)

	body := w.Body.String()
	assert.False(t, strings.Contains(body, "<script>alert(1)</script>"))
	assert.Contains(t, body, "&lt;script&gt;")
}
