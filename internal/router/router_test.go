package router_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/bootcamp-directory/config"
	"github.com/oksasatya/bootcamp-directory/internal/container"
	"github.com/oksasatya/bootcamp-directory/internal/interface/middleware"
	"github.com/oksasatya/bootcamp-directory/internal/router"
	"github.com/oksasatya/bootcamp-directory/internal/testkit"
	"github.com/oksasatya/bootcamp-directory/pkg/helpers"
	"github.com/oksasatya/bootcamp-directory/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.Init()
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    json.RawMessage `json:"meta"`
	Error   struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

type api struct {
	t      *testing.T
	engine *gin.Engine
	files  *testkit.Files
	mail   *testkit.Mailbox
}

func newAPI(t *testing.T) *api {
	t.Helper()
	cfg := &config.Config{
		AppName:             "bootcamp-directory",
		Env:                 "test",
		JWTSecret:           "router-test-secret",
		JWTTTL:              time.Hour,
		MaxFileUpload:       1024,
		ResetPasswordURL:    "http://localhost/api/auth/resetpassword",
		DebugMetricsEnabled: true,
	}
	store := testkit.NewStore()
	a := &api{t: t, files: &testkit.Files{}, mail: &testkit.Mailbox{}}

	c := container.New(cfg, helpers.NopLogger())
	c.Users = store.Users()
	c.Bootcamps = store.Bootcamps()
	c.Courses = store.Courses()
	c.Reviews = store.Reviews()
	c.Mail = a.mail
	c.Files = a.files
	c.Index = &testkit.Index{}
	c.Geocoder = testkit.Geocoder{
		"02118": {Latitude: 42.3370, Longitude: -71.0736, FormattedAddress: "Boston, MA 02118"},
	}

	a.engine = gin.New()
	a.engine.Use(middleware.RequestIDMiddleware(), middleware.RealIP())
	reg := router.NewRegistry(a.engine)
	router.InitModules(reg, c)
	reg.RegisterAll()
	return a
}

func (a *api) do(method, path string, body any, cookie *http.Cookie) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return a.serve(req, cookie)
}

func (a *api) serve(req *http.Request, cookie *http.Cookie) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	var env envelope
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == helpers.SessionCookie {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", helpers.SessionCookie)
	return nil
}

func (a *api) register(name, email, role string) *http.Cookie {
	a.t.Helper()
	w, env := a.do(http.MethodPost, "/api/auth/register", map[string]any{
		"name": name, "email": email, "password": "123456", "role": role,
	}, nil)
	require.Equal(a.t, http.StatusCreated, w.Code, env.Message)
	return sessionCookie(a.t, w)
}

func (a *api) createBootcamp(cookie *http.Cookie, name string) string {
	a.t.Helper()
	w, env := a.do(http.MethodPost, "/api/bootcamps", map[string]any{
		"name":        name,
		"description": "Full stack web development",
		"address":     "233 Bay State Rd Boston MA 02215",
		"zipcode":     "02118",
		"careers":     []string{"Web Development"},
	}, cookie)
	require.Equal(a.t, http.StatusCreated, w.Code, env.Message)
	var b struct {
		ID string `json:"id"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &b))
	return b.ID
}

func TestRegisterLoginAndMe(t *testing.T) {
	a := newAPI(t)
	a.register("John Doe", "john@gmail.com", "user")

	w, env := a.do(http.MethodPost, "/api/auth/login", map[string]any{"email": "JOHN@gmail.com", "password": "123456"}, nil)
	require.Equal(t, http.StatusOK, w.Code, env.Message)
	cookie := sessionCookie(t, w)
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, cookie.Value)
	assert.NotContains(t, string(env.Data), "password")

	w, env = a.do(http.MethodGet, "/api/auth/me", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	var me struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, "john@gmail.com", me.Email)
	assert.Equal(t, "user", me.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	a := newAPI(t)
	a.register("John Doe", "john@gmail.com", "user")

	w, env := a.do(http.MethodPost, "/api/auth/login", map[string]any{"email": "john@gmail.com", "password": "nope"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHENTICATED", env.Error.Code)
}

func TestRegisterValidation(t *testing.T) {
	a := newAPI(t)

	w, env := a.do(http.MethodPost, "/api/auth/register", map[string]any{"name": "x", "email": "not-an-email", "password": "1"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION", env.Error.Code)
	assert.Contains(t, env.Error.Details, "email")
	assert.Contains(t, env.Error.Details, "password")
}

func TestUnauthenticatedResponsesAreIndistinguishable(t *testing.T) {
	a := newAPI(t)

	_, missing := a.do(http.MethodGet, "/api/auth/me", nil, nil)
	w, garbage := a.do(http.MethodGet, "/api/auth/me", nil, &http.Cookie{Name: helpers.SessionCookie, Value: "not.a.jwt"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, missing.Message, garbage.Message)
	assert.Equal(t, missing.Error.Code, garbage.Error.Code)
}

func TestRoleOutsideAllowedSetIsForbidden(t *testing.T) {
	a := newAPI(t)
	user := a.register("John Doe", "john@gmail.com", "user")

	w, env := a.do(http.MethodPost, "/api/bootcamps", map[string]any{
		"name": "Devworks", "description": "d", "address": "a", "zipcode": "02118", "careers": []string{"Other"},
	}, user)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)

	w, _ = a.do(http.MethodGet, "/api/users", nil, user)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPublisherGetsOneBootcamp(t *testing.T) {
	a := newAPI(t)
	pub := a.register("Jane Pub", "jane@gmail.com", "publisher")
	a.createBootcamp(pub, "Devworks Bootcamp")

	w, env := a.do(http.MethodPost, "/api/bootcamps", map[string]any{
		"name": "Second Bootcamp", "description": "d", "address": "a", "zipcode": "02118", "careers": []string{"Other"},
	}, pub)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CONFLICT", env.Error.Code)
}

func TestPublicBootcampListing(t *testing.T) {
	a := newAPI(t)
	pub := a.register("Jane Pub", "jane@gmail.com", "publisher")
	id := a.createBootcamp(pub, "Devworks Bootcamp")

	w, env := a.do(http.MethodGet, "/api/bootcamps", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":1}`, string(env.Meta))

	w, env = a.do(http.MethodGet, "/api/bootcamps/"+id, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"slug":"devworks-bootcamp"`)
	assert.Contains(t, string(env.Data), `"average_rating":null`)

	w, env = a.do(http.MethodGet, "/api/bootcamps/radius/02118/10", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":1}`, string(env.Meta))

	w, env = a.do(http.MethodGet, "/api/bootcamps/search?q=devworks", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":1}`, string(env.Meta))
}

func TestReviewsUpdateRatingAndRejectDuplicates(t *testing.T) {
	a := newAPI(t)
	pub := a.register("Jane Pub", "jane@gmail.com", "publisher")
	id := a.createBootcamp(pub, "Devworks Bootcamp")
	user := a.register("John Doe", "john@gmail.com", "user")

	review := map[string]any{"title": "Great", "text": "Learned a lot", "rating": 8}
	w, env := a.do(http.MethodPost, "/api/bootcamps/"+id+"/reviews", review, user)
	require.Equal(t, http.StatusCreated, w.Code, env.Message)

	w, env = a.do(http.MethodPost, "/api/bootcamps/"+id+"/reviews", review, user)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CONFLICT", env.Error.Code)

	w, env = a.do(http.MethodPost, "/api/bootcamps/"+id+"/reviews", review, pub)
	assert.Equal(t, http.StatusForbidden, w.Code)

	_, env = a.do(http.MethodGet, "/api/bootcamps/"+id, nil, nil)
	assert.Contains(t, string(env.Data), `"average_rating":8`)
}

func TestCoursesUpdateAverageCost(t *testing.T) {
	a := newAPI(t)
	pub := a.register("Jane Pub", "jane@gmail.com", "publisher")
	id := a.createBootcamp(pub, "Devworks Bootcamp")

	for _, tuition := range []float64{8000, 1001} {
		w, env := a.do(http.MethodPost, "/api/bootcamps/"+id+"/courses", map[string]any{
			"title": "Course", "description": "d", "weeks": 8, "tuition": tuition, "minimum_skill": "beginner",
		}, pub)
		require.Equal(t, http.StatusCreated, w.Code, env.Message)
	}

	_, env := a.do(http.MethodGet, "/api/bootcamps/"+id, nil, nil)
	assert.Contains(t, string(env.Data), `"average_cost":4510`)

	w, env := a.do(http.MethodGet, "/api/bootcamps/"+id+"/courses", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":2}`, string(env.Meta))
}

func photoRequest(t *testing.T, path, contentType string, body []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="file"; filename="Campus.JPG"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(body)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPut, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestPhotoUpload(t *testing.T) {
	a := newAPI(t)
	pub := a.register("Jane Pub", "jane@gmail.com", "publisher")
	id := a.createBootcamp(pub, "Devworks Bootcamp")

	w, env := a.serve(photoRequest(t, "/api/bootcamps/"+id+"/photo", "text/plain", []byte("hello")), pub)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION", env.Error.Code)

	w, env = a.serve(photoRequest(t, "/api/bootcamps/"+id+"/photo", "image/jpeg", []byte("jpeg bytes")), pub)
	require.Equal(t, http.StatusOK, w.Code, env.Message)
	assert.Contains(t, string(env.Data), `"photo":"/uploads/photo_`+id+`.jpg"`)
	assert.Equal(t, []byte("jpeg bytes"), a.files.Saved["photo_"+id+".jpg"])
}

func TestLogoutClearsCookie(t *testing.T) {
	a := newAPI(t)
	a.register("John Doe", "john@gmail.com", "user")

	w, env := a.do(http.MethodGet, "/api/auth/logout", nil, nil)
	require.Equal(t, http.StatusOK, w.Code, env.Message)
	c := sessionCookie(t, w)
	assert.Empty(t, c.Value)
	assert.True(t, c.MaxAge < 0)
}

func TestForgotPasswordSendsResetLink(t *testing.T) {
	a := newAPI(t)
	a.register("John Doe", "john@gmail.com", "user")

	w, env := a.do(http.MethodPost, "/api/auth/forgotpassword", map[string]any{"email": "john@gmail.com"}, nil)
	require.Equal(t, http.StatusOK, w.Code, env.Message)
	msg, ok := a.mail.Last()
	require.True(t, ok)
	assert.Equal(t, "john@gmail.com", msg.To)
	assert.Contains(t, msg.Text, "http://localhost/api/auth/resetpassword/")

	w, env = a.do(http.MethodPut, "/api/auth/resetpassword/deadbeef", map[string]any{"password": "654321"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_TOKEN", env.Error.Code)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	a := newAPI(t)

	w, _ := a.do(http.MethodPost, "/api/auth/register", map[string]any{
		"name": "Eve", "email": "eve@gmail.com", "password": "123456", "role": "admin",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDebugVarsOnlyFromPrivateNetwork(t *testing.T) {
	a := newAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/debug/vars", nil)
	req.RemoteAddr = "203.0.113.9:4000"
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/debug/vars", nil)
	req.RemoteAddr = "127.0.0.1:4000"
	w = httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "aggregator_recomputations")
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	a := newAPI(t)

	w, env := a.do(http.MethodGet, "/api/nope", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
}
