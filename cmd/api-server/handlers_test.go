package main

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/protomem/people-registry/internal/auth"
	"github.com/protomem/people-registry/internal/metrics"
	"github.com/protomem/people-registry/internal/model"
	"github.com/protomem/people-registry/internal/service"
	"github.com/protomem/people-registry/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const _testSecret = "test-secret-with-at-least-32-bytes!!"

type HandlerSuite struct {
	suite.Suite

	ctrl       *gomock.Controller
	people     *mocks.MockPersonStore
	users      *mocks.MockUserStore
	hasher     *mocks.MockPasswordHasher
	normalizer *mocks.MockPhotoNormalizer

	app     *application
	handler http.Handler

	managerToken string
	userToken    string
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.people = mocks.NewMockPersonStore(s.ctrl)
	s.users = mocks.NewMockUserStore(s.ctrl)
	s.hasher = mocks.NewMockPasswordHasher(s.ctrl)
	s.normalizer = mocks.NewMockPhotoNormalizer(s.ctrl)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tokens, err := auth.NewIssuer(auth.IssuerConfig{
		Secret:   _testSecret,
		Issuer:   "people-registry",
		Audience: "people-registry",
		TTL:      time.Hour,
	})
	s.Require().NoError(err)

	m := metrics.New()
	s.app = &application{
		logger:  logger,
		metrics: m,
		tokens:  tokens,
		people: service.NewPersonService(service.PersonServiceArgs{
			Logger:     logger,
			Store:      s.people,
			Normalizer: s.normalizer,
			Metrics:    m,
		}),
		users: service.NewUserService(service.UserServiceArgs{
			Logger:  logger,
			Store:   s.users,
			Hasher:  s.hasher,
			Metrics: m,
		}),
		auth: service.NewAuthService(service.AuthServiceArgs{
			Logger:  logger,
			Users:   s.users,
			Hasher:  s.hasher,
			Issuer:  tokens,
			Metrics: m,
		}),
	}
	s.handler = s.app.routes()

	s.managerToken = s.issue(tokens, model.RoleManager)
	s.userToken = s.issue(tokens, model.RoleUser)
}

func (s *HandlerSuite) issue(tokens *auth.Issuer, role model.Role) string {
	token, err := tokens.Issue(model.User{ID: uuid.New(), Username: "conta" + string(role), Role: role})
	s.Require().NoError(err)
	return token.AccessToken
}

func (s *HandlerSuite) do(method, target, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func (s *HandlerSuite) TestStatus() {
	rec := s.do(http.MethodGet, "/api/v1/status", "", "")

	s.Equal(http.StatusOK, rec.Code)
	s.NotEmpty(rec.Header().Get("X-Trace-Id"))
	s.Equal("OK", decodeBody[map[string]string](s.T(), rec)["status"])
}

func (s *HandlerSuite) TestUnknownRoute() {
	rec := s.do(http.MethodGet, "/api/v1/nothing", s.managerToken, "")
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *HandlerSuite) TestAuthentication() {
	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing token", header: "", want: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not-a-jwt", want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz", want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/people", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			s.handler.ServeHTTP(rec, req)

			s.Equal(tt.want, rec.Code)
			s.Equal("Bearer", rec.Header().Get("WWW-Authenticate"))
		})
	}
}

func (s *HandlerSuite) TestTokenSignedWithOtherKeyIsRejected() {
	other, err := auth.NewIssuer(auth.IssuerConfig{
		Secret:   strings.Repeat("x", auth.MinSecretLength),
		Issuer:   "people-registry",
		Audience: "people-registry",
	})
	s.Require().NoError(err)

	rec := s.do(http.MethodGet, "/api/v1/people", s.issue(other, model.RoleManager), "")
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *HandlerSuite) TestUserRoleCannotWrite() {
	for _, tc := range []struct{ method, target string }{
		{http.MethodPost, "/api/v1/people"},
		{http.MethodPut, "/api/v1/people/" + uuid.NewString()},
		{http.MethodDelete, "/api/v1/people/" + uuid.NewString()},
		{http.MethodPost, "/api/v1/users"},
		{http.MethodDelete, "/api/v1/users/" + uuid.NewString()},
	} {
		rec := s.do(tc.method, tc.target, s.userToken, `{}`)
		s.Equal(http.StatusForbidden, rec.Code, tc.method+" "+tc.target)
	}
}

func (s *HandlerSuite) TestListPeople_Empty() {
	s.people.EXPECT().Find(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	rec := s.do(http.MethodGet, "/api/v1/people?cpf=000.000.000-00", s.userToken, "")

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`[]`, rec.Body.String())
}

func (s *HandlerSuite) TestListPeople_BadQuery() {
	for _, query := range []string{"pageSize=500", "pageNumber=0", "pageNumber=abc", "pageNumber=4611686018427387905&pageSize=4", "birthDate=01/02/1990"} {
		rec := s.do(http.MethodGet, "/api/v1/people?"+query, s.userToken, "")
		s.Equal(http.StatusBadRequest, rec.Code, query)
	}
}

func (s *HandlerSuite) TestCreatePerson_ValidationFailure() {
	s.people.EXPECT().GetByCPF(gomock.Any(), "11144477735").Return(model.Person{}, model.NewError("person", model.ErrNotFound))

	body := `{"firstName":"Al","lastName":"Souza","cpf":"111.444.777-35","birthDate":"1990-05-17","sex":"Male"}`
	rec := s.do(http.MethodPost, "/api/v1/people", s.managerToken, body)

	s.Equal(http.StatusConflict, rec.Code)
	got := decodeBody[struct {
		Details     []string          `json:"details"`
		FieldErrors map[string]string `json:"fieldErrors"`
	}](s.T(), rec)
	s.Len(got.Details, 1)
	s.Contains(got.FieldErrors, "firstName")
}

func (s *HandlerSuite) TestCreatePerson_Duplicate() {
	s.people.EXPECT().GetByCPF(gomock.Any(), "11144477735").Return(model.Person{}, nil)

	body := `{"firstName":"Maria","lastName":"Souza","cpf":"11144477735","birthDate":"1990-05-17","sex":"Female"}`
	rec := s.do(http.MethodPost, "/api/v1/people", s.managerToken, body)

	s.Equal(http.StatusConflict, rec.Code)
}

func (s *HandlerSuite) TestCreatePerson_PhotoFailure() {
	s.people.EXPECT().GetByCPF(gomock.Any(), "11144477735").Return(model.Person{}, model.NewError("person", model.ErrNotFound))
	s.normalizer.EXPECT().Normalize([]byte("not an image")).Return(nil, errors.New("unknown format"))

	body := `{"firstName":"Maria","lastName":"Souza","cpf":"11144477735","birthDate":"1990-05-17","sex":"Female","photo":"bm90IGFuIGltYWdl"}`
	rec := s.do(http.MethodPost, "/api/v1/people", s.managerToken, body)

	s.Equal(http.StatusUnprocessableEntity, rec.Code)
}

func (s *HandlerSuite) TestCreatePerson_Success() {
	s.people.EXPECT().GetByCPF(gomock.Any(), "11144477735").Return(model.Person{}, model.NewError("person", model.ErrNotFound))
	s.people.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

	body := `{"firstName":"Maria","lastName":"Souza","cpf":"111.444.777-35","birthDate":"1990-05-17","sex":"Female"}`
	rec := s.do(http.MethodPost, "/api/v1/people", s.managerToken, body)

	s.Require().Equal(http.StatusOK, rec.Code)
	got := decodeBody[map[string]any](s.T(), rec)
	s.Equal("11144477735", got["cpf"])
	s.Equal("1990-05-17", got["birthDate"])
	s.NotContains(got, "photo")
}

func (s *HandlerSuite) TestCreatePerson_MalformedBody() {
	rec := s.do(http.MethodPost, "/api/v1/people", s.managerToken, `{"firstName":`)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/people", s.managerToken, `{"nickname":"x"}`)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestGetPerson() {
	id := uuid.New()

	s.Run("bad id", func() {
		rec := s.do(http.MethodGet, "/api/v1/people/42", s.userToken, "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("not found", func() {
		s.people.EXPECT().Get(gomock.Any(), id).Return(model.Person{}, model.NewError("person", model.ErrNotFound))

		rec := s.do(http.MethodGet, "/api/v1/people/"+id.String(), s.userToken, "")
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *HandlerSuite) TestActivePhoto_NotFound() {
	id := uuid.New()
	s.people.EXPECT().ActivePhoto(gomock.Any(), id).Return(model.PhotoHistoryEntry{}, model.NewError("photo", model.ErrNotFound))

	rec := s.do(http.MethodGet, "/api/v1/people/"+id.String()+"/photo", s.userToken, "")
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *HandlerSuite) TestDeleteUser_NotFound() {
	id := uuid.New()
	s.users.EXPECT().Delete(gomock.Any(), id).Return(model.NewError("user", model.ErrNotFound))

	rec := s.do(http.MethodDelete, "/api/v1/users/"+id.String(), s.managerToken, "")
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *HandlerSuite) TestGetUser_HidesPasswordHash() {
	user := model.User{ID: uuid.New(), Username: "gerente", PasswordHash: "$argon2id$secret", Role: model.RoleManager}
	s.users.EXPECT().Get(gomock.Any(), user.ID).Return(user, nil)

	rec := s.do(http.MethodGet, "/api/v1/users/"+user.ID.String(), s.userToken, "")

	s.Equal(http.StatusOK, rec.Code)
	s.NotContains(rec.Body.String(), "argon2id")
}

func (s *HandlerSuite) TestLogin() {
	user := model.User{ID: uuid.New(), Username: "gerente", PasswordHash: "hash", Role: model.RoleManager}

	s.Run("valid credentials", func() {
		s.users.EXPECT().GetByUsername(gomock.Any(), "gerente").Return(user, nil)
		s.hasher.EXPECT().Verify("senha1234", "hash").Return(true, nil)

		rec := s.do(http.MethodPost, "/api/v1/auth/login", "", `{"username":"gerente","password":"senha1234"}`)
		s.Require().Equal(http.StatusOK, rec.Code)

		token := decodeBody[auth.Token](s.T(), rec)
		claims, err := s.app.tokens.Verify(token.AccessToken)
		s.Require().NoError(err)
		s.Equal(model.RoleManager, claims.Role)
		s.Equal("gerente", claims.Username)
	})

	s.Run("wrong password", func() {
		s.users.EXPECT().GetByUsername(gomock.Any(), "gerente").Return(user, nil)
		s.hasher.EXPECT().Verify("errada123", "hash").Return(false, nil)

		rec := s.do(http.MethodPost, "/api/v1/auth/login", "", `{"username":"gerente","password":"errada123"}`)
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("missing fields", func() {
		rec := s.do(http.MethodPost, "/api/v1/auth/login", "", `{"username":"gerente"}`)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *HandlerSuite) TestMetricsEndpoint() {
	s.do(http.MethodGet, "/api/v1/status", "", "")

	rec := s.do(http.MethodGet, "/metrics", "", "")

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `route="/api/v1/status"`)
}

func TestHandleServiceError(t *testing.T) {
	app := &application{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "exists", err: model.NewError("person", model.ErrExists), want: http.StatusConflict},
		{name: "not found", err: model.NewError("user", model.ErrNotFound), want: http.StatusNotFound},
		{name: "photo", err: service.ErrPhoto, want: http.StatusUnprocessableEntity},
		{name: "credentials", err: service.ErrInvalidCredentials, want: http.StatusUnauthorized},
		{name: "unexpected", err: errors.New("connection reset"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			app.handleServiceError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
