package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/frahmantamala/inventory-tracker/internal"
	"github.com/frahmantamala/inventory-tracker/internal/auth"
	coreUser "github.com/frahmantamala/inventory-tracker/internal/core/user"
	"github.com/frahmantamala/inventory-tracker/internal/transport"
	"github.com/frahmantamala/inventory-tracker/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Auth Handler", func() {
	var (
		handler *auth.Handler
		rbac    *auth.RBACAuthorization
		service *auth.Service
	)

	BeforeEach(func() {
		base := transport.NewBaseHandler(logger.Discard())
		generator := auth.NewJWTTokenGenerator(internal.SecurityConfig{
			JWTSecret:           "test-secret-with-enough-length",
			AccessTokenDuration: time.Hour,
		})
		service = auth.NewService(newMockUserRepository(), generator, logger.Discard())
		handler = auth.NewHandler(base, service)
		rbac = auth.NewRBACAuthorization(base)
	})

	login := func(username, password string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(auth.LoginDTO{Username: username, Password: password})
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
		w := httptest.NewRecorder()
		handler.Login(w, req)
		return w
	}

	It("returns a session without the credential", func() {
		w := login("admin", "admin123")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).NotTo(ContainSubstring("admin123"))

		var session auth.Session
		Expect(json.NewDecoder(w.Body).Decode(&session)).To(Succeed())
		Expect(session.User.Username).To(Equal("admin"))
		Expect(session.User.IsAdmin).To(BeTrue())
	})

	It("answers 401 for bad credentials", func() {
		w := login("admin", "wrong")
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(w.Body.String()).To(ContainSubstring("INVALID_CREDENTIALS"))
	})

	It("answers 400 for malformed bodies", func() {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString("{"))
		w := httptest.NewRecorder()
		handler.Login(w, req)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	Describe("AuthMiddleware and RBAC", func() {
		var (
			reached *coreUser.User
			chain   http.Handler
		)

		BeforeEach(func() {
			reached = nil
			final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached, _ = internal.UserFromContext(r.Context())
				w.WriteHeader(http.StatusNoContent)
			})
			chain = handler.AuthMiddleware(rbac.Middleware(coreUser.PermissionAdd)(final))
		})

		bearer := func(username, password string) string {
			var session auth.Session
			Expect(json.NewDecoder(login(username, password).Body).Decode(&session)).To(Succeed())
			return "Bearer " + session.AccessToken
		}

		It("requires a token", func() {
			w := httptest.NewRecorder()
			chain.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/items", nil))
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
			Expect(reached).To(BeNil())
		})

		It("places the resolved user in the context", func() {
			req := httptest.NewRequest(http.MethodPost, "/items", nil)
			req.Header.Set("Authorization", bearer("hr.clerk", "password"))
			w := httptest.NewRecorder()
			chain.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNoContent))
			Expect(reached).NotTo(BeNil())
			Expect(reached.ID).To(Equal("3"))
		})

		It("forbids users lacking the permission", func() {
			chain = handler.AuthMiddleware(rbac.Middleware(coreUser.PermissionDelete)(http.NotFoundHandler()))
			req := httptest.NewRequest(http.MethodDelete, "/items/x", nil)
			req.Header.Set("Authorization", bearer("hr.clerk", "password"))
			w := httptest.NewRecorder()
			chain.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusForbidden))
			Expect(w.Body.String()).To(ContainSubstring("INSUFFICIENT_PERMISSION"))
		})

		It("restricts admin routes", func() {
			chain = handler.AuthMiddleware(rbac.RequireAdmin()(http.NotFoundHandler()))
			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			req.Header.Set("Authorization", bearer("hr.clerk", "password"))
			w := httptest.NewRecorder()
			chain.ServeHTTP(w, req)
			Expect(w.Code).To(Equal(http.StatusForbidden))

			req.Header.Set("Authorization", bearer("admin", "admin123"))
			w = httptest.NewRecorder()
			chain.ServeHTTP(w, req)
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})
})
