package session_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	coreUser "github.com/frahmantamala/inventory-tracker/internal/core/user"
	"github.com/frahmantamala/inventory-tracker/internal/session"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Client", func() {
	var (
		server *httptest.Server
		client *session.Client
		ctx    context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		mux := http.NewServeMux()
		mux.HandleFunc("/api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
			var creds map[string]string
			Expect(json.NewDecoder(r.Body).Decode(&creds)).To(Succeed())
			w.Header().Set("Content-Type", "application/json")
			if creds["password"] != "admin123" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":{"type":"UNAUTHORIZED","code":"INVALID_CREDENTIALS","message":"Invalid username or password"}}`))
				return
			}
			_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"Bearer","expires_at":"2030-01-01T00:00:00Z","user":{"id":"1","username":"admin","department":"IT","is_admin":true}}`))
		})
		mux.HandleFunc("/api/v1/auth/logout", func(w http.ResponseWriter, r *http.Request) {
			Expect(r.Header.Get("Authorization")).To(Equal("Bearer tok"))
			w.WriteHeader(http.StatusNoContent)
		})
		mux.HandleFunc("/api/v1/users/me", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"id":"1","username":"admin","department":"IT","is_admin":true}`))
		})
		server = httptest.NewServer(mux)
		client = session.NewClient(server.URL+"/", server.Client())
	})

	AfterEach(func() {
		server.Close()
	})

	It("returns the identity on a successful login", func() {
		identity, err := client.Login(ctx, "admin", "admin123")
		Expect(err).NotTo(HaveOccurred())
		Expect(identity.AccessToken).To(Equal("tok"))
		Expect(identity.User.Department).To(Equal(coreUser.DepartmentIT))
		Expect(identity.ExpiresAt.Year()).To(Equal(2030))
	})

	It("surfaces the server's error envelope", func() {
		_, err := client.Login(ctx, "admin", "wrong")

		var serverErr *session.ServerError
		Expect(errors.As(err, &serverErr)).To(BeTrue())
		Expect(serverErr.StatusCode).To(Equal(http.StatusUnauthorized))
		Expect(serverErr.Code).To(Equal("INVALID_CREDENTIALS"))
	})

	It("signs out with the bearer token", func() {
		Expect(client.Logout(ctx, "tok")).To(Succeed())
	})

	It("fetches the current user", func() {
		u, err := client.CurrentUser(ctx, "tok")
		Expect(err).NotTo(HaveOccurred())
		Expect(u.IsAdmin).To(BeTrue())
	})
})
