package user_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/frahmantamala/inventory-tracker/internal"
	coreUser "github.com/frahmantamala/inventory-tracker/internal/core/user"
	"github.com/frahmantamala/inventory-tracker/internal/transport"
	"github.com/frahmantamala/inventory-tracker/internal/user"
	"github.com/frahmantamala/inventory-tracker/pkg/logger"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("User Handler", func() {
	var handler *user.Handler

	BeforeEach(func() {
		store, _ := newSeededStore()
		handler = user.NewHandler(transport.NewBaseHandler(logger.Discard()), store)
	})

	as := func(req *http.Request, u *coreUser.User) *http.Request {
		return req.WithContext(internal.ContextWithUser(req.Context(), u))
	}

	withID := func(req *http.Request, id string) *http.Request {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	It("returns the requester without the credential", func() {
		w := httptest.NewRecorder()
		handler.GetCurrentUser(w, as(httptest.NewRequest(http.MethodGet, "/users/me", nil), clerk))
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"username":"hr.clerk"`))
		Expect(w.Body.String()).NotTo(ContainSubstring("password"))
	})

	It("answers 401 without a requester", func() {
		w := httptest.NewRecorder()
		handler.GetCurrentUser(w, httptest.NewRequest(http.MethodGet, "/users/me", nil))
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})

	It("filters the user list", func() {
		w := httptest.NewRecorder()
		handler.ListUsers(w, as(httptest.NewRequest(http.MethodGet, "/users?search=clerk", nil), admin))
		Expect(w.Code).To(Equal(http.StatusOK))

		var resp user.UsersResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Total).To(Equal(1))
		Expect(resp.Users[0].ID).To(Equal(clerk.ID))
	})

	It("creates a user", func() {
		body := []byte(`{"username":"it.intern","name":"Ivy Intern","email":"ivy@example.com","department":"IT","permissions":["view"],"password":"pw"}`)
		w := httptest.NewRecorder()
		handler.CreateUser(w, as(httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body)), admin))
		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(w.Body.String()).NotTo(ContainSubstring(`"pw"`))
	})

	It("rejects an invalid email and a missing password", func() {
		body := []byte(`{"username":"x","name":"X","email":"not-an-email","permissions":["view"]}`)
		w := httptest.NewRecorder()
		handler.CreateUser(w, as(httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body)), admin))
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(ContainSubstring("email is invalid"))
		Expect(w.Body.String()).To(ContainSubstring("password is required"))
	})

	It("requires at least one known permission", func() {
		body := []byte(`{"username":"x","name":"X","email":"x@example.com","permissions":["fly"],"password":"pw"}`)
		w := httptest.NewRecorder()
		handler.CreateUser(w, as(httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body)), admin))
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(ContainSubstring("INVALID_PERMISSION"))
	})

	It("updates a user", func() {
		body := []byte(`{"name":"Harriet C."}`)
		w := httptest.NewRecorder()
		handler.UpdateUser(w, withID(as(httptest.NewRequest(http.MethodPatch, "/users/3", bytes.NewReader(body)), admin), clerk.ID))
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("Harriet C."))
	})

	It("reports the protected administrator as 403 to any caller", func() {
		for _, requester := range []*coreUser.User{admin, clerk} {
			w := httptest.NewRecorder()
			handler.DeleteUser(w, withID(as(httptest.NewRequest(http.MethodDelete, "/users/1", nil), requester), coreUser.SeedAdminID))
			Expect(w.Code).To(Equal(http.StatusForbidden))
			Expect(w.Body.String()).To(ContainSubstring("PROTECTED_ADMIN"))
		}
	})

	It("deletes other users", func() {
		w := httptest.NewRecorder()
		handler.DeleteUser(w, withID(as(httptest.NewRequest(http.MethodDelete, "/users/3", nil), admin), clerk.ID))
		Expect(w.Code).To(Equal(http.StatusNoContent))
	})
})
