package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/frahmantamala/inventory-tracker/api"
	"github.com/frahmantamala/inventory-tracker/internal/transport/middleware"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("OpenAPIValidator", func() {
	var (
		handler http.Handler
		reached bool
	)

	BeforeEach(func() {
		doc, err := api.Load(context.Background())
		Expect(err).NotTo(HaveOccurred())

		validate, err := middleware.OpenAPIValidator(doc)
		Expect(err).NotTo(HaveOccurred())

		reached = false
		handler = validate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reached = true
			w.WriteHeader(http.StatusOK)
		}))
	})

	send := func(method, path, body string) *httptest.ResponseRecorder {
		var req *http.Request
		if body == "" {
			req = httptest.NewRequest(method, path, nil)
		} else {
			req = httptest.NewRequest(method, path, strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	It("passes a request that matches the contract", func() {
		rec := send(http.MethodPost, "/api/v1/items",
			`{"name":"Laptop","description":"14 inch","department":"IT","quantity":3,"category":"Hardware","location":"Room 1"}`)
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(reached).To(BeTrue())
	})

	It("rejects fields the contract does not allow", func() {
		rec := send(http.MethodPatch, "/api/v1/items/1", `{"status":"available"}`)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(rec.Body.String()).To(ContainSubstring("VALIDATION_FAILED"))
		Expect(reached).To(BeFalse())
	})

	It("rejects a body missing required fields", func() {
		rec := send(http.MethodPost, "/api/v1/auth/login", `{"username":"admin"}`)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(reached).To(BeFalse())
	})

	It("does not check credentials itself", func() {
		rec := send(http.MethodGet, "/api/v1/dashboard", "")
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(reached).To(BeTrue())
	})

	It("passes paths outside the contract through", func() {
		rec := send(http.MethodGet, "/swagger/index.html", "")
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(reached).To(BeTrue())
	})
})
