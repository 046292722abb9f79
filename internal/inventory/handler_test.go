package inventory_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/frahmantamala/inventory-tracker/internal"
	"github.com/frahmantamala/inventory-tracker/internal/core/item"
	coreUser "github.com/frahmantamala/inventory-tracker/internal/core/user"
	"github.com/frahmantamala/inventory-tracker/internal/inventory"
	inventoryPostgres "github.com/frahmantamala/inventory-tracker/internal/inventory/postgres"
	"github.com/frahmantamala/inventory-tracker/internal/transport"
	"github.com/frahmantamala/inventory-tracker/pkg/logger"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type staticCategories []string

func (s staticCategories) RecommendedNames(context.Context) ([]string, error) {
	return s, nil
}

var _ = Describe("Inventory Handler", func() {
	var (
		store   *inventory.Store
		handler *inventory.Handler
		hrItem  *item.InventoryItem
	)

	BeforeEach(func() {
		store = inventory.NewStore(inventoryPostgres.NewInventoryRepository(openTestDB()), logger.Discard())
		handler = inventory.NewHandler(transport.NewBaseHandler(logger.Discard()), store, staticCategories{"Hardware", "Software"})

		ctx := context.Background()
		_, err := store.AddItem(ctx, candidate("Laptop", coreUser.DepartmentIT, 12), admin)
		Expect(err).NotTo(HaveOccurred())
		hrItem, err = store.AddItem(ctx, inventory.CreateItemDTO{
			Name: "Handbooks", Description: "Printed", Department: coreUser.DepartmentHR,
			Quantity: 2, Category: "Documents", Location: "HR Office",
		}, admin)
		Expect(err).NotTo(HaveOccurred())
		_, err = store.AddItem(ctx, candidate("Badge Printer", coreUser.DepartmentHR, 0), admin)
		Expect(err).NotTo(HaveOccurred())
	})

	as := func(req *http.Request, u *coreUser.User) *http.Request {
		return req.WithContext(internal.ContextWithUser(req.Context(), u))
	}

	withID := func(req *http.Request, id string) *http.Request {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	list := func(u *coreUser.User, query string) inventory.ItemsResponse {
		w := httptest.NewRecorder()
		handler.ListItems(w, as(httptest.NewRequest(http.MethodGet, "/items"+query, nil), u))
		Expect(w.Code).To(Equal(http.StatusOK))
		var resp inventory.ItemsResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		return resp
	}

	It("lists only the requester's department", func() {
		resp := list(hrClerk, "")
		Expect(resp.Total).To(Equal(2))
		for _, it := range resp.Items {
			Expect(it.Department).To(Equal(coreUser.DepartmentHR))
		}
		Expect(list(admin, "").Total).To(Equal(3))
	})

	It("applies search and status filters on top of the scope", func() {
		Expect(list(hrClerk, "?search=hr+office").Items).To(HaveLen(1))
		Expect(list(admin, "?status=out-of-stock").Items[0].Name).To(Equal("Badge Printer"))
		Expect(list(admin, "?category=Documents").Total).To(Equal(1))
	})

	It("rejects unknown statuses", func() {
		w := httptest.NewRecorder()
		handler.ListItems(w, as(httptest.NewRequest(http.MethodGet, "/items?status=plenty", nil), admin))
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("hides items outside the requester's scope", func() {
		w := httptest.NewRecorder()
		handler.GetItem(w, withID(as(httptest.NewRequest(http.MethodGet, "/items/"+hrItem.ID, nil), salesViewer), hrItem.ID))
		Expect(w.Code).To(Equal(http.StatusNotFound))

		w = httptest.NewRecorder()
		handler.GetItem(w, withID(as(httptest.NewRequest(http.MethodGet, "/items/"+hrItem.ID, nil), hrClerk), hrItem.ID))
		Expect(w.Code).To(Equal(http.StatusOK))
	})

	It("creates items for the requester's department", func() {
		body, _ := json.Marshal(inventory.CreateItemDTO{
			Name: "Lanyards", Description: "Visitor lanyards", Department: coreUser.DepartmentHR,
			Quantity: 30, Category: "Supplies", Location: "Front desk",
		})
		w := httptest.NewRecorder()
		handler.CreateItem(w, as(httptest.NewRequest(http.MethodPost, "/items", bytes.NewReader(body)), hrClerk))
		Expect(w.Code).To(Equal(http.StatusCreated))

		var created item.InventoryItem
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
		Expect(created.Status).To(Equal(item.StatusAvailable))
		Expect(created.AddedBy).To(Equal(hrClerk.ID))
	})

	It("validates the candidate before touching the store", func() {
		body := []byte(`{"name":"","description":"x","department":"HR","quantity":-3,"category":"Supplies","location":"Desk"}`)
		w := httptest.NewRecorder()
		handler.CreateItem(w, as(httptest.NewRequest(http.MethodPost, "/items", bytes.NewReader(body)), hrClerk))
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(ContainSubstring("name is required"))
		Expect(list(admin, "").Total).To(Equal(3))
	})

	It("ignores a client supplied status", func() {
		body := []byte(`{"quantity":0}`)
		w := httptest.NewRecorder()
		handler.UpdateItem(w, withID(as(httptest.NewRequest(http.MethodPatch, "/items/"+hrItem.ID, bytes.NewReader(body)), admin), hrItem.ID))
		Expect(w.Code).To(Equal(http.StatusOK))

		body = []byte(`{"status":"available"}`)
		w = httptest.NewRecorder()
		handler.UpdateItem(w, withID(as(httptest.NewRequest(http.MethodPatch, "/items/"+hrItem.ID, bytes.NewReader(body)), admin), hrItem.ID))
		Expect(w.Code).To(Equal(http.StatusBadRequest))

		current, err := store.ItemByID(context.Background(), hrItem.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(current.Status).To(Equal(item.StatusOutOfStock))
	})

	It("answers 403 when the delete permission is missing", func() {
		w := httptest.NewRecorder()
		handler.DeleteItem(w, withID(as(httptest.NewRequest(http.MethodDelete, "/items/"+hrItem.ID, nil), hrClerk), hrItem.ID))
		Expect(w.Code).To(Equal(http.StatusForbidden))
	})

	It("prefills the add form", func() {
		w := httptest.NewRecorder()
		handler.FormDefaults(w, as(httptest.NewRequest(http.MethodGet, "/items/form-defaults", nil), hrClerk))
		Expect(w.Code).To(Equal(http.StatusOK))

		var defaults inventory.FormDefaults
		Expect(json.NewDecoder(w.Body).Decode(&defaults)).To(Succeed())
		Expect(defaults.Department).To(Equal(coreUser.DepartmentHR))
		Expect(defaults.DepartmentLocked).To(BeTrue())
		Expect(defaults.Departments).To(Equal([]coreUser.Department{coreUser.DepartmentHR}))
		Expect(defaults.RecommendedCategories).To(Equal([]string{"Hardware", "Software"}))

		w = httptest.NewRecorder()
		handler.FormDefaults(w, as(httptest.NewRequest(http.MethodGet, "/items/form-defaults", nil), admin))
		Expect(json.NewDecoder(w.Body).Decode(&defaults)).To(Succeed())
		Expect(defaults.Department).To(Equal(coreUser.DepartmentIT))
		Expect(defaults.Departments).To(HaveLen(6))
	})
})
