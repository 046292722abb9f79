package category_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/frahmantamala/inventory-tracker/internal"
	"github.com/frahmantamala/inventory-tracker/internal/auth"
	"github.com/frahmantamala/inventory-tracker/internal/category"
	categoryPostgres "github.com/frahmantamala/inventory-tracker/internal/category/postgres"
	categoryDatamodel "github.com/frahmantamala/inventory-tracker/internal/core/datamodel/category"
	"github.com/frahmantamala/inventory-tracker/internal/core/item"
	coreUser "github.com/frahmantamala/inventory-tracker/internal/core/user"
	"github.com/frahmantamala/inventory-tracker/internal/transport"
	"github.com/frahmantamala/inventory-tracker/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

type fixedItems []*item.InventoryItem

func (f fixedItems) VisibleItems(_ context.Context, requester *coreUser.User) ([]*item.InventoryItem, error) {
	return auth.VisibleItems(requester, f), nil
}

var _ = Describe("Category Handler Integration", func() {
	var handler *category.Handler

	BeforeEach(func() {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)
		Expect(db.AutoMigrate(&categoryDatamodel.InventoryCategory{})).To(Succeed())

		repo := categoryPostgres.NewCategoryRepository(db)
		for i, name := range category.Recommended {
			Expect(repo.Create(context.Background(), category.ToDataModel(category.NewCategory(name, name+" items", i)))).To(Succeed())
		}

		items := fixedItems{
			{ID: "1", Department: coreUser.DepartmentIT, Category: "Hardware"},
			{ID: "2", Department: coreUser.DepartmentHR, Category: "Documents"},
			{ID: "3", Department: coreUser.DepartmentIT, Category: "Software"},
			{ID: "4", Department: coreUser.DepartmentHR, Category: "Hardware"},
		}
		handler = category.NewHandler(transport.NewBaseHandler(logger.Discard()), category.NewService(repo, logger.Discard()), items)
	})

	It("should handle GET /categories in catalogue order", func() {
		w := httptest.NewRecorder()
		handler.GetCategories(w, httptest.NewRequest(http.MethodGet, "/categories", nil))

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

		var response category.CategoriesResponse
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response.Categories).To(HaveLen(len(category.Recommended)))
		Expect(response.Categories[0].Name).To(Equal("Hardware"))
		Expect(response.Categories[9].Name).To(Equal("Other"))
	})

	It("should list the categories in use within the requester's scope", func() {
		hrClerk := &coreUser.User{ID: "3", Department: coreUser.DepartmentHR, Permissions: []coreUser.Permission{coreUser.PermissionView}}
		req := httptest.NewRequest(http.MethodGet, "/categories/in-use", nil)
		req = req.WithContext(internal.ContextWithUser(req.Context(), hrClerk))

		w := httptest.NewRecorder()
		handler.GetCategoriesInUse(w, req)
		Expect(w.Code).To(Equal(http.StatusOK))

		var response category.InUseResponse
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response.Categories).To(Equal([]string{"Documents", "Hardware"}))
	})

	It("should require a requester for the in-use list", func() {
		w := httptest.NewRecorder()
		handler.GetCategoriesInUse(w, httptest.NewRequest(http.MethodGet, "/categories/in-use", nil))
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})
})
