package auth_test

import (
	"errors"

	"github.com/frahmantamala/inventory-tracker/internal"
	"github.com/frahmantamala/inventory-tracker/internal/auth"
	"github.com/frahmantamala/inventory-tracker/internal/core/item"
	coreUser "github.com/frahmantamala/inventory-tracker/internal/core/user"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func ids(items []*item.InventoryItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

var _ = Describe("Access scope", func() {
	var (
		admin   *coreUser.User
		hrClerk *coreUser.User
		viewer  *coreUser.User
		items   []*item.InventoryItem
	)

	BeforeEach(func() {
		admin = &coreUser.User{ID: "1", Department: coreUser.DepartmentIT, IsAdmin: true}
		hrClerk = &coreUser.User{
			ID:          "3",
			Department:  coreUser.DepartmentHR,
			Permissions: []coreUser.Permission{coreUser.PermissionView, coreUser.PermissionAdd},
		}
		viewer = &coreUser.User{
			ID:          "4",
			Department:  coreUser.DepartmentSales,
			Permissions: []coreUser.Permission{coreUser.PermissionView},
		}
		items = []*item.InventoryItem{
			{ID: "a", Department: coreUser.DepartmentIT},
			{ID: "b", Department: coreUser.DepartmentHR},
			{ID: "c", Department: coreUser.DepartmentIT},
			{ID: "d", Department: coreUser.DepartmentHR},
			{ID: "e", Department: coreUser.DepartmentSales},
		}
	})

	Describe("VisibleItems", func() {
		It("returns the whole collection to administrators", func() {
			Expect(ids(auth.VisibleItems(admin, items))).To(Equal([]string{"a", "b", "c", "d", "e"}))
		})

		It("keeps only the requester's department in original order", func() {
			Expect(ids(auth.VisibleItems(hrClerk, items))).To(Equal([]string{"b", "d"}))
		})

		It("returns nothing for an absent user", func() {
			Expect(auth.VisibleItems(nil, items)).To(BeEmpty())
		})

		It("returns an empty list when nothing matches", func() {
			support := &coreUser.User{ID: "5", Department: coreUser.DepartmentSupport}
			visible := auth.VisibleItems(support, items)
			Expect(visible).NotTo(BeNil())
			Expect(visible).To(BeEmpty())
		})

		It("is idempotent", func() {
			once := auth.VisibleItems(hrClerk, items)
			Expect(auth.VisibleItems(hrClerk, once)).To(Equal(once))
		})

		It("only ever returns items of the requester's department for non-admins", func() {
			for _, it := range auth.VisibleItems(viewer, items) {
				Expect(it.Department).To(Equal(viewer.Department))
			}
		})
	})

	Describe("CanPerform", func() {
		It("grants every action to administrators even with no stored permissions", func() {
			for _, p := range coreUser.Permissions {
				Expect(auth.CanPerform(admin, p)).To(BeTrue())
			}
		})

		DescribeTable("always grants view and uses stored permissions for the rest",
			func(stored []coreUser.Permission, action coreUser.Permission, expected bool) {
				u := &coreUser.User{ID: "9", Department: coreUser.DepartmentHR, Permissions: stored}
				Expect(auth.CanPerform(u, action)).To(Equal(expected))
			},
			Entry("view with view stored", []coreUser.Permission{coreUser.PermissionView, coreUser.PermissionAdd}, coreUser.PermissionView, true),
			Entry("add with add stored", []coreUser.Permission{coreUser.PermissionView, coreUser.PermissionAdd}, coreUser.PermissionAdd, true),
			Entry("edit without edit stored", []coreUser.Permission{coreUser.PermissionView, coreUser.PermissionAdd}, coreUser.PermissionEdit, false),
			Entry("delete without delete stored", []coreUser.Permission{coreUser.PermissionView, coreUser.PermissionAdd}, coreUser.PermissionDelete, false),
			Entry("view without view stored", []coreUser.Permission{coreUser.PermissionAdd}, coreUser.PermissionView, true),
			Entry("view with nothing stored", []coreUser.Permission{}, coreUser.PermissionView, true),
			Entry("add with nothing stored", []coreUser.Permission{}, coreUser.PermissionAdd, false),
		)

		It("denies an absent user", func() {
			Expect(auth.CanPerform(nil, coreUser.PermissionView)).To(BeFalse())
		})
	})

	Describe("DefaultDepartmentFor", func() {
		It("defaults administrators to IT", func() {
			admin.Department = coreUser.DepartmentHR
			Expect(auth.DefaultDepartmentFor(admin)).To(Equal(coreUser.DepartmentIT))
		})

		It("uses the user's own department otherwise", func() {
			Expect(auth.DefaultDepartmentFor(hrClerk)).To(Equal(coreUser.DepartmentHR))
		})
	})

	Describe("EffectivePermissions", func() {
		It("expands administrators to the full set", func() {
			Expect(auth.EffectivePermissions(admin)).To(Equal(coreUser.Permissions))
		})

		It("lists stored permissions in canonical order", func() {
			hrClerk.Permissions = []coreUser.Permission{coreUser.PermissionAdd, coreUser.PermissionView}
			Expect(auth.EffectivePermissions(hrClerk)).To(Equal([]coreUser.Permission{coreUser.PermissionView, coreUser.PermissionAdd}))
		})

		It("always includes view", func() {
			editor := &coreUser.User{ID: "7", Department: coreUser.DepartmentHR, Permissions: []coreUser.Permission{coreUser.PermissionEdit}}
			Expect(auth.EffectivePermissions(editor)).To(Equal([]coreUser.Permission{coreUser.PermissionView, coreUser.PermissionEdit}))

			empty := &coreUser.User{ID: "8", Department: coreUser.DepartmentHR}
			Expect(auth.EffectivePermissions(empty)).To(Equal([]coreUser.Permission{coreUser.PermissionView}))
		})
	})

	Describe("Authorize", func() {
		It("reports a missing permission before scope", func() {
			err := auth.Authorize(viewer, coreUser.PermissionEdit, coreUser.DepartmentHR)
			Expect(errors.Is(err, internal.ErrMissingPermission)).To(BeTrue())
			Expect(errors.Is(err, internal.ErrAuthorization)).To(BeTrue())
		})

		It("rejects departments outside the requester's scope", func() {
			err := auth.Authorize(hrClerk, coreUser.PermissionAdd, coreUser.DepartmentIT)
			Expect(errors.Is(err, internal.ErrOutOfScope)).To(BeTrue())
		})

		It("allows administrators everywhere", func() {
			Expect(auth.Authorize(admin, coreUser.PermissionDelete, coreUser.DepartmentElectric)).To(Succeed())
		})
	})
})
