package internal_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/frahmantamala/inventory-tracker/internal"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("AppError", func() {
	Describe("errors.Is", func() {
		It("matches a freshly built error against the sentinel with the same code", func() {
			err := internal.NewForbiddenError("item belongs to HR", internal.ErrCodeOutOfScope)
			Expect(errors.Is(err, internal.ErrOutOfScope)).To(BeTrue())
			Expect(errors.Is(err, internal.ErrMissingPermission)).To(BeFalse())
		})

		It("matches every error of a kind against the kind sentinel", func() {
			Expect(errors.Is(internal.ErrOutOfScope, internal.ErrAuthorization)).To(BeTrue())
			Expect(errors.Is(internal.ErrMissingPermission, internal.ErrAuthorization)).To(BeTrue())
			Expect(errors.Is(internal.ErrItemNotFound, internal.ErrNotFound)).To(BeTrue())
			Expect(errors.Is(internal.ErrProtectedAdmin, internal.ErrProtectedResource)).To(BeTrue())
			Expect(errors.Is(internal.ErrNegativeQuantity, internal.ErrInvariantViolation)).To(BeTrue())
			Expect(errors.Is(internal.ErrItemNotFound, internal.ErrAuthorization)).To(BeFalse())
		})

		It("sees through fmt wrapping", func() {
			wrapped := fmt.Errorf("update item: %w", internal.ErrNegativeQuantity)
			Expect(errors.Is(wrapped, internal.ErrInvariantViolation)).To(BeTrue())
			Expect(internal.ErrorTypeOf(wrapped)).To(Equal(internal.ErrorTypeInvariant))
		})
	})

	Describe("WithCause", func() {
		It("does not mutate the sentinel", func() {
			cause := errors.New("disk full")
			err := internal.ErrItemNotFound.WithCause(cause)

			Expect(errors.Is(err, cause)).To(BeTrue())
			Expect(internal.ErrItemNotFound.Cause).To(BeNil())
			Expect(err.Error()).To(ContainSubstring("disk full"))
		})
	})

	Describe("ErrorTypeOf", func() {
		It("reports plain errors as internal", func() {
			Expect(internal.ErrorTypeOf(errors.New("boom"))).To(Equal(internal.ErrorTypeInternal))
		})
	})

	Describe("ToHTTPResponse", func() {
		It("maps the error onto its status and JSON envelope", func() {
			status, body := internal.ErrOutOfScope.ToHTTPResponse()
			Expect(status).To(Equal(http.StatusForbidden))

			raw, err := json.Marshal(body)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(raw)).To(MatchJSON(`{"error":{"type":"FORBIDDEN","code":"OUT_OF_SCOPE","message":"department is outside the requester's scope"}}`))
		})

		It("uses the first field message for validation errors", func() {
			err := internal.NewValidationFieldError("name", "name is required", internal.ErrCodeValidationFailed)
			Expect(err.Error()).To(Equal("name is required"))
			Expect(err.StatusCode).To(Equal(http.StatusBadRequest))
		})
	})
})
