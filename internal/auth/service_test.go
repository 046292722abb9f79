package auth_test

import (
	"context"
	"errors"
	"time"

	"github.com/frahmantamala/inventory-tracker/internal"
	"github.com/frahmantamala/inventory-tracker/internal/auth"
	coreUser "github.com/frahmantamala/inventory-tracker/internal/core/user"
	"github.com/frahmantamala/inventory-tracker/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// mockUserRepository implements auth.UserRepository for testing
type mockUserRepository struct {
	byID          map[string]*coreUser.User
	returnError   bool
	errorToReturn error
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		byID: map[string]*coreUser.User{
			"1": {ID: "1", Username: "admin", Credential: "admin123", Department: coreUser.DepartmentIT, IsAdmin: true},
			"3": {
				ID:          "3",
				Username:    "hr.clerk",
				Credential:  "password",
				Department:  coreUser.DepartmentHR,
				Permissions: []coreUser.Permission{coreUser.PermissionView, coreUser.PermissionAdd},
			},
		},
	}
}

func (m *mockUserRepository) UserByUsername(_ context.Context, username string) (*coreUser.User, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	for _, u := range m.byID {
		if u.Username == username {
			return u.Clone(), nil
		}
	}
	return nil, internal.ErrUserNotFound
}

func (m *mockUserRepository) UserByID(_ context.Context, id string) (*coreUser.User, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	if u, ok := m.byID[id]; ok {
		return u.Clone(), nil
	}
	return nil, internal.ErrUserNotFound
}

var _ = Describe("Auth Service", func() {
	var (
		repo      *mockUserRepository
		generator *auth.JWTTokenGenerator
		service   *auth.Service
		ctx       context.Context
	)

	BeforeEach(func() {
		repo = newMockUserRepository()
		generator = auth.NewJWTTokenGenerator(internal.SecurityConfig{
			JWTSecret:           "test-secret-with-enough-length",
			JWTIssuer:           "inventory-tracker",
			AccessTokenDuration: time.Hour,
		})
		service = auth.NewService(repo, generator, logger.Discard())
		ctx = context.Background()
	})

	Describe("Authenticate", func() {
		It("issues a token for matching credentials", func() {
			session, err := service.Authenticate(ctx, auth.LoginDTO{Username: "hr.clerk", Password: "password"})
			Expect(err).NotTo(HaveOccurred())
			Expect(session.AccessToken).NotTo(BeEmpty())
			Expect(session.TokenType).To(Equal("Bearer"))
			Expect(session.User.ID).To(Equal("3"))
			Expect(session.ExpiresAt).To(BeTemporally("~", time.Now().Add(time.Hour), 5*time.Second))

			claims, err := service.ValidateAccessToken(session.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.UserID).To(Equal("3"))
			Expect(claims.Username).To(Equal("hr.clerk"))
		})

		It("rejects a wrong credential", func() {
			_, err := service.Authenticate(ctx, auth.LoginDTO{Username: "hr.clerk", Password: "nope"})
			Expect(errors.Is(err, internal.ErrInvalidCredentials)).To(BeTrue())
		})

		It("does not reveal unknown usernames", func() {
			_, err := service.Authenticate(ctx, auth.LoginDTO{Username: "ghost", Password: "password"})
			Expect(errors.Is(err, internal.ErrInvalidCredentials)).To(BeTrue())
		})

		It("validates the request", func() {
			_, err := service.Authenticate(ctx, auth.LoginDTO{Username: "", Password: ""})
			Expect(internal.ErrorTypeOf(err)).To(Equal(internal.ErrorTypeValidation))
		})

		It("propagates repository failures", func() {
			repo.returnError = true
			repo.errorToReturn = errors.New("database down")
			_, err := service.Authenticate(ctx, auth.LoginDTO{Username: "admin", Password: "admin123"})
			Expect(err).To(MatchError(ContainSubstring("database down")))
		})
	})

	Describe("ValidateAccessToken", func() {
		It("rejects tokens signed with another secret", func() {
			other := auth.NewJWTTokenGenerator(internal.SecurityConfig{
				JWTSecret:           "another-secret-entirely",
				JWTIssuer:           "inventory-tracker",
				AccessTokenDuration: time.Hour,
			})
			token, _, err := other.GenerateAccessToken("1", "admin")
			Expect(err).NotTo(HaveOccurred())

			_, err = service.ValidateAccessToken(token)
			Expect(errors.Is(err, internal.ErrInvalidToken)).To(BeTrue())
		})

		It("reports expired tokens", func() {
			expired := auth.NewJWTTokenGenerator(internal.SecurityConfig{
				JWTSecret:           "test-secret-with-enough-length",
				JWTIssuer:           "inventory-tracker",
				AccessTokenDuration: -time.Minute,
			})
			expired.AccessTokenTTL = -time.Minute
			token, _, err := expired.GenerateAccessToken("1", "admin")
			Expect(err).NotTo(HaveOccurred())

			_, err = service.ValidateAccessToken(token)
			Expect(errors.Is(err, internal.ErrTokenExpired)).To(BeTrue())
		})

		It("rejects garbage", func() {
			_, err := service.ValidateAccessToken("not-a-jwt")
			Expect(errors.Is(err, internal.ErrInvalidToken)).To(BeTrue())
		})
	})

	Describe("ResolveUser", func() {
		It("reloads the current state of the user", func() {
			repo.byID["3"].Department = coreUser.DepartmentSales
			u, err := service.ResolveUser(ctx, &auth.Claims{UserID: "3"})
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Department).To(Equal(coreUser.DepartmentSales))
		})

		It("invalidates tokens of deleted users", func() {
			_, err := service.ResolveUser(ctx, &auth.Claims{UserID: "99"})
			Expect(errors.Is(err, internal.ErrInvalidToken)).To(BeTrue())
		})
	})
})
