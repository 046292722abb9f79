package internal_test

import (
	"os"
	"time"

	"github.com/frahmantamala/inventory-tracker/internal"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Config", func() {
	It("ships a valid default configuration", func() {
		cfg := internal.DefaultConfig()
		Expect(cfg.Validate()).To(Succeed())
		Expect(cfg.Storage.Driver).To(Equal(internal.StorageDriverSQLite))
	})

	It("rejects unknown storage drivers", func() {
		cfg := internal.DefaultConfig()
		cfg.Storage.Driver = "mongo"
		Expect(cfg.Validate()).To(MatchError(ContainSubstring("unsupported driver")))
	})

	It("rejects short JWT secrets", func() {
		cfg := internal.DefaultConfig()
		cfg.Security.JWTSecret = "short"
		Expect(cfg.Validate()).To(MatchError(ContainSubstring("jwt_secret")))
	})

	It("requires an endpoint when tracing is enabled", func() {
		cfg := internal.DefaultConfig()
		cfg.Observability.Tracing.Enabled = true
		cfg.Observability.Tracing.Endpoint = ""
		Expect(cfg.Validate()).To(MatchError(ContainSubstring("tracing.endpoint")))
	})

	Describe("LoadConfigFromEnv", func() {
		BeforeEach(func() {
			os.Setenv("INVENTORY_HTTP_PORT", "9191")
			os.Setenv("INVENTORY_ACCESS_TOKEN_DURATION", "30m")
			os.Setenv("INVENTORY_TRACING_ENABLED", "true")
		})

		AfterEach(func() {
			os.Unsetenv("INVENTORY_HTTP_PORT")
			os.Unsetenv("INVENTORY_ACCESS_TOKEN_DURATION")
			os.Unsetenv("INVENTORY_TRACING_ENABLED")
		})

		It("overrides defaults from the environment", func() {
			cfg := internal.LoadConfigFromEnv()
			Expect(cfg.Server.Port).To(Equal(9191))
			Expect(cfg.Security.AccessTokenDuration).To(Equal(30 * time.Minute))
			Expect(cfg.Observability.Tracing.Enabled).To(BeTrue())
			Expect(cfg.Validate()).To(Succeed())
		})
	})
})
