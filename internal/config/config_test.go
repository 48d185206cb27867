package config_test

import (
	"testing"

	"github.com/okian/stagebook/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.StoreDriver, convey.ShouldEqual, config.StoreMemory)
			convey.So(cfg.BudgetPolicy, convey.ShouldEqual, config.BudgetCoerce)
			convey.So(cfg.Locale, convey.ShouldEqual, "en")
			convey.So(cfg.NotifyQueueSize, convey.ShouldEqual, 1_000)
			convey.So(cfg.NotifyRecentSize, convey.ShouldEqual, 50)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
