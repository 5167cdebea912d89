package app

import (
	"context"
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata"

	"github.com/asaskevich/EventBus"
	"github.com/bwmarrin/snowflake"
	"github.com/robfig/cron/v3"
	"github.com/tkb-shop/storefront/config"
	"github.com/tkb-shop/storefront/internal/authstore"
	"github.com/tkb-shop/storefront/internal/cart"
	"github.com/tkb-shop/storefront/internal/catalog"
	"github.com/tkb-shop/storefront/internal/checkout"
	"github.com/tkb-shop/storefront/internal/favorites"
	"github.com/tkb-shop/storefront/internal/shopapi"
	"github.com/tkb-shop/storefront/internal/store"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Application owns the storefront's long-lived resources: the durable
// store, the signal bus, the backend client and the domain stores
// built on top of them.
type Application struct {
	appConfig *config.AppConfig
	kvstore   *store.Bolt
	session   *store.Memory
	bus       EventBus.Bus
	node      *snowflake.Node
	sched     *cron.Cron

	backend     *shopapi.Client
	catalogSvc  *catalog.Service
	cartStore   *cart.Store
	favStore    *favorites.Store
	authStore   *authstore.Store
	checkoutSvc *checkout.Service
}

// Ensure Application implements all interfaces
var _ AppContext = (*Application)(nil)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig       { return a.appConfig }
func (a *Application) Store() store.KV                 { return a.kvstore }
func (a *Application) Bus() EventBus.Bus               { return a.bus }
func (a *Application) Scheduler() *cron.Cron           { return a.sched }
func (a *Application) Catalog() *catalog.Service       { return a.catalogSvc }
func (a *Application) Cart() *cart.Store               { return a.cartStore }
func (a *Application) Favorites() *favorites.Store     { return a.favStore }
func (a *Application) Auth() *authstore.Store          { return a.authStore }
func (a *Application) Checkout() *checkout.Service     { return a.checkoutSvc }
func (a *Application) Backend() *shopapi.Client        { return a.backend }

func (a *Application) Init(cfg *config.AppConfig) error {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	// Initialize zap logger
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.OutputPaths = []string{"stdout"}

	// Build logger with file rotation if enabled
	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	} else {
		logger, err = zapConfig.Build(zap.AddCaller(), zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
	}
	zap.ReplaceGlobals(logger)

	cfg.InitDirs()

	// Durable client-state store
	a.kvstore, err = store.OpenBolt(filepath.Join(cfg.System.Workdir, "data", "storefront.db"))
	if err != nil {
		return err
	}
	a.session = store.NewMemory()

	a.node, err = snowflake.NewNode(1)
	if err != nil {
		return err
	}
	a.bus = EventBus.New()

	a.authStore = authstore.New(a.kvstore, a.session)
	a.backend = shopapi.NewClient(
		cfg.Backend.BaseURL,
		time.Duration(cfg.Backend.Timeout)*time.Second,
		a.authStore.StoredToken,
	)
	a.catalogSvc = catalog.NewService(a.backend)
	a.cartStore = cart.New(a.kvstore, a.bus)
	a.favStore = favorites.New(a.kvstore, a.bus)
	a.checkoutSvc = checkout.NewService(
		a.cartStore, a.backend, a.kvstore, a.bus, a.node,
		cfg.Checkout.FreeShippingOver, cfg.Checkout.ShippingFee,
	)

	a.initJobs()

	zap.S().Infof("storefront initialized, backend=%s workdir=%s",
		cfg.Backend.BaseURL, cfg.System.Workdir)
	return nil
}

// initJobs wires the cron scheduler: the catalog snapshot refresh and
// the startup warm-up fetch.
func (a *Application) initJobs() {
	a.sched = cron.New()
	spec := a.appConfig.Catalog.RefreshSpec
	if spec == "" {
		spec = "@every 10m"
	}
	_, err := a.sched.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := a.catalogSvc.Refresh(ctx); err != nil {
			zap.S().Warnf("catalog refresh job: %v", err)
		}
	})
	if err != nil {
		zap.S().Errorf("bad catalog refresh spec %q: %v", spec, err)
	}
}

// StartBackgroundJobs warms the catalog cache and starts the cron
// scheduler.
func (a *Application) StartBackgroundJobs(ctx context.Context) {
	go func() {
		warmCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := a.catalogSvc.Refresh(warmCtx); err != nil {
			zap.S().Warnf("initial catalog fetch failed: %v", err)
		}
	}()
	a.sched.Start()
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}
	if a.kvstore != nil {
		_ = a.kvstore.Close()
	}
	_ = zap.L().Sync()
}
