package app

import (
	"github.com/asaskevich/EventBus"
	"github.com/robfig/cron/v3"
	"github.com/tkb-shop/storefront/config"
	"github.com/tkb-shop/storefront/internal/authstore"
	"github.com/tkb-shop/storefront/internal/cart"
	"github.com/tkb-shop/storefront/internal/catalog"
	"github.com/tkb-shop/storefront/internal/checkout"
	"github.com/tkb-shop/storefront/internal/favorites"
	"github.com/tkb-shop/storefront/internal/shopapi"
	"github.com/tkb-shop/storefront/internal/store"
)

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// StoreProvider provides the durable client-side KV store
type StoreProvider interface {
	Store() store.KV
}

// BusProvider provides the in-process signal bus
type BusProvider interface {
	Bus() EventBus.Bus
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// CatalogProvider provides the cached, taxonomy-resolved catalog
type CatalogProvider interface {
	Catalog() *catalog.Service
}

// CartProvider provides the cart store
type CartProvider interface {
	Cart() *cart.Store
}

// FavoritesProvider provides the favorites store
type FavoritesProvider interface {
	Favorites() *favorites.Store
}

// AuthProvider provides auth credential storage
type AuthProvider interface {
	Auth() *authstore.Store
}

// CheckoutProvider provides the checkout saga service
type CheckoutProvider interface {
	Checkout() *checkout.Service
}

// BackendProvider provides the shop backend REST client
type BackendProvider interface {
	Backend() *shopapi.Client
}

// AppContext combines all provider interfaces for full application
// context. Handlers should depend on specific providers or this
// combined interface.
type AppContext interface {
	ConfigProvider
	StoreProvider
	BusProvider
	SchedulerProvider
	CatalogProvider
	CartProvider
	FavoritesProvider
	AuthProvider
	CheckoutProvider
	BackendProvider
}
