package shopfront

import (
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/tkb-shop/storefront/internal/cart"
	"github.com/tkb-shop/storefront/internal/checkout"
	"github.com/tkb-shop/storefront/internal/domain"
	"github.com/tkb-shop/storefront/internal/favorites"
	"github.com/tkb-shop/storefront/internal/webserver"
	"go.uber.org/zap"
)

// Notification is one transient toast-style message. The feed is
// drained by the UI; nothing here is fatal.
type Notification struct {
	Level   string    `json:"level"` // success | error
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

const notificationBacklog = 50

var notifications struct {
	mu    sync.Mutex
	items []Notification
}

func pushNotification(level, message string) {
	notifications.mu.Lock()
	defer notifications.mu.Unlock()
	notifications.items = append(notifications.items, Notification{
		Level:   level,
		Message: message,
		At:      time.Now(),
	})
	if len(notifications.items) > notificationBacklog {
		notifications.items = notifications.items[len(notifications.items)-notificationBacklog:]
	}
}

// registerNotificationRoutes subscribes the feed to the domain signals
// and exposes the drain endpoint.
func registerNotificationRoutes() {
	bus := appCtx.Bus()
	subscribe := func(topic string, fn interface{}) {
		if err := bus.Subscribe(topic, fn); err != nil {
			zap.S().Errorf("notifications: subscribe %s: %v", topic, err)
		}
	}

	subscribe(cart.TopicAdded, func(domain.CartLine) {
		pushNotification("success", "Pièce ajoutée à votre sélection")
	})
	subscribe(cart.TopicRemoved, func(domain.CartLine) {
		pushNotification("error", "Article retiré de la sélection")
	})
	subscribe(favorites.TopicAdded, func(domain.Product) {
		pushNotification("success", "Ajouté aux favoris")
	})
	subscribe(favorites.TopicRemoved, func(domain.Product) {
		pushNotification("success", "Retiré des favoris")
	})
	subscribe(checkout.TopicSucceeded, func(*checkout.Journal) {
		pushNotification("success", "Commande validée ! 🎉")
	})
	subscribe(checkout.TopicFailed, func(*checkout.Journal) {
		pushNotification("error", "Erreur d'enregistrement.")
	})

	webserver.ApiGET("/notifications", drainNotifications)
}

func drainNotifications(c echo.Context) error {
	notifications.mu.Lock()
	items := notifications.items
	notifications.items = nil
	notifications.mu.Unlock()
	if items == nil {
		items = []Notification{}
	}
	return ok(c, items)
}
