package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/bwmarrin/snowflake"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/tkb-shop/storefront/internal/domain"
	"github.com/tkb-shop/storefront/internal/store"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	TopicSucceeded = "checkout.succeeded"
	TopicFailed    = "checkout.failed"
)

var (
	ErrEmptyCart = errors.New("checkout: cart is empty")
	ErrNotFound  = errors.New("checkout: unknown checkout id")

	json = jsoniter.ConfigCompatibleWithStandardLibrary
)

// OrderSubmitter is the slice of the backend client checkout needs.
type OrderSubmitter interface {
	CreateOrder(ctx context.Context, idempotencyKey string, req domain.OrderRequest) error
}

// Cart is the slice of the cart store checkout needs.
type Cart interface {
	Lines() []domain.CartLine
	Total() float64
	Clear()
}

// Service decomposes a cart into one order request per line and runs
// the submissions as a journaled saga: the journal hits storage before
// any network call, every line carries a stable idempotency key, and
// the cart is cleared only when every line is placed.
type Service struct {
	cart Cart
	api  OrderSubmitter
	kv   store.KV
	bus  EventBus.Bus
	node *snowflake.Node

	freeShippingOver float64
	shippingFee      float64
	now              func() time.Time
}

func NewService(cart Cart, api OrderSubmitter, kv store.KV, bus EventBus.Bus, node *snowflake.Node, freeShippingOver, shippingFee float64) *Service {
	return &Service{
		cart:             cart,
		api:              api,
		kv:               kv,
		bus:              bus,
		node:             node,
		freeShippingOver: freeShippingOver,
		shippingFee:      shippingFee,
		now:              time.Now,
	}
}

// ShippingFee applies the delivery pricing rule to an item total.
func (s *Service) ShippingFee(itemsTotal float64) float64 {
	if itemsTotal > s.freeShippingOver {
		return 0
	}
	return s.shippingFee
}

// Begin starts a checkout attempt for the current cart content and
// runs it to its first outcome. The returned journal reports per-line
// results; State tells whether the attempt completed.
func (s *Service) Begin(ctx context.Context, buyer domain.Buyer, shipping domain.ShippingInfo) (*Journal, error) {
	lines := s.cart.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	txRef := "TX-" + s.node.Generate().String()
	address := fmt.Sprintf("%s, %s (Tél: %s)", shipping.Address, shipping.City, shipping.Phone)
	itemsTotal := s.cart.Total()

	j := &Journal{
		CheckoutID:     s.node.Generate().String(),
		TransactionRef: txRef,
		Buyer:          buyer,
		Shipping:       shipping,
		ItemsTotal:     itemsTotal,
		ShippingFee:    s.ShippingFee(itemsTotal),
		State:          StateSubmitting,
		CreatedAt:      s.now(),
		UpdatedAt:      s.now(),
	}
	for _, line := range lines {
		j.Lines = append(j.Lines, JournalLine{
			IdempotencyKey: s.node.Generate().String(),
			State:          LinePending,
			Request: domain.OrderRequest{
				UserID:      buyer.UserID,
				ProductID:   line.ProductID,
				ProductName: line.Name,
				Price:       line.Price,
				Quantity:    line.Quantity,
				TotalPrice:  line.LineTotal(),
				Address:     address,
				Status:      domain.OrderStatusPaid,
				PaymentID:   txRef,
			},
		})
	}

	// The journal must be durable before the first request goes out.
	if err := s.save(j); err != nil {
		return nil, err
	}

	s.submit(ctx, j)
	return j, s.finalize(j)
}

// Resume re-submits only the lines of an earlier attempt that are not
// yet placed, reusing their original idempotency keys. Idempotent: a
// completed checkout returns as-is.
func (s *Service) Resume(ctx context.Context, checkoutID string) (*Journal, error) {
	j, err := s.Journal(checkoutID)
	if err != nil {
		return nil, err
	}
	if j.State == StateComplete {
		return j, nil
	}

	s.submit(ctx, j)
	return j, s.finalize(j)
}

// Journal loads one persisted checkout attempt.
func (s *Service) Journal(checkoutID string) (*Journal, error) {
	data, found, err := s.kv.Get(store.BucketCheckouts, checkoutID)
	if err != nil {
		return nil, errors.Wrap(err, "checkout: load journal")
	}
	if !found {
		return nil, ErrNotFound
	}
	var j Journal
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, errors.Wrap(err, "checkout: decode journal")
	}
	return &j, nil
}

// Open lists attempts that have not completed, oldest first.
func (s *Service) Open() []*Journal {
	var open []*Journal
	_ = s.kv.ForEach(store.BucketCheckouts, func(_ string, value []byte) error {
		var j Journal
		if err := json.Unmarshal(value, &j); err != nil {
			return nil
		}
		if j.State != StateComplete {
			open = append(open, &j)
		}
		return nil
	})
	for i := 1; i < len(open); i++ {
		for k := i; k > 0 && open[k].CreatedAt.Before(open[k-1].CreatedAt); k-- {
			open[k], open[k-1] = open[k-1], open[k]
		}
	}
	return open
}

// submit issues every non-placed line concurrently. There is no
// ordering guarantee between submissions; each records its own
// outcome.
func (s *Service) submit(ctx context.Context, j *Journal) {
	var mu sync.Mutex
	var g errgroup.Group

	for i := range j.Lines {
		if j.Lines[i].State == LinePlaced {
			continue
		}
		i := i
		g.Go(func() error {
			err := s.api.CreateOrder(ctx, j.Lines[i].IdempotencyKey, j.Lines[i].Request)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				j.Lines[i].State = LineFailed
				j.Lines[i].Error = err.Error()
				zap.S().Warnf("checkout %s: line %d failed: %v", j.CheckoutID, i, err)
			} else {
				j.Lines[i].State = LinePlaced
				j.Lines[i].Error = ""
			}
			return nil
		})
	}
	_ = g.Wait()
}

// finalize records the attempt outcome, clears the cart on full
// success and emits the user-facing signal.
func (s *Service) finalize(j *Journal) error {
	j.UpdatedAt = s.now()
	if j.AllPlaced() {
		j.State = StateComplete
	} else {
		j.State = StatePartiallyPlaced
	}
	if err := s.save(j); err != nil {
		return err
	}

	if j.State == StateComplete {
		s.cart.Clear()
		if s.bus != nil {
			s.bus.Publish(TopicSucceeded, j)
		}
		zap.S().Infof("checkout %s: complete, %d orders placed, tx=%s",
			j.CheckoutID, len(j.Lines), j.TransactionRef)
		return nil
	}

	if s.bus != nil {
		s.bus.Publish(TopicFailed, j)
	}
	zap.S().Warnf("checkout %s: %d/%d lines placed, cart kept for resume",
		j.CheckoutID, j.PlacedCount(), len(j.Lines))
	return nil
}

func (s *Service) save(j *Journal) error {
	data, err := json.Marshal(j)
	if err != nil {
		return errors.Wrap(err, "checkout: encode journal")
	}
	return errors.Wrap(s.kv.Put(store.BucketCheckouts, j.CheckoutID, data), "checkout: persist journal")
}
