package checkout

import (
	"time"

	"github.com/tkb-shop/storefront/internal/domain"
)

// State of a checkout attempt. Unlike the old web client, a partially
// placed checkout is persisted, so a retry can never duplicate lines.
type State string

const (
	StateSubmitting      State = "submitting"
	StateComplete        State = "complete"
	StatePartiallyPlaced State = "partially_placed"
)

type LineState string

const (
	LinePending LineState = "pending"
	LinePlaced  LineState = "placed"
	LineFailed  LineState = "failed"
)

// JournalLine tracks one order submission. The idempotency key is
// minted once and reused verbatim on every resubmission.
type JournalLine struct {
	IdempotencyKey string              `json:"idempotencyKey"`
	Request        domain.OrderRequest `json:"request"`
	State          LineState           `json:"state"`
	Error          string              `json:"error,omitempty"`
}

// Journal is the persisted record of one checkout attempt: the shared
// transaction reference plus per-line outcomes.
type Journal struct {
	CheckoutID     string              `json:"checkoutId"`
	TransactionRef string              `json:"transactionRef"`
	Buyer          domain.Buyer        `json:"buyer"`
	Shipping       domain.ShippingInfo `json:"shipping"`
	ItemsTotal     float64             `json:"itemsTotal"`
	ShippingFee    float64             `json:"shippingFee"`
	State          State               `json:"state"`
	Lines          []JournalLine       `json:"lines"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

func (j *Journal) PlacedCount() int {
	n := 0
	for _, l := range j.Lines {
		if l.State == LinePlaced {
			n++
		}
	}
	return n
}

func (j *Journal) AllPlaced() bool {
	return j.PlacedCount() == len(j.Lines)
}

// GrandTotal is what the buyer pays: item total plus shipping.
func (j *Journal) GrandTotal() float64 {
	return j.ItemsTotal + j.ShippingFee
}
