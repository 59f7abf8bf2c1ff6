// Package checkout turns a filled cart into a recorded order.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"storefront/pkg/cart"
	"storefront/pkg/logger"
	"storefront/pkg/order"
	"storefront/pkg/order/textlog"
	"storefront/pkg/otel"
	"storefront/pkg/payment"
)

// ErrOrderNotRecorded indicates the order log rejected the order. The cart
// is left untouched when this is returned.
var ErrOrderNotRecorded = errors.New("order could not be recorded")

// Service coordinates cart, payment and order log.
type Service struct {
	log       order.Log
	ids       order.IDGenerator
	logger    *logger.Logger
	maxTries  uint
	initDelay time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithRetry sets how many times an append is attempted and the delay before
// the first retry.
func WithRetry(maxTries uint, initialDelay time.Duration) Option {
	return func(s *Service) {
		if maxTries > 0 {
			s.maxTries = maxTries
		}
		s.initDelay = initialDelay
	}
}

// New creates a checkout service.
func New(log order.Log, ids order.IDGenerator, lg *logger.Logger, opts ...Option) *Service {
	s := &Service{
		log:       log,
		ids:       ids,
		logger:    lg,
		maxTries:  3,
		initDelay: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Checkout pays for the cart contents with method, records the order and
// empties the cart. Nothing is recorded and the cart is kept when any step
// fails.
func (s *Service) Checkout(ctx context.Context, c *cart.Cart, method payment.Method) (order.Order, error) {
	ctx, span := otel.AddSpan(ctx, "checkout.Checkout",
		attribute.String("payment.method", method.String()),
		attribute.Int("cart.lines", c.Len()),
	)
	defer span.End()

	if c.IsEmpty() {
		span.SetStatus(codes.Error, cart.ErrEmptyCart.Error())
		return order.Order{}, cart.ErrEmptyCart
	}
	if !method.Valid() {
		return order.Order{}, fmt.Errorf("%w: %s", payment.ErrInvalidChoice, method)
	}

	total, err := c.Total()
	if err != nil {
		return order.Order{}, err
	}
	settlement := method.Settle(total)
	s.logger.Debug(ctx, "payment settled", "method", settlement.Method.String(), "amount", settlement.Amount.StringFixed(2), "action", settlement.Action)

	o := order.Order{
		ID:            s.ids.Next(),
		PaymentMethod: method.String(),
		Total:         total,
	}
	for _, l := range c.Lines() {
		o.Lines = append(o.Lines, order.Line{
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
			Price:     l.Product.Price,
			Quantity:  l.Quantity,
		})
	}
	span.SetAttributes(attribute.String("order.id", o.ID))

	if err := s.append(ctx, o); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "append failed")
		s.logger.Error(ctx, "record order", "order_id", o.ID, "error", err)
		return order.Order{}, fmt.Errorf("%w: %v", ErrOrderNotRecorded, err)
	}

	c.Clear()
	s.logger.Info(ctx, "order checked out", "order_id", o.ID, "method", o.PaymentMethod, "total", o.Total.StringFixed(2), "lines", len(o.Lines))
	return o, nil
}

func (s *Service) append(ctx context.Context, o order.Order) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.initDelay

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		err := s.log.Append(ctx, o)
		if errors.Is(err, textlog.ErrUnencodable) || errors.Is(err, textlog.ErrRollback) {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(s.maxTries),
		backoff.WithNotify(func(err error, next time.Duration) {
			s.logger.Warn(ctx, "retrying order append", "order_id", o.ID, "error", err, "next", next.String())
		}),
	)
	return err
}

// History returns recorded orders, oldest first.
func (s *Service) History(ctx context.Context) ([]order.Order, error) {
	ctx, span := otel.AddSpan(ctx, "checkout.History")
	defer span.End()

	orders, err := s.log.View(ctx)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("orders.count", len(orders)))
	return orders, nil
}
