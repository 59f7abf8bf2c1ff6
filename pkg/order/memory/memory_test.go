package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"storefront/pkg/order"
)

func TestLog(t *testing.T) {
	ctx := context.Background()
	log := New()

	if _, err := log.View(ctx); !errors.Is(err, order.ErrNoOrders) {
		t.Fatalf("expected ErrNoOrders, got %v", err)
	}

	o := order.Order{
		ID:            "1",
		PaymentMethod: "Cash",
		Lines:         []order.Line{{ProductID: 3, Name: "Headphones", Price: decimal.RequireFromString("99.99"), Quantity: 2}},
		Total:         decimal.RequireFromString("199.98"),
	}
	if err := log.Append(ctx, o); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := log.Append(ctx, order.Order{ID: "2", PaymentMethod: "GCash"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	o.Lines[0].Quantity = 99

	list, err := log.View(ctx)
	if err != nil || len(list) != 2 {
		t.Fatalf("view: %v len=%d", err, len(list))
	}
	if list[0].ID != "1" || list[1].ID != "2" {
		t.Fatalf("unexpected order: %s, %s", list[0].ID, list[1].ID)
	}
	if list[0].Lines[0].Quantity != 2 {
		t.Fatalf("stored order aliased caller slice: qty=%d", list[0].Lines[0].Quantity)
	}

	list[0].Lines[0].Quantity = 7
	again, _ := log.View(ctx)
	if again[0].Lines[0].Quantity != 2 {
		t.Fatal("view returned shared state")
	}
}
