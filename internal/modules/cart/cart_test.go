package cart

import (
	"errors"
	"testing"

	"github.com/amanisrajpoot/youandonly-sub000/internal/http/cartcookie"
)

func TestAddAppendsPerUnit(t *testing.T) {
	c := &Cart{}
	c.Add(Item{ProductID: "a"}, 2)
	c.Add(Item{ProductID: "b"}, 0) // qty < 1 counts as 1
	c.Add(Item{ProductID: "a"}, 1)

	items := c.Items()
	want := []string{"a", "a", "b", "a"}
	if len(items) != len(want) {
		t.Fatalf("len = %d, want %d", len(items), len(want))
	}
	for i, id := range want {
		if items[i].ProductID != id {
			t.Errorf("items[%d] = %s, want %s", i, items[i].ProductID, id)
		}
	}
}

func TestRemoveByIndex(t *testing.T) {
	c := &Cart{}
	c.Add(Item{ProductID: "a"}, 1)
	c.Add(Item{ProductID: "b"}, 1)
	c.Add(Item{ProductID: "c"}, 1)

	if err := c.Remove(1); err != nil {
		t.Fatal(err)
	}
	items := c.Items()
	if len(items) != 2 || items[0].ProductID != "a" || items[1].ProductID != "c" {
		t.Errorf("after remove: %+v", items)
	}

	if err := c.Remove(5); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
	if err := c.Remove(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestSubtotalFold(t *testing.T) {
	c := &Cart{}
	c.Add(Item{ProductID: "a"}, 2)
	c.Add(Item{ProductID: "b"}, 1)

	prices := map[string]int64{"a": 1500, "b": 2000}
	if got := c.Subtotal(prices); got != 5000 {
		t.Errorf("subtotal = %d, want 5000", got)
	}

	// unknown products contribute nothing
	c.Add(Item{ProductID: "ghost"}, 3)
	if got := c.Subtotal(prices); got != 5000 {
		t.Errorf("subtotal with unknown = %d, want 5000", got)
	}
}

func TestLinesCollapseFirstSeenOrder(t *testing.T) {
	c := &Cart{}
	c.Add(Item{ProductID: "a"}, 1)
	c.Add(Item{ProductID: "b", VariantID: "v1"}, 1)
	c.Add(Item{ProductID: "a"}, 2)
	c.Add(Item{ProductID: "b", VariantID: "v2"}, 1)

	lines := c.Lines()
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if lines[0].Item.ProductID != "a" || lines[0].Quantity != 3 {
		t.Errorf("lines[0] = %+v", lines[0])
	}
	if lines[1].Item != (Item{ProductID: "b", VariantID: "v1"}) || lines[1].Quantity != 1 {
		t.Errorf("lines[1] = %+v", lines[1])
	}
	if lines[2].Item != (Item{ProductID: "b", VariantID: "v2"}) || lines[2].Quantity != 1 {
		t.Errorf("lines[2] = %+v", lines[2])
	}
}

func TestCookieRoundTrip(t *testing.T) {
	c := &Cart{}
	c.Add(Item{ProductID: "a", VariantID: "v"}, 2)

	back := FromCookie(c.ToCookie())
	if back.Len() != 2 {
		t.Fatalf("round trip len = %d", back.Len())
	}

	// entries with empty product ids are dropped on the way in
	back = FromCookie(cartcookie.Cart{Entries: []cartcookie.Entry{{ProductID: ""}, {ProductID: "x"}}})
	if back.Len() != 1 {
		t.Errorf("len = %d, want 1", back.Len())
	}
}
