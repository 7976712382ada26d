package cartcookie

import (
	"errors"
	"strings"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	c := New([]byte("test-secret"), "yo_cart", false)

	in := Cart{Entries: []Entry{
		{ProductID: "p1", VariantID: "v1"},
		{ProductID: "p1"},
		{ProductID: "p2"},
	}}

	v, err := c.Encode(in)
	if err != nil {
		t.Fatal(err)
	}

	out, err := c.Decode(v)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(out.Entries))
	}
	if out.Entries[0] != in.Entries[0] {
		t.Errorf("entry 0 = %+v", out.Entries[0])
	}
}

func TestDecodeRejectsTamperedPayload(t *testing.T) {
	c := New([]byte("test-secret"), "yo_cart", false)

	v, err := c.Encode(Cart{Entries: []Entry{{ProductID: "p1"}}})
	if err != nil {
		t.Fatal(err)
	}

	parts := strings.SplitN(v, ".", 2)

	// flip payload, keep signature
	tampered := parts[0][:len(parts[0])-1] + "A" + "." + parts[1]
	if tampered == v {
		tampered = parts[0][:len(parts[0])-1] + "B" + "." + parts[1]
	}
	if _, err := c.Decode(tampered); !errors.Is(err, ErrInvalid) {
		t.Errorf("tampered payload: got %v, want ErrInvalid", err)
	}
}

func TestDecodeRejectsWrongSecret(t *testing.T) {
	a := New([]byte("secret-a"), "yo_cart", false)
	b := New([]byte("secret-b"), "yo_cart", false)

	v, err := a.Encode(Cart{Entries: []Entry{{ProductID: "p1"}}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.Decode(v); !errors.Is(err, ErrInvalid) {
		t.Errorf("wrong secret: got %v, want ErrInvalid", err)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	c := New([]byte("test-secret"), "yo_cart", false)
	for _, v := range []string{"", "nodot", "a.b.c", "!!.!!"} {
		if _, err := c.Decode(v); !errors.Is(err, ErrInvalid) {
			t.Errorf("Decode(%q): got %v, want ErrInvalid", v, err)
		}
	}
}
