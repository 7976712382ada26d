package mailer

import (
	"context"
	"errors"
	"testing"
)

func TestMockRecordsSends(t *testing.T) {
	m := &Mock{}

	if _, ok := m.Last(); ok {
		t.Fatal("Last on empty mock should report false")
	}

	if err := m.Send(context.Background(), Email{To: []string{"a@example.com"}, Subject: "one"}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if err := m.Send(context.Background(), Email{To: []string{"b@example.com"}, Subject: "two"}); err != nil {
		t.Fatalf("Send: %v", err)
	}

	last, ok := m.Last()
	if !ok || last.Subject != "two" {
		t.Errorf("Last = %+v, ok=%v", last, ok)
	}
	if len(m.Sent) != 2 {
		t.Errorf("Sent = %d, want 2", len(m.Sent))
	}
}

func TestMockErr(t *testing.T) {
	m := &Mock{Err: errors.New("smtp down")}

	if err := m.Send(context.Background(), Email{Subject: "x"}); err == nil {
		t.Fatal("expected error")
	}
	if len(m.Sent) != 0 {
		t.Errorf("failed send recorded: %d", len(m.Sent))
	}
}
