package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{InvalidErr("bad", nil), http.StatusBadRequest},
		{NotFoundErr("missing"), http.StatusNotFound},
		{UnauthorizedErr("no"), http.StatusUnauthorized},
		{ForbiddenErr("no"), http.StatusForbidden},
		{ConflictErr("dup"), http.StatusConflict},
		{Wrap(errors.New("boom")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestHTTPStatusUnwrapsWrappedErrors(t *testing.T) {
	inner := NotFoundErr("missing")
	wrapped := fmt.Errorf("context: %w", inner)
	if got := HTTPStatus(wrapped); got != http.StatusNotFound {
		t.Errorf("HTTPStatus(wrapped) = %d, want 404", got)
	}
}

func TestPublicMessage(t *testing.T) {
	if got := PublicMessage(NotFoundErr("Order not found.")); got != "Order not found." {
		t.Errorf("got %q", got)
	}
	if got := PublicMessage(Wrap(errors.New("sql: connection refused"))); got != "Something went wrong." {
		t.Errorf("internal detail leaked: %q", got)
	}
	if got := PublicMessage(errors.New("raw")); got != "Something went wrong." {
		t.Errorf("got %q", got)
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil) != nil {
		t.Error("Wrap(nil) should be nil")
	}
}
