package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/meterline/storefront-backend/pkg/errors"
)

type samplePayload struct {
	Email string `json:"email" validate:"required,email"`
	Qty   int    `json:"qty" validate:"min=1"`
}

func decode(t *testing.T, body string) (*samplePayload, error) {
	t.Helper()
	r := httptest.NewRequest("POST", "/", strings.NewReader(body))
	var dest samplePayload
	return &dest, DecodeJSONBody(r, &dest)
}

func TestDecodeJSONBodyAccepts(t *testing.T) {
	dest, err := decode(t, `{"email":"buyer@example.com","qty":2}`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dest.Email != "buyer@example.com" || dest.Qty != 2 {
		t.Fatalf("unexpected payload: %+v", dest)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	_, err := decode(t, `{"email":"buyer@example.com","qty":1,"price":"9.99"}`)
	if err == nil {
		t.Fatal("expected unknown-field error")
	}
	if te := pkgerrors.As(err); te == nil || te.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
}

func TestDecodeJSONBodyDetailsUseJSONTags(t *testing.T) {
	_, err := decode(t, `{"email":"not-an-email","qty":0}`)
	te := pkgerrors.As(err)
	if te == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	details, ok := te.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field map details, got %T", te.Details())
	}
	if details["email"] != "must be a valid email" {
		t.Errorf("email message = %q", details["email"])
	}
	if details["qty"] != "must be at least 1" {
		t.Errorf("qty message = %q", details["qty"])
	}
}
