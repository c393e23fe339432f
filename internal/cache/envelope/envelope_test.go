package envelope

import (
	"errors"
	"testing"
)

type fakeValue struct{ n int }

func (fakeValue) CacheValueTag() string { return "fake" }

type otherValue struct{}

func (otherValue) CacheValueTag() string { return "other" }

func TestAsValueSucceedsForMatchingVariant(t *testing.T) {
	got, err := AsValue[fakeValue](fakeValue{n: 7})
	if err != nil {
		t.Fatalf("AsValue: %v", err)
	}
	if got.n != 7 {
		t.Fatalf("got %+v, want n=7", got)
	}
}

func TestAsValueFailsForMismatchedVariant(t *testing.T) {
	_, err := AsValue[fakeValue](otherValue{})
	var convErr *ConvertError
	if !errors.As(err, &convErr) {
		t.Fatalf("err = %v, want *ConvertError", err)
	}
	if convErr.Kind != "value" {
		t.Fatalf("Kind = %q, want %q", convErr.Kind, "value")
	}
}

func TestBorrowedPayloadDoesNotCopy(t *testing.T) {
	data := []float64{1, 2, 3}
	p := Borrow(data)
	data[0] = 99
	if p.Bytes()[0] != 99 {
		t.Fatalf("BorrowedPayload.Bytes() should alias the original slice")
	}
}

func TestOwnedPayloadReturnsGivenData(t *testing.T) {
	p := Own([]float64{4, 5, 6})
	if got := p.Bytes(); len(got) != 3 || got[1] != 5 {
		t.Fatalf("OwnedPayload.Bytes() = %v, want [4 5 6]", got)
	}
}
