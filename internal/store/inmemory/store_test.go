package inmemory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/foxowl-ops/digital-twin/internal/store"
)

func sampleRecord(id string) *store.Record {
	return &store.Record{
		TransactionID:  id,
		UserID:         "u1",
		Amount:         500,
		Currency:       "USD",
		MerchantID:     "m1",
		Timestamp:      time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		IsFraud:        false,
		PaymentGateway: "Visa",
		LatencyMS:      1234,
		Status:         store.StatusSuccess,
	}
}

func TestAppendAndListAll(t *testing.T) {
	s := New()
	ctx := context.Background()

	rec := sampleRecord("tx-1")
	if err := s.Append(ctx, rec); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	records, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("ListAll() returned %d records, want 1", len(records))
	}
	if *records[0] != *rec {
		t.Errorf("retrieved record %+v, want %+v", *records[0], *rec)
	}
}

func TestAppendDuplicateID(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.Append(ctx, sampleRecord("tx-1")); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	err := s.Append(ctx, sampleRecord("tx-1"))
	var dup *store.DuplicateIDError
	if !errors.As(err, &dup) {
		t.Fatalf("Append() error = %v, want *DuplicateIDError", err)
	}
	if dup.TransactionID != "tx-1" {
		t.Errorf("DuplicateIDError.TransactionID = %q, want tx-1", dup.TransactionID)
	}

	records, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(records) != 1 {
		t.Errorf("ListAll() returned %d records after duplicate append, want 1", len(records))
	}
}

func TestListAllInsertionOrder(t *testing.T) {
	s := New()
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		if err := s.Append(ctx, sampleRecord(fmt.Sprintf("tx-%d", i))); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	records, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	for i, rec := range records {
		if want := fmt.Sprintf("tx-%d", i); rec.TransactionID != want {
			t.Errorf("records[%d].TransactionID = %q, want %q", i, rec.TransactionID, want)
		}
	}
}

func TestConcurrentAppends(t *testing.T) {
	s := New()
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := s.Append(ctx, sampleRecord(fmt.Sprintf("tx-%d", i))); err != nil {
				t.Errorf("Append() error = %v", err)
			}
		}(i)
	}
	wg.Wait()

	records, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(records) != n {
		t.Errorf("ListAll() returned %d records, want %d", len(records), n)
	}
}

func TestAppendCopiesRecord(t *testing.T) {
	s := New()
	ctx := context.Background()

	rec := sampleRecord("tx-1")
	if err := s.Append(ctx, rec); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	// Mutating the caller's struct after Append must not reach the log.
	rec.Amount = 9999

	records, _ := s.ListAll(ctx)
	if records[0].Amount != 500 {
		t.Errorf("stored amount changed to %v after caller mutation", records[0].Amount)
	}
}
