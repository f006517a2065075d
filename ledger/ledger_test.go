package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "ledger.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	db.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return db
}

func TestRecordAndSent(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	sent, err := db.Sent(ctx, 25)
	if err != nil {
		t.Fatal(err)
	}
	if sent {
		t.Error("empty ledger reports submission as sent")
	}

	failed, err := db.Record(ctx, Entry{SubmissionID: 25, Profile: "server", Status: StatusFailed, HTTPStatus: 500, Error: "server error"})
	if err != nil {
		t.Fatalf("Record() error: %v", err)
	}
	if failed.ID == "" || failed.CreatedAt.IsZero() {
		t.Errorf("Record() did not assign id and time: %+v", failed)
	}
	if sent, _ := db.Sent(ctx, 25); sent {
		t.Error("a failed attempt must not count as sent")
	}

	if _, err := db.Record(ctx, Entry{SubmissionID: 25, Profile: "server", Status: StatusSent, HTTPStatus: 201}); err != nil {
		t.Fatal(err)
	}
	if sent, _ := db.Sent(ctx, 25); !sent {
		t.Error("submission should be marked as sent")
	}
	if sent, _ := db.Sent(ctx, 26); sent {
		t.Error("other submissions are unaffected")
	}
}

func TestRecord_UnknownStatus(t *testing.T) {
	if _, err := openTestDB(t).Record(context.Background(), Entry{SubmissionID: 1, Status: "queued"}); err == nil {
		t.Error("expected an error for an unknown status")
	}
}

func TestList(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	for _, e := range []Entry{
		{SubmissionID: 1, Profile: "server", Status: StatusRejected, Error: "doi"},
		{SubmissionID: 2, Profile: "registry", Status: StatusSent, HTTPStatus: 201, Recipient: "https://ror.org/04dkp9463"},
		{SubmissionID: 1, Profile: "server", Status: StatusSent, HTTPStatus: 201},
	} {
		if _, err := db.Record(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	all, err := db.List(ctx, 0, 0)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List() returned %d entries, want 3", len(all))
	}
	if all[0].SubmissionID != 1 || all[0].Status != StatusSent {
		t.Errorf("newest entry = %+v", all[0])
	}
	if all[1].Recipient != "https://ror.org/04dkp9463" {
		t.Errorf("recipient not stored: %+v", all[1])
	}
	if !all[0].CreatedAt.After(all[2].CreatedAt) {
		t.Errorf("entries not ordered newest first: %v, %v", all[0].CreatedAt, all[2].CreatedAt)
	}

	one, err := db.List(ctx, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(one) != 2 || one[1].Error != "doi" {
		t.Errorf("List(1) = %+v", one)
	}

	limited, err := db.List(ctx, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 {
		t.Errorf("List(limit 1) returned %d entries", len(limited))
	}
}

func TestOpen_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")

	db, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Record(ctx, Entry{SubmissionID: 9, Profile: "server", Status: StatusSent}); err != nil {
		t.Fatal(err)
	}
	db.Close()

	db, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	if sent, _ := db.Sent(ctx, 9); !sent {
		t.Error("ledger lost its entries across reopen")
	}
}
