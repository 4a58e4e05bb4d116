package service

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSyncAll_PartialFailureIsolation(t *testing.T) {
	env := newTestEnv(t)
	env.cfg.SyncBatchSize = 2 // 3 eligible accounts -> two batches

	env.createAccount(t, "acct-1", "#T1")
	env.createAccount(t, "acct-2", "#T2")
	env.createAccount(t, "acct-3", "#T3")
	env.createAccount(t, "acct-4", "") // never linked, not eligible

	env.source.logErr["#T2"] = errors.New("upstream unavailable")

	result, err := env.fleet.SyncAll(context.Background())
	if err != nil {
		t.Fatalf("SyncAll failed: %v", err)
	}

	if result.TotalAccounts != 4 {
		t.Errorf("total accounts = %d, want 4", result.TotalAccounts)
	}
	if result.AccountsWithTag != 3 {
		t.Errorf("accounts with tag = %d, want 3", result.AccountsWithTag)
	}
	if result.AccountsProcessed != 3 {
		t.Errorf("accounts processed = %d, want 3", result.AccountsProcessed)
	}
	if result.Succeeded != 2 || result.Failed != 1 {
		t.Errorf("succeeded/failed = %d/%d, want 2/1", result.Succeeded, result.Failed)
	}

	if len(result.Results) != 3 {
		t.Fatalf("results = %d entries, want 3", len(result.Results))
	}
	for i, want := range []string{"acct-1", "acct-2", "acct-3"} {
		if result.Results[i].AccountID != want {
			t.Errorf("results[%d] = %s, want %s", i, result.Results[i].AccountID, want)
		}
	}
	failed := result.Results[1]
	if failed.Success || failed.Error == "" {
		t.Errorf("acct-2 should have failed with an error, got %+v", failed)
	}
	if !result.Results[0].Success || !result.Results[2].Success {
		t.Error("failure of one account should not affect its batch peers")
	}
}

func TestSyncAll_RateLimitRetriedOnce(t *testing.T) {
	env := newTestEnv(t)

	env.createAccount(t, "acct-1", "#T1")
	env.source.rateLimitNext["#T1"] = 1

	result, err := env.fleet.SyncAll(context.Background())
	if err != nil {
		t.Fatalf("SyncAll failed: %v", err)
	}

	if result.Succeeded != 1 {
		t.Errorf("succeeded = %d, want 1 after a single cooldown retry", result.Succeeded)
	}
	if calls := env.source.callCount("#T1"); calls != 2 {
		t.Errorf("upstream calls = %d, want 2 (initial + one retry)", calls)
	}
}

func TestSyncAll_RateLimitGivesUpAfterOneRetry(t *testing.T) {
	env := newTestEnv(t)

	env.createAccount(t, "acct-1", "#T1")
	env.source.rateLimitNext["#T1"] = 5 // throttled for the whole run

	result, err := env.fleet.SyncAll(context.Background())
	if err != nil {
		t.Fatalf("SyncAll failed: %v", err)
	}

	if result.Failed != 1 {
		t.Errorf("failed = %d, want 1", result.Failed)
	}
	if calls := env.source.callCount("#T1"); calls != 2 {
		t.Errorf("upstream calls = %d, want exactly 2 (no second retry)", calls)
	}
}

func TestSyncAll_DeadlineSkipsRemainingBatches(t *testing.T) {
	env := newTestEnv(t)
	env.cfg.FleetDeadline = 0 // already expired when the first batch would start

	env.createAccount(t, "acct-1", "#T1")
	env.createAccount(t, "acct-2", "#T2")

	result, err := env.fleet.SyncAll(context.Background())
	if err != nil {
		t.Fatalf("SyncAll failed: %v", err)
	}

	if result.AccountsProcessed != 0 {
		t.Errorf("accounts processed = %d, want 0 past the deadline", result.AccountsProcessed)
	}
	if result.AccountsWithTag != 2 {
		t.Errorf("accounts with tag = %d, want 2", result.AccountsWithTag)
	}
	if len(result.Results) != 0 {
		t.Errorf("results should be empty, got %d entries", len(result.Results))
	}
}

func TestSyncAll_SpacesBatchStarts(t *testing.T) {
	env := newTestEnv(t)
	env.cfg.SyncBatchSize = 1
	env.cfg.MinBatchInterval = 40 * time.Millisecond

	env.createAccount(t, "acct-1", "#T1")
	env.createAccount(t, "acct-2", "#T2")
	env.createAccount(t, "acct-3", "#T3")

	start := time.Now()
	result, err := env.fleet.SyncAll(context.Background())
	if err != nil {
		t.Fatalf("SyncAll failed: %v", err)
	}
	elapsed := time.Since(start)

	if result.AccountsProcessed != 3 {
		t.Fatalf("accounts processed = %d, want 3", result.AccountsProcessed)
	}
	// first batch starts immediately, the next two wait one interval each
	if elapsed < 80*time.Millisecond {
		t.Errorf("three single-account batches finished in %v, want >= 80ms of spacing", elapsed)
	}
}

func TestSyncAll_NoEligibleAccounts(t *testing.T) {
	env := newTestEnv(t)
	env.createAccount(t, "acct-1", "")

	result, err := env.fleet.SyncAll(context.Background())
	if err != nil {
		t.Fatalf("SyncAll failed: %v", err)
	}
	if result.TotalAccounts != 1 || result.AccountsWithTag != 0 || result.AccountsProcessed != 0 {
		t.Errorf("unexpected result for tagless fleet: %+v", result)
	}
}
