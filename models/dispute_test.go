package models

import "testing"

func TestDisputePriorityDerivation(t *testing.T) {
	cases := []struct {
		disputeType string
		want        DisputePriority
	}{
		{"fraud", PriorityHigh},
		{"payment", PriorityMedium},
		{"delivery", PriorityLow},
		{"other", PriorityLow},
	}
	for _, tc := range cases {
		if got := DisputePriorityFor(tc.disputeType); got != tc.want {
			t.Errorf("DisputePriorityFor(%q) = %s, want %s", tc.disputeType, got, tc.want)
		}
	}
}

func TestDisputeLifecycle(t *testing.T) {
	setupTestDB(t)
	defer cleanupTestDB(t)

	user := mustCreateUser(t, "User", "user@test.in")

	dispute, err := CreateDispute(user.ID, "", "fraud", "Seller never shipped", "Paid two weeks ago", nil)
	if err != nil {
		t.Fatalf("CreateDispute failed: %v", err)
	}
	if dispute.Priority != PriorityHigh {
		t.Errorf("Expected high priority for fraud, got %s", dispute.Priority)
	}
	if dispute.Status != DisputePending {
		t.Errorf("Expected pending dispute, got %s", dispute.Status)
	}

	if err := InvestigateDispute(dispute.ID); err != nil {
		t.Fatalf("InvestigateDispute failed: %v", err)
	}
	if err := ResolveDispute(dispute.ID, "Refunded the buyer"); err != nil {
		t.Fatalf("ResolveDispute failed: %v", err)
	}

	got, err := GetDisputeByID(dispute.ID)
	if err != nil {
		t.Fatalf("GetDisputeByID failed: %v", err)
	}
	if got.Status != DisputeResolved {
		t.Errorf("Expected resolved, got %s", got.Status)
	}
	if got.Resolution != "Refunded the buyer" {
		t.Errorf("Expected resolution text, got %q", got.Resolution)
	}
	if got.ResolvedAt == nil {
		t.Error("Expected resolvedAt to be set")
	}

	// Terminal disputes cannot be reopened or re-resolved.
	if err := InvestigateDispute(dispute.ID); err != ErrBadTransition {
		t.Errorf("Expected ErrBadTransition, got %v", err)
	}
}

func TestDisputeWithUnknownOrder(t *testing.T) {
	setupTestDB(t)
	defer cleanupTestDB(t)

	user := mustCreateUser(t, "User", "user@test.in")
	if _, err := CreateDispute(user.ID, "missing-order", "payment", "Charged twice", "", nil); err != ErrNotFound {
		t.Errorf("Expected ErrNotFound for unknown order, got %v", err)
	}
}
