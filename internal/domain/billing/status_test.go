package billing

import "testing"

func TestNormalizeProviderStatus(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "active", want: StatusActive},
		{in: "ACTIVE", want: StatusActive},
		{in: "accepted", want: StatusActive},
		{in: "pending", want: StatusPending},
		{in: "cancelled", want: StatusCancelled},
		{in: "canceled", want: StatusCancelled},
		{in: "declined", want: StatusCancelled},
		{in: "expired", want: StatusExpired},
		{in: "frozen", want: StatusExpired},
		{in: " active ", want: StatusActive},
		{in: "paused", want: "PAUSED"},
	}

	for _, tt := range tests {
		if got := NormalizeProviderStatus(tt.in); got != tt.want {
			t.Fatalf("NormalizeProviderStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSubscriptionRemaining(t *testing.T) {
	s := Subscription{MessagesUsed: 30, MessagesLimit: 100}
	if got := s.Remaining(); got != 70 {
		t.Fatalf("Remaining() = %d, want 70", got)
	}

	over := Subscription{MessagesUsed: 120, MessagesLimit: 100}
	if got := over.Remaining(); got != 0 {
		t.Fatalf("Remaining() past the limit = %d, want 0", got)
	}

	unlimited := Subscription{MessagesUsed: 9999, MessagesLimit: -1}
	if !unlimited.Unlimited() {
		t.Fatal("expected sentinel limit to report unlimited")
	}
}
