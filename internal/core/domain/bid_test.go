package domain

import (
	"errors"
	"testing"
)

func TestBidStatusNext(t *testing.T) {
	cases := []struct {
		from    BidStatus
		action  BidAction
		want    BidStatus
		wantErr bool
	}{
		{BidPending, ActionAccept, BidAccepted, false},
		{BidPending, ActionReject, BidRejected, false},
		{BidPending, ActionWithdraw, BidWithdrawn, false},
		{BidAccepted, ActionReject, "", true},
		{BidAccepted, ActionWithdraw, "", true},
		{BidRejected, ActionAccept, "", true},
		{BidWithdrawn, ActionAccept, "", true},
		{BidPending, BidAction("approve"), "", true},
	}

	for _, tc := range cases {
		got, err := tc.from.Next(tc.action)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("%s.Next(%s): expected ErrInvalidTransition, got %v", tc.from, tc.action, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s.Next(%s): %v", tc.from, tc.action, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%s.Next(%s) = %s, want %s", tc.from, tc.action, got, tc.want)
		}
	}
}

func TestBidStatusTerminal(t *testing.T) {
	if BidPending.Terminal() {
		t.Errorf("pending must not be terminal")
	}
	for _, s := range []BidStatus{BidAccepted, BidRejected, BidWithdrawn} {
		if !s.Terminal() {
			t.Errorf("%s must be terminal", s)
		}
	}
}

func TestProjectStatusAcceptsBids(t *testing.T) {
	if !ProjectOpen.AcceptsBids() {
		t.Errorf("open must accept bids")
	}
	for _, s := range []ProjectStatus{ProjectClosed, ProjectInProgress, ProjectCompleted} {
		if s.AcceptsBids() {
			t.Errorf("%s must not accept bids", s)
		}
	}
}
