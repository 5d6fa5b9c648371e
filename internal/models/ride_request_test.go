package models

import "testing"

func TestRequestStatus_String(t *testing.T) {
	cases := []struct {
		status RequestStatus
		want   string
	}{
		{RequestPending, "pending"},
		{RequestAccepted, "accepted"},
		{RequestRejected, "rejected"},
		{RequestCancelled, "cancelled"},
		{RequestStatus(0), "unknown"},
		{RequestStatus(99), "unknown"},
	}

	for _, tc := range cases {
		if got := tc.status.String(); got != tc.want {
			t.Errorf("String(%d) = %q, expected %q", int(tc.status), got, tc.want)
		}
	}
}

func TestRequestStatus_Terminal(t *testing.T) {
	if RequestPending.Terminal() {
		t.Error("pending is not terminal")
	}
	for _, s := range []RequestStatus{RequestAccepted, RequestRejected, RequestCancelled} {
		if !s.Terminal() {
			t.Errorf("%v should be terminal", s)
		}
	}
}

func TestRideRequest_StatusPredicates(t *testing.T) {
	req := &RideRequest{Status: RequestPending}
	if !req.IsPending() || req.IsAccepted() || req.IsRejected() || req.IsCancelled() {
		t.Error("pending predicates inconsistent")
	}

	req.Status = RequestAccepted
	if req.IsPending() || !req.IsAccepted() {
		t.Error("accepted predicates inconsistent")
	}
}
