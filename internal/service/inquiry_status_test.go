package service

import (
	"testing"

	"github.com/yhdfc-next/internal/constants"
)

func TestCanTransitionInquiryStatus(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{constants.InquiryStatusNew, constants.InquiryStatusRead, true},
		{constants.InquiryStatusNew, constants.InquiryStatusClosed, true},
		{constants.InquiryStatusRead, constants.InquiryStatusResponded, true},
		{constants.InquiryStatusResponded, constants.InquiryStatusRead, true},
		{constants.InquiryStatusClosed, constants.InquiryStatusRead, true},
		{constants.InquiryStatusClosed, constants.InquiryStatusNew, false},
		{constants.InquiryStatusRead, constants.InquiryStatusNew, false},
		{constants.InquiryStatusClosed, constants.InquiryStatusResponded, false},
		{" READ ", "read", true},
	}
	for _, tc := range cases {
		if got := CanTransitionInquiryStatus(tc.from, tc.to); got != tc.want {
			t.Fatalf("%s -> %s want %v got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestTransitionPolicyAllows(t *testing.T) {
	allowed, offTable := TransitionPermissive.Allows(constants.InquiryStatusClosed, constants.InquiryStatusNew)
	if !allowed || !offTable {
		t.Fatalf("permissive should allow off-table transition and flag it")
	}
	allowed, offTable = TransitionStrict.Allows(constants.InquiryStatusClosed, constants.InquiryStatusNew)
	if allowed || !offTable {
		t.Fatalf("strict should reject off-table transition")
	}
	allowed, offTable = TransitionStrict.Allows(constants.InquiryStatusNew, constants.InquiryStatusResponded)
	if !allowed || offTable {
		t.Fatalf("strict should allow table transition")
	}
}

func TestInquiryValueValidation(t *testing.T) {
	for _, status := range []string{"new", "READ", "responded", "closed"} {
		if !IsValidInquiryStatus(status) {
			t.Fatalf("status %s should be valid", status)
		}
	}
	if IsValidInquiryStatus("archived") {
		t.Fatalf("archived should be invalid")
	}
	if !IsValidUrgencyLevel("urgent") || IsValidUrgencyLevel("critical") {
		t.Fatalf("urgency validation mismatch")
	}
}
