package signer

import "testing"

func TestIsValidTransition(t *testing.T) {
	cases := []struct {
		from, to State
		want     bool
	}{
		{Idle, DkgPublicDistribute, true},
		{Idle, SignGather, true},
		{Idle, DkgPrivateGather, false},
		{DkgPublicDistribute, DkgPublicGather, true},
		{DkgPublicDistribute, Idle, false},
		{DkgPublicGather, DkgPrivateDistribute, true},
		{DkgPublicGather, DkgPublicDistribute, true},
		{DkgPrivateDistribute, DkgPrivateGather, true},
		{DkgPrivateDistribute, DkgPublicDistribute, true},
		{DkgPrivateGather, Idle, true},
		{DkgPrivateGather, DkgPublicDistribute, false},
		{SignGather, Signed, true},
		{Signed, Idle, false},
		{Signed, SignGather, false},
	}

	for _, c := range cases {
		got := isValidTransition(c.from, c.to)
		if got != c.want {
			t.Errorf("isValidTransition(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestStateString(t *testing.T) {
	if Idle.String() != "Idle" {
		t.Errorf("Idle.String() = %q", Idle.String())
	}
	if State(99).String() != "Unknown" {
		t.Errorf("unknown state should stringify as Unknown")
	}
}
