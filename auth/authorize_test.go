package auth

import "testing"

func TestCanModify(t *testing.T) {
	if !CanModify(1, 1) {
		t.Error("CanModify(1, 1) = false, want true")
	}
	if CanModify(1, 2) {
		t.Error("CanModify(1, 2) = true, want false")
	}
	if CanModify(0, 0) != true {
		t.Error("CanModify(0, 0) = false, want true")
	}
}
