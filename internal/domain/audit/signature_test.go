package audit

import "testing"

func TestSignAndVerifyEntry(t *testing.T) {
	key := []byte("test-signing-key")
	entry := NewEntry(EntityTypeTransaction, "tx-1", ActionAcceptRequest, "user:lender", "request accepted")

	sig, err := SignEntry(entry, key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	entry.Signature = sig

	ok, err := VerifyEntrySignature(entry, key)
	if err != nil || !ok {
		t.Fatalf("expected valid signature, ok=%v err=%v", ok, err)
	}

	entry.Actor = "user:someone-else"
	ok, err = VerifyEntrySignature(entry, key)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if ok {
		t.Fatal("expected tampered entry to fail verification")
	}
}

func TestVerifyEntryWithoutSignature(t *testing.T) {
	entry := NewEntry(EntityTypeUser, "u-1", ActionLogin, "user:alice", "")
	ok, err := VerifyEntrySignature(entry, []byte("key"))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if ok {
		t.Fatal("unsigned entry must not verify")
	}
}
