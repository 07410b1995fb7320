package audit

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/json"
	"time"
)

type signaturePayload struct {
	EntryID    string `json:"entryId"`
	EntityType string `json:"entityType"`
	EntityID   string `json:"entityId"`
	Action     string `json:"action"`
	Actor      string `json:"actor"`
	Reason     string `json:"reason,omitempty"`
	CreatedAt  string `json:"createdAt"`
}

func buildSignaturePayload(e *Entry) signaturePayload {
	return signaturePayload{
		EntryID:    e.EntryID.String(),
		EntityType: string(e.EntityType),
		EntityID:   e.EntityID,
		Action:     string(e.Action),
		Actor:      e.Actor,
		Reason:     e.Reason,
		CreatedAt:  e.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// SignEntry generates an HMAC signature for the entry.
func SignEntry(e *Entry, key []byte) ([]byte, error) {
	data, err := json.Marshal(buildSignaturePayload(e))
	if err != nil {
		return nil, err
	}
	mac := hmac.New(sha256.New, key)
	_, _ = mac.Write(data)
	return mac.Sum(nil), nil
}

// VerifyEntrySignature verifies the HMAC signature for the entry.
func VerifyEntrySignature(e *Entry, key []byte) (bool, error) {
	if len(e.Signature) == 0 {
		return false, nil
	}
	expected, err := SignEntry(e, key)
	if err != nil {
		return false, err
	}
	return hmac.Equal(expected, e.Signature), nil
}
