package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/nstehr/trinity/trinity-core/model"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	result := CombatResult{
		Attacker:         "Swordsman",
		Defender:         "Warrior",
		AttackerCiv:      "Rome",
		DefenderCiv:      "Carthage",
		Location:         model.Hex{Q: 1, R: 0},
		DamageToAttacker: 16,
		DamageToDefender: 35,
	}

	var buf bytes.Buffer
	if err := WriteEnvelopeTo(&buf, TypeCombat, result); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	env, err := ReadEnvelope(&buf)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if env.Type != TypeCombat {
		t.Errorf("type = %q, want %q", env.Type, TypeCombat)
	}

	var decoded CombatResult
	if err := json.Unmarshal(env.Data, &decoded); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if decoded != result {
		t.Errorf("round trip mismatch: %+v vs %+v", decoded, result)
	}
}

func TestEnvelopeMultipleFrames(t *testing.T) {
	var buf bytes.Buffer
	for i := 0; i < 3; i++ {
		if err := WriteEnvelopeTo(&buf, TypeNotification, CivNotification{Civ: "Rome"}); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i < 3; i++ {
		env, err := ReadEnvelope(&buf)
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		if env.Type != TypeNotification {
			t.Errorf("frame %d type = %q", i, env.Type)
		}
	}
}

func TestReadEnvelopeRejectsBadLength(t *testing.T) {
	// Zero-length frame.
	if _, err := ReadEnvelope(bytes.NewReader([]byte{0, 0, 0, 0})); err == nil {
		t.Error("expected error for zero-length frame")
	}
	// Length far beyond the 1MB guard.
	if _, err := ReadEnvelope(bytes.NewReader([]byte{0xff, 0xff, 0xff, 0xff})); err == nil {
		t.Error("expected error for oversized frame")
	}
}

func TestReadEnvelopeTruncatedPayload(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteEnvelopeTo(&buf, TypeDetonation, Detonation{Weapon: "Atomic Bomb"}); err != nil {
		t.Fatal(err)
	}
	truncated := buf.Bytes()[:buf.Len()-2]
	if _, err := ReadEnvelope(bytes.NewReader(truncated)); err == nil {
		t.Error("expected error for truncated payload")
	}
}
