package systems

import (
	"slices"
	"testing"

	"github.com/pthm-cable/cannon/telemetry"
)

func TestRegistryMatchesPerfPhases(t *testing.T) {
	reg := NewSystemRegistry()

	if got := reg.IDs(); !slices.Equal(got, telemetry.Phases) {
		t.Errorf("IDs() = %v, want %v", got, telemetry.Phases)
	}
}

func TestRegistryLookup(t *testing.T) {
	reg := NewSystemRegistry()

	if info, ok := reg.Get(telemetry.PhaseInterparticle); !ok || info.Category != "physics" {
		t.Errorf("Get(%q) = %+v, %v", telemetry.PhaseInterparticle, info, ok)
	}
	if name := reg.GetName(telemetry.PhaseCollide); name != "Floors" {
		t.Errorf("GetName(collide) = %q, want Floors", name)
	}
	if name := reg.GetName("unknown"); name != "unknown" {
		t.Errorf("GetName(unknown) = %q, want fallback to ID", name)
	}
	if n := len(reg.ByCategory("physics")); n != 3 {
		t.Errorf("physics phases = %d, want 3", n)
	}
}
