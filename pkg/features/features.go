package features

import (
	"fmt"
	"sort"

	"github.com/Overclock-Validator/notepad/pkg/base58"
)

type featureStatus struct {
	gate           FeatureGate
	activationSlot uint64
}

// Features is the set of feature gates active for a ledger.
type Features struct {
	enabled map[[32]byte]featureStatus
}

func NewFeaturesDefault() *Features {
	return &Features{enabled: make(map[[32]byte]featureStatus)}
}

func (f *Features) EnableFeature(gate FeatureGate, activationSlot uint64) {
	if f.enabled == nil {
		f.enabled = make(map[[32]byte]featureStatus)
	}
	f.enabled[gate.Address] = featureStatus{gate: gate, activationSlot: activationSlot}
}

func (f *Features) DisableFeature(gate FeatureGate) {
	delete(f.enabled, gate.Address)
}

func (f *Features) IsActive(gate FeatureGate) bool {
	if f == nil {
		return false
	}
	_, ok := f.enabled[gate.Address]
	return ok
}

func (f *Features) ActivationSlot(gate FeatureGate) (uint64, bool) {
	status, ok := f.enabled[gate.Address]
	return status.activationSlot, ok
}

func (f *Features) AllEnabled() []string {
	var list []string
	for _, status := range f.enabled {
		list = append(list, fmt.Sprintf("feature %s (%s) enabled", status.gate.Name, base58.Encode(status.gate.Address[:])))
	}
	sort.Strings(list)
	return list
}
