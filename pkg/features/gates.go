package features

import (
	"github.com/Overclock-Validator/notepad/pkg/base58"
)

type FeatureGate struct {
	Name    string
	Address [32]byte
}

// DelegatedNoteModify lets the stored owner of a note modify it even when the
// note address does not derive from the signer.
var DelegatedNoteModify = FeatureGate{Name: "DelegatedNoteModify", Address: base58.MustDecodeFromString("7HXCuZaFCU9wPshMHYkp8ahPv8WTe5mRV6AkSbbVyp2b")}

var AllFeatureGates = []FeatureGate{DelegatedNoteModify}
