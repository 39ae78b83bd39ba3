package notepad

import (
	pda "github.com/Overclock-Validator/notepad/pkg/solana"
	"github.com/gagliardetto/solana-go"
)

func noteSeeds(authority solana.PublicKey, title string) [][]byte {
	return [][]byte{authority.Bytes(), []byte(title)}
}

// FindNoteAddress derives the address of the note titled title created by
// authority. Titles that cannot serve as a seed yield NotepadErrNoValidAddress.
func FindNoteAddress(authority solana.PublicKey, title string, programId solana.PublicKey) (solana.PublicKey, uint8, error) {
	addr, bump, err := pda.FindProgramAddress(noteSeeds(authority, title), programId)
	if err != nil {
		return solana.PublicKey{}, 0, NotepadErrNoValidAddress
	}
	return solana.PublicKey(addr), bump, nil
}
