package util

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/Overclock-Validator/notepad/pkg/accounts"
	"github.com/zeebo/blake3"
)

// CalculateAcctHash hashes every field of acct, including its key.
func CalculateAcctHash(acct accounts.Account) []byte {
	hasher := blake3.New()

	var lamportBytes [8]byte
	binary.LittleEndian.PutUint64(lamportBytes[:], acct.Lamports)
	_, _ = hasher.Write(lamportBytes[:])

	var rentEpochBytes [8]byte
	binary.LittleEndian.PutUint64(rentEpochBytes[:], acct.RentEpoch)
	_, _ = hasher.Write(rentEpochBytes[:])

	_, _ = hasher.Write(acct.Data)

	if acct.Executable {
		_, _ = hasher.Write([]byte{1})
	} else {
		_, _ = hasher.Write([]byte{0})
	}

	_, _ = hasher.Write(acct.Owner[:])
	_, _ = hasher.Write(acct.Key[:])

	return hasher.Sum(nil)
}

func PrettyPrintAcct(acct *accounts.Account) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "pubkey: %s\n", acct.Key)
	fmt.Fprintf(&sb, "owner: %s\n", acct.Owner)
	fmt.Fprintf(&sb, "lamports: %d\n", acct.Lamports)
	fmt.Fprintf(&sb, "executable: %t\n", acct.Executable)
	fmt.Fprintf(&sb, "data len: %d\n", len(acct.Data))
	fmt.Fprintf(&sb, "hash: %s", hex.EncodeToString(CalculateAcctHash(*acct)))
	return sb.String()
}
