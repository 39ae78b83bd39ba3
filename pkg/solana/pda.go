package solana

import (
	"errors"
	"math"

	"filippo.io/edwards25519"
	"github.com/minio/sha256-simd"
)

const MaxSeeds = 16
const MaxSeedLen = 32
const PublicKeyLength = 32
const PdaMarker = "ProgramDerivedAddress"

var (
	ErrMaxSeeds            = errors.New("Max seeds (16) exceeded")
	ErrSeedLength          = errors.New("Max seed length (32) exceeded")
	ErrAddressLength       = errors.New("Wrong key length; addresses are 32 bytes long")
	ErrOnCurveInvalidSeeds = errors.New("Invalid seeds - generated address must be off-curve")
	ErrNoValidAddress      = errors.New("Unable to find a viable program address bump seed")
)

func CreateProgramAddressBytes(seeds [][]byte, programID []byte) ([]byte, error) {
	if len(seeds) > MaxSeeds {
		return nil, ErrMaxSeeds
	}

	if len(programID) != PublicKeyLength {
		return nil, ErrAddressLength
	}

	hasher := sha256.New()
	for _, seed := range seeds {
		if len(seed) > MaxSeedLen {
			return nil, ErrSeedLength
		}
		hasher.Write(seed)
	}

	hasher.Write(programID)
	hasher.Write([]byte(PdaMarker))
	hash := hasher.Sum(nil)

	if IsOnCurve(hash) {
		return nil, ErrOnCurveInvalidSeeds
	}

	return hash, nil
}

// FindProgramAddressBytes searches bump seeds from 255 down to 0 and returns the
// first candidate address that lies off the ed25519 curve, along with its bump.
// Seed validation errors are returned as-is; exhausting every bump yields
// ErrNoValidAddress.
func FindProgramAddressBytes(seeds [][]byte, programID []byte) ([]byte, uint8, error) {
	if len(seeds) > MaxSeeds-1 {
		return nil, 0, ErrMaxSeeds
	}

	seedsWithBump := make([][]byte, len(seeds)+1)
	copy(seedsWithBump, seeds)

	for bump := math.MaxUint8; bump >= 0; bump-- {
		bumpSeed := uint8(bump)
		seedsWithBump[len(seeds)] = []byte{bumpSeed}

		addr, err := CreateProgramAddressBytes(seedsWithBump, programID)
		if err == nil {
			return addr, bumpSeed, nil
		}
		if err != ErrOnCurveInvalidSeeds {
			return nil, 0, err
		}
	}

	return nil, 0, ErrNoValidAddress
}

// FindProgramAddress is FindProgramAddressBytes over fixed-size keys.
func FindProgramAddress(seeds [][]byte, programID [32]byte) ([32]byte, uint8, error) {
	var out [32]byte
	addr, bump, err := FindProgramAddressBytes(seeds, programID[:])
	if err != nil {
		return out, 0, err
	}
	copy(out[:], addr)
	return out, bump, nil
}

// IsOnCurve checks if 'b' is on the ed25519 curve
func IsOnCurve(b []byte) bool {
	_, err := new(edwards25519.Point).SetBytes(b)
	onCurve := err == nil
	return onCurve
}
