package notepad

import "errors"

var (
	NotepadErrUnknownInstruction = errors.New("NotepadErrUnknownInstruction")
	NotepadErrSchemaMismatch     = errors.New("NotepadErrSchemaMismatch")
	NotepadErrAddressMismatch    = errors.New("NotepadErrAddressMismatch")
	NotepadErrAlreadyExists      = errors.New("NotepadErrAlreadyExists")
	NotepadErrNotFound           = errors.New("NotepadErrNotFound")
	NotepadErrUnauthorized       = errors.New("NotepadErrUnauthorized")
	NotepadErrCapacityExceeded   = errors.New("NotepadErrCapacityExceeded")
	NotepadErrNoValidAddress     = errors.New("NotepadErrNoValidAddress")
)

// custom program error codes
const (
	NotepadErrCodeUnknownInstruction = 0x100
	NotepadErrCodeSchemaMismatch     = 0x101
	NotepadErrCodeAddressMismatch    = 0x102
	NotepadErrCodeAlreadyExists      = 0x103
	NotepadErrCodeNotFound           = 0x104
	NotepadErrCodeUnauthorized       = 0x105
	NotepadErrCodeCapacityExceeded   = 0x106
	NotepadErrCodeNoValidAddress     = 0x107
)

// ErrorCode returns the custom program error code for a notepad error.
func ErrorCode(err error) (uint32, bool) {
	var code uint32
	switch err {
	case NotepadErrUnknownInstruction:
		code = NotepadErrCodeUnknownInstruction
	case NotepadErrSchemaMismatch:
		code = NotepadErrCodeSchemaMismatch
	case NotepadErrAddressMismatch:
		code = NotepadErrCodeAddressMismatch
	case NotepadErrAlreadyExists:
		code = NotepadErrCodeAlreadyExists
	case NotepadErrNotFound:
		code = NotepadErrCodeNotFound
	case NotepadErrUnauthorized:
		code = NotepadErrCodeUnauthorized
	case NotepadErrCapacityExceeded:
		code = NotepadErrCodeCapacityExceeded
	case NotepadErrNoValidAddress:
		code = NotepadErrCodeNoValidAddress
	default:
		return 0, false
	}
	return code, true
}

var errorMessages = map[error]string{
	NotepadErrUnknownInstruction: "Error: Unknown instruction",
	NotepadErrSchemaMismatch:     "Error: Data does not match the expected schema",
	NotepadErrAddressMismatch:    "Error: Note address does not match derived address",
	NotepadErrAlreadyExists:      "Error: Note already exists",
	NotepadErrNotFound:           "Error: Note does not exist",
	NotepadErrUnauthorized:       "Error: Not authorized to modify note!",
	NotepadErrCapacityExceeded:   "Error: Input bytes length is out of node account space limited!",
	NotepadErrNoValidAddress:     "Error: Unable to derive a note address",
}
