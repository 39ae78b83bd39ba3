package sealevel

import "errors"

// instruction errors
var (
	InstrErrInvalidArgument             = errors.New("InstrErrInvalidArgument")
	InstrErrInvalidInstructionData      = errors.New("InstrErrInvalidInstructionData")
	InstrErrInvalidAccountData          = errors.New("InstrErrInvalidAccountData")
	InstrErrAccountDataTooSmall         = errors.New("InstrErrAccountDataTooSmall")
	InstrErrInsufficientFunds           = errors.New("InstrErrInsufficientFunds")
	InstrErrIncorrectProgramId          = errors.New("InstrErrIncorrectProgramId")
	InstrErrMissingRequiredSignature    = errors.New("InstrErrMissingRequiredSignature")
	InstrErrAccountAlreadyInitialized   = errors.New("InstrErrAccountAlreadyInitialized")
	InstrErrUninitializedAccount        = errors.New("InstrErrUninitializedAccount")
	InstrErrUnbalancedInstruction       = errors.New("InstrErrUnbalancedInstruction")
	InstrErrModifiedProgramId           = errors.New("InstrErrModifiedProgramId")
	InstrErrExternalAccountLamportSpend = errors.New("InstrErrExternalAccountLamportSpend")
	InstrErrExternalAccountDataModified = errors.New("InstrErrExternalAccountDataModified")
	InstrErrReadonlyLamportChange       = errors.New("InstrErrReadonlyLamportChange")
	InstrErrReadonlyDataModified        = errors.New("InstrErrReadonlyDataModified")
	InstrErrNotEnoughAccountKeys        = errors.New("InstrErrNotEnoughAccountKeys")
	InstrErrAccountDataSizeChanged      = errors.New("InstrErrAccountDataSizeChanged")
	InstrErrAccountNotExecutable        = errors.New("InstrErrAccountNotExecutable")
	InstrErrAccountBorrowOutstanding    = errors.New("InstrErrAccountBorrowOutstanding")
	InstrErrExecutableDataModified      = errors.New("InstrErrExecutableDataModified")
	InstrErrExecutableLamportChange     = errors.New("InstrErrExecutableLamportChange")
	InstrErrUnsupportedProgramId        = errors.New("InstrErrUnsupportedProgramId")
	InstrErrCallDepth                   = errors.New("InstrErrCallDepth")
	InstrErrMissingAccount              = errors.New("InstrErrMissingAccount")
	InstrErrReentrancyNotAllowed        = errors.New("InstrErrReentrancyNotAllowed")
	InstrErrComputationalBudgetExceeded = errors.New("InstrErrComputationalBudgetExceeded")
	InstrErrPrivilegeEscalation         = errors.New("InstrErrPrivilegeEscalation")
	InstrErrInvalidAccountOwner         = errors.New("InstrErrInvalidAccountOwner")
	InstrErrArithmeticOverflow          = errors.New("InstrErrArithmeticOverflow")
	InstrErrInvalidRealloc              = errors.New("InstrErrInvalidRealloc")
	InstrErrMaxInstructionTraceLength   = errors.New("InstrErrMaxInstructionTraceLengthExceeded")
)

// instruction errors - Solana numerical error codes
const (
	InstrErrCodeSuccess                     = 0
	InstrErrCodeInvalidArgument             = 2
	InstrErrCodeInvalidInstructionData      = 3
	InstrErrCodeInvalidAccountData          = 4
	InstrErrCodeAccountDataTooSmall         = 5
	InstrErrCodeInsufficientFunds           = 6
	InstrErrCodeIncorrectProgramId          = 7
	InstrErrCodeMissingRequiredSignature    = 8
	InstrErrCodeAccountAlreadyInitialized   = 9
	InstrErrCodeUninitializedAccount        = 10
	InstrErrCodeUnbalancedInstruction       = 11
	InstrErrCodeModifiedProgramId           = 12
	InstrErrCodeExternalAccountLamportSpend = 13
	InstrErrCodeExternalAccountDataModified = 14
	InstrErrCodeReadonlyLamportChange       = 15
	InstrErrCodeReadonlyDataModified        = 16
	InstrErrCodeNotEnoughAccountKeys        = 20
	InstrErrCodeAccountDataSizeChanged      = 21
	InstrErrCodeAccountNotExecutable        = 22
	InstrErrCodeAccountBorrowOutstanding    = 24
	InstrErrCodeCustom                      = 25
	InstrErrCodeExecutableDataModified      = 28
	InstrErrCodeExecutableLamportChange     = 29
	InstrErrCodeUnsupportedProgramId        = 32
	InstrErrCodeCallDepth                   = 33
	InstrErrCodeMissingAccount              = 34
	InstrErrCodeReentrancyNotAllowed        = 35
	InstrErrCodeComputationalBudgetExceeded = 38
	InstrErrCodePrivilegeEscalation         = 39
	InstrErrCodeInvalidAccountOwner         = 47
	InstrErrCodeArithmeticOverflow          = 48
	InstrErrCodeInvalidRealloc              = 51
	InstrErrCodeMaxInstructionTraceLength   = 52
)

func TranslateErrToInstrErrCode(err error) int {
	var errorCode int
	switch err {
	case nil:
		errorCode = InstrErrCodeSuccess
	case InstrErrInvalidArgument:
		errorCode = InstrErrCodeInvalidArgument
	case InstrErrInvalidInstructionData:
		errorCode = InstrErrCodeInvalidInstructionData
	case InstrErrInvalidAccountData:
		errorCode = InstrErrCodeInvalidAccountData
	case InstrErrAccountDataTooSmall:
		errorCode = InstrErrCodeAccountDataTooSmall
	case InstrErrInsufficientFunds:
		errorCode = InstrErrCodeInsufficientFunds
	case InstrErrIncorrectProgramId:
		errorCode = InstrErrCodeIncorrectProgramId
	case InstrErrMissingRequiredSignature:
		errorCode = InstrErrCodeMissingRequiredSignature
	case InstrErrAccountAlreadyInitialized:
		errorCode = InstrErrCodeAccountAlreadyInitialized
	case InstrErrUninitializedAccount:
		errorCode = InstrErrCodeUninitializedAccount
	case InstrErrUnbalancedInstruction:
		errorCode = InstrErrCodeUnbalancedInstruction
	case InstrErrModifiedProgramId:
		errorCode = InstrErrCodeModifiedProgramId
	case InstrErrExternalAccountLamportSpend:
		errorCode = InstrErrCodeExternalAccountLamportSpend
	case InstrErrExternalAccountDataModified:
		errorCode = InstrErrCodeExternalAccountDataModified
	case InstrErrReadonlyLamportChange:
		errorCode = InstrErrCodeReadonlyLamportChange
	case InstrErrReadonlyDataModified:
		errorCode = InstrErrCodeReadonlyDataModified
	case InstrErrNotEnoughAccountKeys:
		errorCode = InstrErrCodeNotEnoughAccountKeys
	case InstrErrAccountDataSizeChanged:
		errorCode = InstrErrCodeAccountDataSizeChanged
	case InstrErrAccountNotExecutable:
		errorCode = InstrErrCodeAccountNotExecutable
	case InstrErrAccountBorrowOutstanding:
		errorCode = InstrErrCodeAccountBorrowOutstanding
	case InstrErrExecutableDataModified:
		errorCode = InstrErrCodeExecutableDataModified
	case InstrErrExecutableLamportChange:
		errorCode = InstrErrCodeExecutableLamportChange
	case InstrErrUnsupportedProgramId:
		errorCode = InstrErrCodeUnsupportedProgramId
	case InstrErrCallDepth:
		errorCode = InstrErrCodeCallDepth
	case InstrErrMissingAccount:
		errorCode = InstrErrCodeMissingAccount
	case InstrErrReentrancyNotAllowed:
		errorCode = InstrErrCodeReentrancyNotAllowed
	case InstrErrComputationalBudgetExceeded:
		errorCode = InstrErrCodeComputationalBudgetExceeded
	case InstrErrPrivilegeEscalation:
		errorCode = InstrErrCodePrivilegeEscalation
	case InstrErrInvalidAccountOwner:
		errorCode = InstrErrCodeInvalidAccountOwner
	case InstrErrArithmeticOverflow:
		errorCode = InstrErrCodeArithmeticOverflow
	case InstrErrInvalidRealloc:
		errorCode = InstrErrCodeInvalidRealloc
	case InstrErrMaxInstructionTraceLength:
		errorCode = InstrErrCodeMaxInstructionTraceLength
	default:
		errorCode = InstrErrCodeCustom
	}
	return errorCode
}
