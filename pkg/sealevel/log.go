package sealevel

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"k8s.io/klog/v2"
)

type Logger interface {
	Log(s string)
}

type LogRecorder struct {
	Logs []string
}

func (r *LogRecorder) Log(s string) {
	r.Logs = append(r.Logs, s)
}

func (execCtx *ExecutionCtx) log(msg string) {
	klog.V(2).Info(msg)
	if execCtx.Log != nil {
		execCtx.Log.Log(msg)
	}
}

// ProgramLog records a program log line, the msg! equivalent for native programs.
func (execCtx *ExecutionCtx) ProgramLog(format string, a ...any) {
	execCtx.log("Program log: " + fmt.Sprintf(format, a...))
}

func (execCtx *ExecutionCtx) logInvoke(programId solana.PublicKey, height uint64) {
	execCtx.log(fmt.Sprintf("Program %s invoke [%d]", programId, height))
}

func (execCtx *ExecutionCtx) logConsumed(programId solana.PublicKey, consumed uint64, remainingPrev uint64) {
	execCtx.log(fmt.Sprintf("Program %s consumed %d of %d compute units", programId, consumed, remainingPrev))
}

func (execCtx *ExecutionCtx) logResult(programId solana.PublicKey, err error) {
	if err != nil {
		execCtx.log(fmt.Sprintf("Program %s failed: %s", programId, err))
	} else {
		execCtx.log(fmt.Sprintf("Program %s success", programId))
	}
}
