package core

import (
	"context"
	"log/slog"

	"github.com/sarchlab/qasm2qir/qir"
)

const (
	LevelTrace slog.Level = slog.LevelInfo + 1
)

// Trace logs a translation event at LevelTrace.
func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

func operandNames(inst qir.Instruction) []string {
	refs := inst.Operands()
	names := make([]string, len(refs))
	for i, r := range refs {
		names[i] = r.QIRName()
	}
	return names
}
