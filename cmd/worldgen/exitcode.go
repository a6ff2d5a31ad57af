package main

import (
	"errors"

	"github.com/gomgom50/aethelgard-worldgen/orchestrator"
)

// Exit codes per spec.md 6: "0 on successful final validation; 2 on
// validation failure after all retries; 3 on cancellation; 4 on invalid
// parameters."
const (
	exitOK                = 0
	exitValidationFailure = 2
	exitCancelled         = 3
	exitInvalidParameters = 4
)

func exitCodeFor(err error) int {
	if err == nil {
		return exitOK
	}
	var oerr *orchestrator.Error
	if errors.As(err, &oerr) {
		switch oerr.Kind {
		case orchestrator.ErrCancelled:
			return exitCancelled
		case orchestrator.ErrInvalidParameter, orchestrator.ErrTopologyConstruction:
			return exitInvalidParameters
		}
	}
	return exitValidationFailure
}
