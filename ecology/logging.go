package ecology

import (
	"io"

	"github.com/rs/zerolog"
)

// newDiscardLogger builds a zerolog.Logger that writes nowhere, so a Grid
// constructed without an explicit SetLogger call incurs no logging cost and
// needs no setup from library callers.
func newDiscardLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

// SetLogger installs a logger the grid uses for per-tick summaries and
// fatal invariant reports. Pass a console-pretty logger from a CLI
// collaborator, or leave the default discard logger in library use.
func (g *Grid) SetLogger(logger zerolog.Logger) {
	g.logger = logger
}

// logTickSummary emits one structured Info event per tick with the counters
// a host would otherwise have to poll GetStats for.
func (g *Grid) logTickSummary() {
	g.logger.Info().
		Int("generation", g.Generation).
		Int("population", g.livingCount()).
		Int("species", g.Registry.Extant()).
		Int("births", g.BirthsThisTick).
		Int("deaths", g.DeathsThisTick).
		Int("mutations", g.MutationsThisTick).
		Msg("tick complete")
}
