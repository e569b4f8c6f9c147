package elpais

import (
	"headlinewatch/lib/restyutil"
	"headlinewatch/lib/telemetry"
)

var tracer = telemetry.Tracer("headlinewatch.lib.scrapers.elpais")

var restyInstrumentOutput restyutil.InstrumentOutput

// SetRestyInstrumentOutput enables http message dumps for image
// fetchers created after this call.
func SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	restyInstrumentOutput = out
}
