package translate

import (
	"headlinewatch/lib/restyutil"
	"headlinewatch/lib/telemetry"
)

var tracer = telemetry.Tracer("headlinewatch.lib.translate")

var restyInstrumentOutput restyutil.InstrumentOutput

// SetRestyInstrumentOutput enables http message dumps for clients
// created after this call.
func SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	restyInstrumentOutput = out
}
