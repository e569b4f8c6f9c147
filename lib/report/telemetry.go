package report

import (
	"headlinewatch/lib/telemetry"
)

var tracer = telemetry.Tracer("headlinewatch.lib.report")
