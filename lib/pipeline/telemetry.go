package pipeline

import (
	"headlinewatch/lib/telemetry"
)

var tracer = telemetry.Tracer("headlinewatch.lib.pipeline")
