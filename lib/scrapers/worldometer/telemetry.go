package worldometer

import (
	"webtable/lib/restyutil"
	"webtable/lib/telemetry"

	"github.com/go-resty/resty/v2"
)

var tracer = telemetry.Tracer("webtable.lib.scrapers.worldometer")

var client = resty.New()

func SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	client = resty.New()
	restyutil.InstrumentClient(client, tracer, out)
}
