package main

import (
	"context"
	"webtable/cmd/webtable/commands"
	"webtable/lib/telemetry"
)

func main() {
	telemetry.SetupFromEnv(context.Background(), "webtable")
	commands.ExecuteContext(context.Background())
}
