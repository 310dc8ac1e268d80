package main

import (
	"context"
	"log"
	"os"

	"serial-monitor/cmd"
	"serial-monitor/pkg/app"

	"pkt.systems/psi"
	"pkt.systems/pslog"
)

func main() {
	psi.Run(submain)
}

func submain(ctx context.Context) int {
	logger := pslog.LoggerFromEnv(
		pslog.WithEnvWriter(os.Stderr),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeConsole}),
	)
	ctx = pslog.ContextWithLogger(ctx, logger)
	log.SetOutput(pslog.LogLogger(logger).Writer())
	log.SetFlags(0)

	root := cmd.NewRootCmd()
	root.SetArgs(os.Args[1:])

	if err := root.ExecuteContext(ctx); err != nil {
		l := pslog.Ctx(ctx).With("err", err)
		if typ, ok := app.TypeOf(err); ok {
			l = l.With("type", typ.String())
		}
		l.Error("serial-monitor failed")
		return 1
	}
	return 0
}
