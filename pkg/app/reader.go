package app

import (
	"context"
	"errors"
	"io"

	"pkt.systems/pslog"
)

// LineReader is the read half of the transport
type LineReader interface {
	ReadLine() (string, error)
}

// RunReader forwards lines from conn to out until the transport ends.
// It emits exactly one SerialClosed or SerialError event before returning,
// unless ctx is cancelled first. Sends never block past cancellation.
func RunReader(ctx context.Context, conn LineReader, out chan<- SerialEvent) {
	log := pslog.Ctx(ctx)

	for {
		line, err := conn.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Debug("serial reader reached end of stream")
				send(ctx, out, ClosedEvent())
				return
			}
			log.Warn("serial reader failed", "err", err)
			send(ctx, out, ErrorEvent(err))
			return
		}

		log.Trace("serial line received", "bytes", len(line))
		if !send(ctx, out, DataEvent(line)) {
			return
		}
	}
}

func send(ctx context.Context, out chan<- SerialEvent, ev SerialEvent) bool {
	select {
	case out <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
