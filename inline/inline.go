package inline

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/playdeck/playdeck/log"
)

// Run writes the current snapshot, then one frame per engine change until
// ctx is cancelled or the engine stops. Lines read from In are applied as
// commands; a bad line produces an error frame and the stream goes on.
func Run(ctx context.Context, options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	enc := &encoder{out: options.Out, pretty: options.Pretty}
	engine := options.Engine

	if err := enc.snapshot(engine.Snapshot(), false); err != nil {
		return err
	}

	var lines <-chan string
	if options.In != nil {
		lines = readLines(ctx, options.In)
	}

	for {
		select {
		case <-ctx.Done():
			return enc.snapshot(engine.Snapshot(), true)
		case <-engine.Done():
			return enc.snapshot(engine.Snapshot(), true)
		case <-engine.Changes():
			if err := enc.snapshot(engine.Snapshot(), false); err != nil {
				return err
			}
		case line, ok := <-lines:
			if !ok {
				lines = nil
				continue
			}

			command, err := ParseCommand(line)
			if err != nil {
				log.Warnf("inline: %v", err)
				if err := enc.write(Output{Error: err.Error()}); err != nil {
					return err
				}
				continue
			}

			command(engine, options.Keys)
		}
	}
}

// readLines forwards non-empty lines until in is exhausted or ctx ends.
func readLines(ctx context.Context, in io.Reader) <-chan string {
	lines := make(chan string)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				continue
			}

			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil {
			log.Warnf("inline: read commands: %v", err)
		}
	}()

	return lines
}
