package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/de-tools/log-enricher/pkg/handlers/firehose"
	"github.com/de-tools/log-enricher/pkg/runtime/terminal/export"
	"github.com/de-tools/log-enricher/pkg/services/transform"
	"github.com/spf13/cobra"
)

// Transformers resolves the transformer of a variant.
type Transformers interface {
	Get(variant string) (transform.Transformer, error)
	ListVariants() []string
}

// Loader builds the transformers once a command actually needs them.
type Loader func(ctx context.Context) (Transformers, error)

type ReplayCmd struct {
	variant   string
	eventPath string
	format    string
	timeout   time.Duration
	load      Loader
	reporter  *export.Reporter
}

func NewReplayCmd(load Loader, reporter *export.Reporter) *cobra.Command {
	rc := &ReplayCmd{load: load, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Run a Firehose transformation event through a transformer",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.variant, "variant", "", "Transformer variant (metrics or logs)")
	cmd.Flags().StringVar(&rc.eventPath, "event", "", "Path to a Firehose event JSON file, - for stdin")
	cmd.Flags().StringVar(&rc.format, "format", export.FormatTable, "Output format (table or json)")
	cmd.Flags().DurationVar(&rc.timeout, "timeout", 60*time.Second, "Maximum duration of the replay")

	_ = cmd.MarkFlagRequired("variant")
	_ = cmd.MarkFlagRequired("event")

	return cmd
}

func (rc *ReplayCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), rc.timeout)
	defer cancel()

	event, err := rc.readEvent(cmd.InOrStdin())
	if err != nil {
		return err
	}

	transformers, err := rc.load(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize transformers: %w", err)
	}

	transformer, err := transformers.Get(rc.variant)
	if err != nil {
		return fmt.Errorf("failed to get transformer: %w", err)
	}

	response := firehose.Invoke(ctx, transformer, event)
	return rc.reporter.Handle(response, rc.format)
}

func (rc *ReplayCmd) readEvent(stdin io.Reader) (events.KinesisFirehoseEvent, error) {
	var (
		data []byte
		err  error
	)
	if rc.eventPath == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(rc.eventPath)
	}
	if err != nil {
		return events.KinesisFirehoseEvent{}, fmt.Errorf("failed to read event %s: %w", rc.eventPath, err)
	}

	var event events.KinesisFirehoseEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return events.KinesisFirehoseEvent{}, fmt.Errorf("failed to parse event %s: %w", rc.eventPath, err)
	}
	return event, nil
}
