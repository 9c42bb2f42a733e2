package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/aws/aws-lambda-go/events"
)

const (
	FormatTable = "table"
	FormatJSON  = "json"
)

type TableConfig struct {
	RecordIDWidth int
	ResultWidth   int
	EntriesWidth  int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		RecordIDWidth: 40,
		ResultWidth:   8,
		EntriesWidth:  8,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

type row struct {
	RecordID string
	Result   string
	Entries  int
	Lines    []string
}

func (c *Reporter) Handle(response events.KinesisFirehoseResponse, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(c.writer)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	case FormatTable, "":
		return c.table(response)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func (c *Reporter) table(response events.KinesisFirehoseResponse) error {
	rows := make([]row, 0, len(response.Records))
	for _, r := range response.Records {
		var lines []string
		if r.Result == events.KinesisFirehoseTransformedStateOk {
			for _, line := range bytes.Split(r.Data, []byte("\n")) {
				if len(line) > 0 {
					lines = append(lines, string(line))
				}
			}
		}
		rows = append(rows, row{RecordID: r.RecordID, Result: r.Result, Entries: len(lines), Lines: lines})
	}

	funcMap := template.FuncMap{
		"formatRow": func(id string, result string, entries interface{}) string {
			return fmt.Sprintf("| %-*s | %-*s | %-*v |",
				c.config.RecordIDWidth, id,
				c.config.ResultWidth, result,
				c.config.EntriesWidth, entries)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+",
				strings.Repeat("-", c.config.RecordIDWidth+2),
				strings.Repeat("-", c.config.ResultWidth+2),
				strings.Repeat("-", c.config.EntriesWidth+2))
		},
	}

	tmpl := `{{separator}}
{{formatRow "Record ID" "Result" "Entries"}}
{{separator}}
{{range .}}{{formatRow .RecordID .Result .Entries}}
{{end}}{{separator}}
{{range .}}{{if .Lines}}
=== {{.RecordID}} ===
{{range .Lines}}{{.}}
{{end}}{{end}}{{end}}`

	t, err := template.New("replay").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, rows)
}
