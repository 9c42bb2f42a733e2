package firehose

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/de-tools/log-enricher/pkg/models/domain"
	"github.com/de-tools/log-enricher/pkg/services/transform"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockTransformer struct {
	mock.Mock
}

func (m *mockTransformer) Transform(ctx context.Context, records []transform.Record) []transform.Result {
	args := m.Called(ctx, records)
	return args.Get(0).([]transform.Result)
}

func TestHandler_Handle(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	transformer := new(mockTransformer)
	transformer.On("Transform", mock.Anything, []transform.Record{
		{RecordID: "a", Data: []byte("in-a")},
		{RecordID: "b", Data: []byte("in-b")},
	}).Return([]transform.Result{
		{RecordID: "a", Result: transform.ResultOk, Data: []byte("out-a")},
		{RecordID: "b", Result: transform.ResultDropped, Data: []byte("in-b")},
	})

	handler := NewHandler(logger, transformer)
	resp, err := handler.Handle(context.Background(), events.KinesisFirehoseEvent{
		InvocationID: "invocation",
		Records: []events.KinesisFirehoseEventRecord{
			{RecordID: "a", Data: []byte("in-a")},
			{RecordID: "b", Data: []byte("in-b")},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, []events.KinesisFirehoseResponseRecord{
		{RecordID: "a", Result: events.KinesisFirehoseTransformedStateOk, Data: []byte("out-a")},
		{RecordID: "b", Result: events.KinesisFirehoseTransformedStateDropped, Data: []byte("in-b")},
	}, resp.Records)
	transformer.AssertExpectations(t)
}

func TestHandler_Handle_DecodesEnvelopeFromJSON(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	transformer := new(mockTransformer)
	transformer.On("Transform", mock.Anything, []transform.Record{{RecordID: "r1", Data: []byte("hello\n")}}).
		Return([]transform.Result{{RecordID: "r1", Result: transform.ResultOk, Data: []byte("bye\n")}})

	var event events.KinesisFirehoseEvent
	payload := `{"invocationId":"i","records":[{"recordId":"r1","data":"aGVsbG8K"}]}`
	require.NoError(t, json.Unmarshal([]byte(payload), &event))

	resp, err := NewHandler(logger, transformer).Handle(context.Background(), event)
	require.NoError(t, err)

	out, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded struct {
		Records []map[string]any `json:"records"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Len(t, decoded.Records, 1)
	assert.Equal(t, "r1", decoded.Records[0]["recordId"])
	assert.Equal(t, "Ok", decoded.Records[0]["result"])
	assert.Equal(t, "YnllCg==", decoded.Records[0]["data"])
}

func TestUnavailable(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	handle := Unavailable(logger, &domain.ConfigurationError{Key: "ENVIRONMENT", Reason: "environment is required"})

	resp, err := handle(context.Background(), events.KinesisFirehoseEvent{
		Records: []events.KinesisFirehoseEventRecord{{RecordID: "a", Data: []byte("x")}},
	})

	require.NoError(t, err)
	assert.NotNil(t, resp.Records)
	assert.Empty(t, resp.Records)

	out, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"records":[]}`, string(out))
}

func TestUnavailable_AcceptsAnyError(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	resp, err := Unavailable(logger, errors.New("no region"))(context.Background(), events.KinesisFirehoseEvent{})

	require.NoError(t, err)
	assert.Empty(t, resp.Records)
}
