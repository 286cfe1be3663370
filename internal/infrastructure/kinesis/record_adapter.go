package kinesis

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/example/ec-showcase/internal/infrastructure/kafka"
)

// ConvertFromKinesisRecord decodes the event carried by a Kinesis record.
// Records hold either an event envelope written directly to the stream or
// a DynamoDB Streams record of the catalog change table. A nil event with
// a nil error means the record carries nothing to project.
func ConvertFromKinesisRecord(record events.KinesisEventRecord) (*kafka.Event, error) {
	var probe struct {
		EventName string `json:"eventName"`
		EventType string `json:"event_type"`
	}
	if err := json.Unmarshal(record.Kinesis.Data, &probe); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record data: %w", err)
	}

	if probe.EventName == "" {
		event, err := kafka.DecodeEvent(record.Kinesis.Data)
		if err != nil {
			return nil, err
		}
		if err := validate(&event); err != nil {
			return nil, err
		}
		return &event, nil
	}

	var dynamoDBRecord events.DynamoDBEventRecord
	if err := json.Unmarshal(record.Kinesis.Data, &dynamoDBRecord); err != nil {
		return nil, fmt.Errorf("failed to unmarshal DynamoDB record: %w", err)
	}
	return ConvertFromDynamoDBStreamRecord(dynamoDBRecord)
}

// ConvertFromDynamoDBStreamRecord converts an INSERT into the change table.
// Other stream operations are skipped.
func ConvertFromDynamoDBStreamRecord(record events.DynamoDBEventRecord) (*kafka.Event, error) {
	if record.EventName != "INSERT" {
		return nil, nil
	}
	return convertDynamoDBImage(record.Change.NewImage)
}

func convertDynamoDBImage(image map[string]events.DynamoDBAttributeValue) (*kafka.Event, error) {
	if image == nil {
		return nil, fmt.Errorf("DynamoDB image is nil")
	}

	event := &kafka.Event{}
	if v, ok := image["id"]; ok {
		event.ID = v.String()
	}
	if v, ok := image["aggregate_id"]; ok {
		event.AggregateID = v.String()
	}
	if v, ok := image["aggregate_type"]; ok {
		event.AggregateType = v.String()
	}
	if v, ok := image["event_type"]; ok {
		event.EventType = v.String()
	}
	if v, ok := image["data"]; ok {
		event.Data = json.RawMessage(v.String())
	}
	if v, ok := image["created_at"]; ok {
		t, err := time.Parse(time.RFC3339Nano, v.String())
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		event.Timestamp = t
	}

	if err := validate(event); err != nil {
		return nil, err
	}
	return event, nil
}

func validate(event *kafka.Event) error {
	if event.ID == "" || event.AggregateID == "" || event.EventType == "" {
		return fmt.Errorf("missing required fields: id=%s, aggregate_id=%s, event_type=%s",
			event.ID, event.AggregateID, event.EventType)
	}
	return nil
}

// BatchConvertFromKinesisEvent converts every record of a Kinesis event.
// It returns the converted events and one error per failed record.
func BatchConvertFromKinesisEvent(kinesisEvent events.KinesisEvent) ([]*kafka.Event, []error) {
	var eventList []*kafka.Event
	var errs []error

	for _, record := range kinesisEvent.Records {
		event, err := ConvertFromKinesisRecord(record)
		if err != nil {
			errs = append(errs, fmt.Errorf("record %s: %w", record.EventID, err))
			continue
		}
		if event != nil {
			eventList = append(eventList, event)
		}
	}

	return eventList, errs
}
