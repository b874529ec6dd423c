package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"smartpark/internal/data/entity"
	"smartpark/pkg/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"
)

type sqsAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSPublisher sends booking events to an SQS queue for downstream consumers.
type SQSPublisher struct {
	client   sqsAPI
	queueURL string
	log      *zap.Logger
}

func NewSQSPublisher(ctx context.Context, config utils.EventsConfig, log *zap.Logger) (*SQSPublisher, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(config.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return newSQSPublisher(sqs.NewFromConfig(awsCfg), config.SQSQueueURL, log), nil
}

func newSQSPublisher(client sqsAPI, queueURL string, log *zap.Logger) *SQSPublisher {
	return &SQSPublisher{
		client:   client,
		queueURL: queueURL,
		log:      log.With(zap.String("component", "sqs_publisher")),
	}
}

func (p *SQSPublisher) Publish(ctx context.Context, event entity.BookingEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode booking event: %w", err)
	}

	out, err := p.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"event_type": {DataType: aws.String("String"), StringValue: aws.String(string(event.Type))},
			"parking_id": {DataType: aws.String("String"), StringValue: aws.String(event.ParkingID)},
		},
	})
	if err != nil {
		return fmt.Errorf("send booking event %s: %w", event.BookingID, err)
	}

	p.log.Debug("Booking event sent",
		zap.String("booking_id", event.BookingID),
		zap.String("message_id", aws.ToString(out.MessageId)),
	)
	return nil
}
