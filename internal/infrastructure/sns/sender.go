package sns

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/crowdfund-dashboard/internal/domain"
)

type publishAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// BroadcastPublisher fans broadcast notifications out to an SNS topic so
// mobile push and e-mail subscribers receive them too.
type BroadcastPublisher struct {
	client   publishAPI
	topicARN string
}

// NewClient creates an SNS client, honouring a LocalStack endpoint when set.
func NewClient(awsCfg aws.Config, endpointURL string) *sns.Client {
	clientOpts := []func(*sns.Options){}
	if endpointURL != "" {
		clientOpts = append(clientOpts, func(o *sns.Options) {
			o.BaseEndpoint = aws.String(endpointURL)
		})
	}
	return sns.NewFromConfig(awsCfg, clientOpts...)
}

func NewBroadcastPublisher(client publishAPI, topicARN string) *BroadcastPublisher {
	return &BroadcastPublisher{client: client, topicARN: topicARN}
}

type broadcastMessage struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	CreatedAt string `json:"createdAt"`
}

func (p *BroadcastPublisher) PublishBroadcast(ctx context.Context, n *domain.NotificationRecord) error {
	msg, err := json.Marshal(broadcastMessage{
		ID:        n.ID,
		Title:     n.ReceiverType,
		Body:      n.Message,
		CreatedAt: n.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("encode broadcast: %w", err)
	}
	_, err = p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(p.topicARN),
		Subject:  aws.String(n.ReceiverType),
		Message:  aws.String(string(msg)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"receiver_type": {DataType: aws.String("String"), StringValue: aws.String(n.ReceiverType)},
		},
	})
	if err != nil {
		return fmt.Errorf("sns publish: %w", err)
	}
	return nil
}
