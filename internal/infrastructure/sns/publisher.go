package sns

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/employee-api/internal/config"
)

// Publisher publishes employee change events. The topic names the operation;
// the key carries the record id so consumers can partition by employee.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, payload interface{}) error
}

type publisher struct {
	client *sns.Client

	mu        sync.Mutex
	topicARNs map[string]string
}

// NewPublisher creates an SNS-backed event publisher.
func NewPublisher(cfg *config.Config) (Publisher, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}
	if cfg.AWSAccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, err
	}

	clientOpts := []func(*sns.Options){}
	if cfg.AWSEndpointURL != "" {
		clientOpts = append(clientOpts, func(o *sns.Options) {
			o.BaseEndpoint = aws.String(cfg.AWSEndpointURL)
		})
	}

	return &publisher{
		client:    sns.NewFromConfig(awsCfg, clientOpts...),
		topicARNs: make(map[string]string),
	}, nil
}

func (p *publisher) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	arn, err := p.topicARN(ctx, topic)
	if err != nil {
		return fmt.Errorf("resolve topic %s: %w", topic, err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}

	_, err = p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(arn),
		Message:  aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"key": {
				DataType:    aws.String("String"),
				StringValue: aws.String(key),
			},
		},
	})
	return err
}

// topicARN resolves and caches the ARN for a topic name. CreateTopic is
// idempotent: it returns the existing ARN when the topic already exists.
func (p *publisher) topicARN(ctx context.Context, topic string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if arn, ok := p.topicARNs[topic]; ok {
		return arn, nil
	}
	out, err := p.client.CreateTopic(ctx, &sns.CreateTopicInput{Name: aws.String(topic)})
	if err != nil {
		return "", err
	}
	p.topicARNs[topic] = *out.TopicArn
	return *out.TopicArn, nil
}
