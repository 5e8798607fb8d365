package sns

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/go-shop-api/internal/config"
)

// EmailPublisher publishes outbound mail to an SNS topic consumed by a
// downstream delivery service. It satisfies the same Send contract as the
// SMTP mailer and is selected with MAIL_PROVIDER=sns.
type EmailPublisher struct {
	client   *sns.Client
	topicARN string
}

type emailMessage struct {
	To      string `json:"to"`
	ToName  string `json:"to_name"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func NewEmailPublisher(cfg *config.Config) (*EmailPublisher, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.SNSRegion),
	)
	if err != nil {
		return nil, err
	}
	return &EmailPublisher{client: sns.NewFromConfig(awsCfg), topicARN: cfg.SNSTopicARN}, nil
}

func (p *EmailPublisher) Send(to, toName, subject, body string) error {
	payload, err := json.Marshal(emailMessage{To: to, ToName: toName, Subject: subject, Body: body})
	if err != nil {
		return err
	}
	_, err = p.client.Publish(context.Background(), &sns.PublishInput{
		TopicArn: aws.String(p.topicARN),
		Message:  aws.String(string(payload)),
	})
	return err
}
