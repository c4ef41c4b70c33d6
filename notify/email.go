package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/selfheal-infra/remedy/types"
)

// SESAPI defines the SES operations the email channel uses.
type SESAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// EmailChannel sends the notification as a transactional email with both
// text and HTML variants.
type EmailChannel struct {
	client      SESAPI
	address     string
	project     string
	environment string
}

func NewEmailChannel(client SESAPI, address, project, environment string) *EmailChannel {
	return &EmailChannel{client: client, address: address, project: project, environment: environment}
}

func (c *EmailChannel) Name() string { return "email" }

func (c *EmailChannel) Send(ctx context.Context, n types.Notification) types.ChannelResult {
	out, err := c.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fmt.Sprintf("%s <%s>", c.project, c.address)),
		Destination: &sestypes.Destination{
			ToAddresses: []string{c.address},
		},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{Data: aws.String(n.Title)},
				Body: &sestypes.Body{
					Text: &sestypes.Content{Data: aws.String(n.Message)},
					Html: &sestypes.Content{Data: aws.String(emailHTML(n, c.project, c.environment))},
				},
			},
		},
	})
	if err != nil {
		return types.ChannelFailed(c.Name(), fmt.Errorf("failed to send email: %w", err))
	}
	return types.ChannelOK(c.Name(), aws.ToString(out.MessageId))
}

func emailHTML(n types.Notification, project, environment string) string {
	style := n.Severity.Style()
	message := strings.ReplaceAll(n.Message, "\n", "<br>")

	return fmt.Sprintf(`<html>
<head>
<style>
body { font-family: Arial, sans-serif; }
.header { background-color: %s; color: white; padding: 20px; }
.content { padding: 20px; }
.metadata { background-color: #f8f9fa; padding: 15px; margin-top: 20px; }
.footer { color: #6c757d; padding: 20px; font-size: 12px; }
</style>
</head>
<body>
<div class="header"><h1>%s</h1></div>
<div class="content">
<p>%s</p>
<div class="metadata">
<strong>Severity:</strong> %s<br>
<strong>Environment:</strong> %s<br>
<strong>Source:</strong> %s<br>
<strong>Timestamp:</strong> %s
</div>
</div>
<div class="footer"><p>This is an automated notification from %s</p></div>
</body>
</html>`,
		style.Color, n.Title, message,
		strings.ToUpper(string(n.Severity)), environment, n.Source, n.Timestamp,
		project)
}
