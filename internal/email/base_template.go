package email

import (
	"bytes"
	"html/template"
)

// BaseEmailData contains data for the base email wrapper
type BaseEmailData struct {
	Content template.HTML
	Subject string
}

// baseEmailTemplate is the reusable wrapper for all emails
const baseEmailTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Subject}}</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            margin: 0;
            padding: 0;
            background-color: #f5f5f5;
        }
        .email-wrapper {
            max-width: 600px;
            margin: 0 auto;
            background-color: #ffffff;
        }
        .header {
            background-color: #2563EB;
            padding: 20px 30px;
        }
        .brand-name {
            font-size: 20px;
            font-weight: 700;
            color: #ffffff;
            margin: 0;
            line-height: 1;
        }
        .brand-tagline {
            font-size: 12px;
            color: rgba(255, 255, 255, 0.9);
            margin: 4px 0 0;
        }
        .content {
            padding: 30px 20px;
        }
        .footer {
            background-color: #1F2937;
            color: #cccccc;
            padding: 30px 20px;
            text-align: center;
            font-size: 13px;
        }
        .footer a {
            color: #60A5FA;
            text-decoration: none;
        }
        @media only screen and (max-width: 600px) {
            .content {
                padding: 20px 15px;
            }
        }
    </style>
</head>
<body>
    <div class="email-wrapper">
        <div class="header">
            <div class="brand-name">PromoJour</div>
            <div class="brand-tagline">Your promotions, everywhere they need to be</div>
        </div>

        <div class="content">
            {{.Content}}
        </div>

        <div class="footer">
            <strong style="color: #fff; font-size: 15px;">PromoJour</strong>
            <div style="margin-top: 10px;">
                <a href="https://www.promojour.com">www.promojour.com</a>
            </div>
            <div style="margin-top: 20px; font-size: 11px; color: #888;">
                © 2026 PromoJour. All rights reserved.
            </div>
        </div>
    </div>
</body>
</html>
`

// WrapEmailContent wraps content in the base email template
func WrapEmailContent(content string, subject string) (string, error) {
	tmpl := template.Must(template.New("base").Parse(baseEmailTemplate))

	data := BaseEmailData{
		Content: template.HTML(content),
		Subject: subject,
	}

	var result bytes.Buffer
	if err := tmpl.Execute(&result, data); err != nil {
		return "", err
	}

	return result.String(), nil
}
