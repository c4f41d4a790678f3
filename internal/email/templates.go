package email

// distributionDigestTemplate is the content section of the daily digest email
const distributionDigestTemplate = `
<h2 style="margin-top: 0;">Yesterday's distribution — {{.Date}}</h2>
<p>Hi {{.OrganizationName}}, here is how your promotions went out on {{.Date}}:</p>

<p style="font-size: 16px;">
    <strong style="color: #16A34A;">{{.Published}} published</strong>
    <span style="color: #666; margin: 0 8px;">•</span>
    <strong style="color: #DC2626;">{{.Failed}} failed</strong>
</p>

{{if .Rows}}
<table style="width: 100%; border-collapse: collapse; margin: 20px 0;">
    <tr>
        <th style="background-color: #2563EB; color: white; padding: 10px; text-align: left;">Promotion</th>
        <th style="background-color: #2563EB; color: white; padding: 10px; text-align: left;">Store</th>
        <th style="background-color: #2563EB; color: white; padding: 10px; text-align: left;">Platform</th>
        <th style="background-color: #2563EB; color: white; padding: 10px; text-align: left;">Result</th>
    </tr>
    {{range .Rows}}
    <tr>
        <td style="padding: 10px; border-bottom: 1px solid #ddd;">{{.PromotionTitle}}</td>
        <td style="padding: 10px; border-bottom: 1px solid #ddd;">{{.StoreName}}</td>
        <td style="padding: 10px; border-bottom: 1px solid #ddd;">{{.Platform}}</td>
        <td style="padding: 10px; border-bottom: 1px solid #ddd;">
            {{if eq .Status "success"}}
            <span style="color: #16A34A;">published</span>
            {{else}}
            <span style="color: #DC2626;">{{.Detail}}</span>
            {{end}}
        </td>
    </tr>
    {{end}}
</table>
{{else}}
<p>No publications were attempted yesterday.</p>
{{end}}

<p style="color: #666; font-size: 13px;">
    Failed attempts are retried automatically on the next distribution run as
    long as the campaign's daily quota allows.
</p>
`
