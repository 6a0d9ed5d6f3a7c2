package helpers

import (
	"fmt"
	"strings"

	"github.com/oksasatya/rb-marketplace/pkg/mailer"
	mailtpl "github.com/oksasatya/rb-marketplace/pkg/mailer/templates"
)

// SubjectFallback is used when a job carries neither a subject nor a known template.
func SubjectFallback(job *mailer.EmailJob) string {
	if job.Subject != "" {
		return job.Subject
	}
	switch job.Template {
	case mailtpl.PurchaseReceipt:
		return "Your purchase receipt"
	case mailtpl.ArtworkSold:
		return "Your artwork has been sold"
	default:
		return "Notification"
	}
}

func EnsureRecipientAndEmail(job *mailer.EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["Email"] = job.To
	}
	if v, ok := job.Data["RecipientEmail"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["RecipientEmail"] = job.To
	}
}

// NormalizeTemplate lower-cases the template name and maps short aliases
// ("receipt", "sold") onto the embedded template sets.
func NormalizeTemplate(job *mailer.EmailJob) {
	name := strings.ToLower(strings.TrimSpace(job.Template))
	switch name {
	case "receipt", "purchase":
		name = mailtpl.PurchaseReceipt
	case "sold", "sale":
		name = mailtpl.ArtworkSold
	}
	job.Template = name
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if name != "" {
		if v, ok := job.Data["Type"]; !ok || fmt.Sprintf("%v", v) == "" {
			job.Data["Type"] = name
		}
	}
}
