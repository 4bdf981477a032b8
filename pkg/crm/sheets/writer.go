package sheets

import (
	"context"
	"fmt"
	"os"
	"time"

	"ai-showroom-be/internal/entity"
	"ai-showroom-be/internal/pkg/logger"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// LeadAppender is the CRM surface the export pipeline consumes.
type LeadAppender interface {
	AppendLead(ctx context.Context, sheetId string, lead *entity.Lead) error
}

// Writer appends submitted leads to a per-tenant Google Sheet. Each tenant
// configures its own spreadsheet id; the service account must have editor
// access to it.
type Writer struct {
	service  *sheets.Service
	logger   logger.ILogger
	sheetTab string
}

var _ LeadAppender = &Writer{}

func NewWriter(ctx context.Context, serviceAccountPath string, log logger.ILogger) (*Writer, error) {
	jsonKey, err := os.ReadFile(serviceAccountPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read service account key file: %w", err)
	}

	jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service account key: %w", err)
	}

	svc, err := sheets.NewService(ctx, option.WithTokenSource(jwtConfig.TokenSource(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Writer{
		service:  svc,
		logger:   log,
		sheetTab: "Leads",
	}, nil
}

func (w *Writer) AppendLead(ctx context.Context, sheetId string, lead *entity.Lead) error {
	row := leadRow(lead)

	_, err := w.service.Spreadsheets.Values.
		Append(sheetId, w.sheetTab+"!A:L", &sheets.ValueRange{Values: [][]interface{}{row}}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append lead row: %w", err)
	}

	w.logger.Info("CRM", "Lead appended to sheet", map[string]interface{}{
		"lead_id":  lead.Id,
		"sheet_id": sheetId,
	})
	return nil
}

func leadRow(lead *entity.Lead) []interface{} {
	options := ""
	for i, opt := range lead.Options {
		if i > 0 {
			options += ", "
		}
		options += opt
	}

	price := fmt.Sprintf("%d", lead.Price)
	if lead.PriceNote != "" {
		price = lead.PriceNote
	}

	return []interface{}{
		lead.CreatedAt.Format(time.RFC3339),
		lead.Kind,
		lead.Channel,
		lead.UserRef,
		lead.Category,
		lead.Brand,
		lead.Model,
		lead.BodyType,
		options,
		price,
		lead.Contact,
		lead.Id.String(),
	}
}
