package sheets

import (
	"context"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

type valuesAPI interface {
	Get(ctx context.Context, spreadsheetID, cells string) ([][]interface{}, error)
	Append(ctx context.Context, spreadsheetID, cells string, row []interface{}) error
	Update(ctx context.Context, spreadsheetID, cells string, row []interface{}) error
}

type serviceValues struct {
	values *sheets.SpreadsheetsValuesService
}

func newServiceValues(ctx context.Context, credentialsFile string) (*serviceValues, error) {
	service, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope))
	if err != nil {
		return nil, err
	}
	return &serviceValues{values: service.Spreadsheets.Values}, nil
}

func (s *serviceValues) Get(ctx context.Context, spreadsheetID, cells string) ([][]interface{}, error) {
	response, err := s.values.Get(spreadsheetID, cells).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return response.Values, nil
}

func (s *serviceValues) Append(ctx context.Context, spreadsheetID, cells string, row []interface{}) error {
	_, err := s.values.Append(spreadsheetID, cells, &sheets.ValueRange{Values: [][]interface{}{row}}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

func (s *serviceValues) Update(ctx context.Context, spreadsheetID, cells string, row []interface{}) error {
	_, err := s.values.Update(spreadsheetID, cells, &sheets.ValueRange{Values: [][]interface{}{row}}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	return err
}
