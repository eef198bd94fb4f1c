package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/maxaizer/jobscout/internal/domain/models"
	"github.com/maxaizer/jobscout/internal/logger"
	"github.com/maxaizer/jobscout/internal/retry"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/googleapi"
)

type Options struct {
	SpreadsheetID   string
	SheetName       string
	CredentialsFile string
	MaxAttempts     int
	Backoff         time.Duration
}

// Store appends postings as rows of one sheet. Column A holds the posting id.
type Store struct {
	api           valuesAPI
	spreadsheetID string
	sheetName     string
	policy        retry.Policy
}

func NewStore(ctx context.Context, opts Options) (*Store, error) {
	api, err := newServiceValues(ctx, opts.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return newStore(api, opts), nil
}

func newStore(api valuesAPI, opts Options) *Store {
	if opts.SheetName == "" {
		opts.SheetName = "Jobs"
	}
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 3
	}
	return &Store{
		api:           api,
		spreadsheetID: opts.SpreadsheetID,
		sheetName:     opts.SheetName,
		policy:        retry.Policy{MaxAttempts: opts.MaxAttempts, Backoff: opts.Backoff, Name: "sheets"},
	}
}

// EnsureHeaders writes the header row when the first row does not match it.
func (s *Store) EnsureHeaders(ctx context.Context) error {
	var rows [][]interface{}
	err := s.do(ctx, func(ctx context.Context) error {
		var err error
		rows, err = s.api.Get(ctx, s.spreadsheetID, s.cells("1:1"))
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to read header row: %w", err)
	}

	if len(rows) > 0 && slices.Equal(cellsToStrings(rows[0]), Headers) {
		return nil
	}

	header := lo.Map(Headers, func(h string, _ int) interface{} { return h })
	err = s.do(ctx, func(ctx context.Context) error {
		return s.api.Update(ctx, s.spreadsheetID, s.cells("A1"), header)
	})
	if err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}
	log.Infof("header row written to sheet %s", s.sheetName)
	return nil
}

func (s *Store) ExistingIDs(ctx context.Context) ([]string, error) {
	var rows [][]interface{}
	err := s.do(ctx, func(ctx context.Context) error {
		var err error
		rows, err = s.api.Get(ctx, s.spreadsheetID, s.cells("A2:A"))
		return err
	})
	if err != nil {
		return nil, err
	}

	return lo.FilterMap(rows, func(row []interface{}, _ int) (string, bool) {
		if len(row) == 0 {
			return "", false
		}
		id := strings.TrimSpace(fmt.Sprint(row[0]))
		return id, id != ""
	}), nil
}

// Append writes one row. Only rate-limit rejections are retried: after a 5xx
// the row may already have been written.
func (s *Store) Append(ctx context.Context, job models.Job) error {
	row := toRow(job)
	err := retry.Do(ctx, s.policy, func(ctx context.Context) error {
		return s.api.Append(ctx, s.spreadsheetID, s.cells("A:R"), row)
	}, isRateLimited)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeStore).Errorf("failed to append row for %s: %v", job.ID, err)
	}
	return err
}

func (s *Store) do(ctx context.Context, fn func(ctx context.Context) error) error {
	return retry.Do(ctx, s.policy, fn, isTransient)
}

func (s *Store) cells(a1 string) string {
	return fmt.Sprintf("'%s'!%s", strings.ReplaceAll(s.sheetName, "'", "''"), a1)
}

func isTransient(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
	}
	return false
}

func isRateLimited(err error) bool {
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests
}

func cellsToStrings(row []interface{}) []string {
	return lo.Map(row, func(cell interface{}, _ int) string { return fmt.Sprint(cell) })
}
