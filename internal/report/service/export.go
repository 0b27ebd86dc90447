package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"propertyhub/internal/report/tracer"
	dErrors "propertyhub/pkg/domain-errors"
)

// Export renders the period summary as a CSV document. The first section is
// (label, value) rows for the headline figures, followed by a blank line and
// the six-month revenue table. The returned filename is the suggested
// download name.
func (s *Service) Export(ctx context.Context, month time.Month, year int) (data []byte, filename string, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanReportExport,
		tracer.String(tracer.AttrFormat, "csv"),
	)
	defer func() { span.End(err) }()

	month, year, err = s.resolvePeriod(month, year)
	if err != nil {
		return nil, "", err
	}
	summary, err := s.Summary(ctx, month, year)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	rows := [][]string{
		{"Metric", "Value"},
		{"Period", fmt.Sprintf("%s %d", summary.Month, summary.Year)},
		{"Collected", summary.Collected.StringFixed(2)},
		{"Expected", summary.Expected.StringFixed(2)},
		{"Outstanding", summary.Outstanding.StringFixed(2)},
		{"Collection Rate (%)", strconv.FormatFloat(summary.CollectionRate, 'f', 1, 64)},
		{"Occupied Units", strconv.Itoa(summary.Occupancy.Occupied)},
		{"Vacant Units", strconv.Itoa(summary.Occupancy.Vacant)},
		{"Maintenance Units", strconv.Itoa(summary.Occupancy.Maintenance)},
		{"Occupancy Rate (%)", strconv.Itoa(summary.OccupancyRate)},
		{},
		{"Month", "Revenue"},
	}
	for _, bucket := range summary.Trend {
		rows = append(rows, []string{bucket.Month, bucket.Amount.StringFixed(2)})
	}

	if err := writer.WriteAll(rows); err != nil {
		return nil, "", dErrors.Wrap(err, dErrors.CodeInternal, "could not serialize report")
	}

	if s.metrics != nil {
		s.metrics.IncrementReportsExported("csv")
	}
	s.logger.InfoContext(ctx, "report exported",
		"month", summary.Month,
		"year", summary.Year,
		"format", "csv",
	)
	return buf.Bytes(), ExportFilename(month, year), nil
}
