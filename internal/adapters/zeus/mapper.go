package zeus

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/bnema/emetic/internal/domain"
	"github.com/bnema/emetic/internal/ssv"
)

const (
	// PageKey identifies the daily temperature form to the server.
	PageKey = "PERS07^PERS07_08^005^AmcDailyTempRegE"
	// Gubun is the record kind the form submits.
	Gubun = "AA"
)

// Row layout of the select dataset.
const (
	colDate     = 3
	colTime     = 4
	colTemp     = 5
	colSymptom0 = 6
	colNote     = 12
)

// RecordMapper converts between protocol rows and domain records.
type RecordMapper interface {
	Records(dataset *ssv.Dataset) ([]domain.Record, error)
	SaveParams(monitorID string, identity domain.Identity, record domain.Record, now time.Time) ssv.Params
}

// DailyTempForm maps the AmcDailyTempRegE form.
type DailyTempForm struct{}

func (DailyTempForm) Records(dataset *ssv.Dataset) ([]domain.Record, error) {
	records := make([]domain.Record, 0, len(dataset.Rows))
	for i, row := range dataset.Rows {
		record, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("%w: temperature row %d: %w", domain.ErrUnexpectedResponse, i, err)
		}
		records = append(records, record)
	}
	return records, nil
}

func parseRow(row ssv.Row) (domain.Record, error) {
	if len(row.Cells) <= colNote {
		return domain.Record{}, fmt.Errorf("%d cells", len(row.Cells))
	}

	date := strings.TrimSpace(row.Cell(colDate).String())
	clock := strings.TrimSpace(row.Cell(colTime).String())
	timestamp, err := time.ParseInLocation("20060102 15:04", date+" "+clock, domain.Zone)
	if err != nil {
		return domain.Record{}, fmt.Errorf("timestamp: %w", err)
	}

	temperature, err := strconv.ParseFloat(strings.TrimSpace(row.Cell(colTemp).String()), 64)
	if err != nil {
		return domain.Record{}, fmt.Errorf("temperature: %w", err)
	}

	var symptoms domain.Symptoms
	for i := range symptoms {
		symptoms[i] = strings.EqualFold(strings.TrimSpace(row.Cell(colSymptom0+i).String()), "Y")
	}

	return domain.Record{
		Timestamp:   timestamp,
		Temperature: temperature,
		Symptoms:    symptoms,
		Note:        row.Cell(colNote).String(),
	}, nil
}

var symptomFields = [domain.SymptomCount]string{
	"sympt_1", "sympt_2", "sympt_3", "sympt_4", "sympt_5", "sympt_6",
}

func (DailyTempForm) SaveParams(monitorID string, identity domain.Identity, record domain.Record, now time.Time) ssv.Params {
	day := record.Timestamp
	if day.IsZero() {
		day = now
	}

	params := ssv.Params{
		{Field: domain.CookieMonitorID, Value: monitorID},
		{Field: "dept_cd", Value: identity.DeptCode},
		{Field: "mbr_no", Value: identity.MemberNo},
		{Field: "chk_dt", Value: day.In(domain.Zone).Format("2006-01-02")},
		{Field: "temp", Value: record.TemperatureText()},
	}
	for i, field := range symptomFields {
		params.Add(field, yesNo(record.Symptoms[i]))
	}
	params.Add("spc_ctnt", norm.NFC.String(record.Note))
	params.Add("gubun", Gubun)
	params.Add("pg_key", PageKey)
	params.Add("page_open_time", "")
	params.Add("page_open_time_on", openStamp(now))

	return params
}

func yesNo(v bool) string {
	if v {
		return "Y"
	}
	return "N"
}
