package geo

import (
	"context"
	"fmt"

	messages "github.com/cucumber/messages/go/v21"
	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	GetData() ([]map[string]any, error)
}

// RegisterSteps registers county and municipality assertion steps
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &geoSteps{tc: tc}

	ctx.Step(`^the response should contain (\d+) records?$`, steps.shouldContainN)
	ctx.Step(`^record (\d+) should have "([^"]*)" equal to "([^"]*)"$`, steps.recordShouldHave)
	ctx.Step(`^every record should have "([^"]*)"$`, steps.everyRecordShouldHave)
	ctx.Step(`^the records should be ordered by "([^"]*)"$`, steps.recordsOrderedBy)
	ctx.Step(`^the records should include:$`, steps.recordsShouldInclude)
}

type geoSteps struct {
	tc TestContext
}

func (s *geoSteps) shouldContainN(ctx context.Context, want int) error {
	rows, err := s.tc.GetData()
	if err != nil {
		return err
	}
	if len(rows) != want {
		return fmt.Errorf("expected %d records, got %d", want, len(rows))
	}
	return nil
}

// recordShouldHave checks a field of the 1-based record index.
func (s *geoSteps) recordShouldHave(ctx context.Context, idx int, field, want string) error {
	rows, err := s.tc.GetData()
	if err != nil {
		return err
	}
	if idx < 1 || idx > len(rows) {
		return fmt.Errorf("record %d out of range (have %d)", idx, len(rows))
	}
	got, ok := rows[idx-1][field]
	if !ok {
		return fmt.Errorf("record %d has no field %q", idx, field)
	}
	if fmt.Sprint(got) != want {
		return fmt.Errorf("record %d: expected %s=%q, got %v", idx, field, want, got)
	}
	return nil
}

func (s *geoSteps) everyRecordShouldHave(ctx context.Context, field string) error {
	rows, err := s.tc.GetData()
	if err != nil {
		return err
	}
	for i, row := range rows {
		if _, ok := row[field]; !ok {
			return fmt.Errorf("record %d has no field %q", i+1, field)
		}
	}
	return nil
}

func (s *geoSteps) recordsOrderedBy(ctx context.Context, field string) error {
	rows, err := s.tc.GetData()
	if err != nil {
		return err
	}
	for i := 1; i < len(rows); i++ {
		prev, cur := fmt.Sprint(rows[i-1][field]), fmt.Sprint(rows[i][field])
		if prev > cur {
			return fmt.Errorf("records %d and %d out of order by %s: %q > %q", i, i+1, field, prev, cur)
		}
	}
	return nil
}

// recordsShouldInclude matches each table row against some record, comparing
// only the columns named in the header.
func (s *geoSteps) recordsShouldInclude(ctx context.Context, table *godog.Table) error {
	rows, err := s.tc.GetData()
	if err != nil {
		return err
	}
	if len(table.Rows) < 2 {
		return fmt.Errorf("table needs a header and at least one row")
	}
	header := cellValues(table.Rows[0])
	for _, r := range table.Rows[1:] {
		want := cellValues(r)
		if !containsRow(rows, header, want) {
			return fmt.Errorf("no record matches %v", want)
		}
	}
	return nil
}

func containsRow(rows []map[string]any, header, cells []string) bool {
	for _, row := range rows {
		match := true
		for i, col := range header {
			got, ok := row[col]
			want := cells[i]
			if want == "null" {
				match = ok && got == nil
			} else {
				match = ok && fmt.Sprint(got) == want
			}
			if !match {
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func cellValues(row *messages.PickleTableRow) []string {
	out := make([]string, len(row.Cells))
	for i, c := range row.Cells {
		out[i] = c.Value
	}
	return out
}
