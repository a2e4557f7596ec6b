package storage

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/thenoetrevino/qitrack/internal/models"
)

// Table names used in ParseError and log output
const (
	TableProjects = "projects"
	TablePdsa     = "pdsa"
)

// row gives column-name access to one parsed CSV record
type row struct {
	table  string
	line   int
	fields []string
	index  map[string]int
}

func (r row) get(col string) string {
	return r.fields[r.index[col]]
}

func (r row) int(col string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(r.get(col)))
	if err != nil {
		return 0, &ParseError{Table: r.table, Line: r.line, Column: col, Err: err}
	}
	return v, nil
}

func (r row) date(col string) (models.Date, error) {
	d, err := models.ParseDate(strings.TrimSpace(r.get(col)))
	if err != nil {
		return models.Date{}, &ParseError{Table: r.table, Line: r.line, Column: col, Err: err}
	}
	return d, nil
}

// readTable parses a header-first CSV stream and checks that every column in want is present.
// Columns are matched by header name; extra columns are ignored.
func readTable(r io.Reader, table string, want []string) ([]row, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		var csvErr *csv.ParseError
		if errors.As(err, &csvErr) {
			return nil, &ParseError{Table: table, Line: csvErr.Line, Err: csvErr.Err}
		}
		return nil, &ParseError{Table: table, Err: err}
	}
	if len(records) == 0 {
		return nil, &ParseError{Table: table, Line: 1, Err: errEmptyTable}
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, col := range want {
		if _, ok := index[col]; !ok {
			return nil, &ParseError{Table: table, Line: 1, Column: col, Err: errMissingColumn}
		}
	}

	rows := make([]row, 0, len(records)-1)
	for i, rec := range records[1:] {
		line := i + 2
		for _, f := range rec {
			if !utf8.ValidString(f) {
				return nil, &ParseError{Table: table, Line: line, Err: errBadEncoding}
			}
		}
		rows = append(rows, row{table: table, line: line, fields: rec, index: index})
	}
	return rows, nil
}

// ReadProjects parses a projects table
func ReadProjects(r io.Reader) (models.Projects, error) {
	rows, err := readTable(r, TableProjects, models.ProjectColumns)
	if err != nil {
		return nil, err
	}

	projects := make(models.Projects, 0, len(rows))
	for _, rw := range rows {
		id, err := rw.int("id")
		if err != nil {
			return nil, err
		}
		start, err := rw.date("start_date")
		if err != nil {
			return nil, err
		}
		end, err := rw.date("end_date")
		if err != nil {
			return nil, err
		}
		projects = append(projects, models.Project{
			ID:               id,
			Title:            rw.get("title"),
			SmartAim:         rw.get("smart_aim"),
			ProblemStatement: rw.get("problem_statement"),
			Status:           models.Status(rw.get("status")),
			Metrics:          rw.get("metrics"),
			Advisor:          rw.get("advisor"),
			Service:          rw.get("service"),
			StartDate:        start,
			EndDate:          end,
			Tags:             rw.get("tags"),
		})
	}
	return projects, nil
}

// ReadCycles parses a pdsa table
func ReadCycles(r io.Reader) (models.Cycles, error) {
	rows, err := readTable(r, TablePdsa, models.PdsaColumns)
	if err != nil {
		return nil, err
	}

	cycles := make(models.Cycles, 0, len(rows))
	for _, rw := range rows {
		projectID, err := rw.int("project_id")
		if err != nil {
			return nil, err
		}
		date, err := rw.date("date")
		if err != nil {
			return nil, err
		}
		cycles = append(cycles, models.PdsaCycle{
			ProjectID: projectID,
			CycleName: rw.get("cycle_name"),
			Plan:      rw.get("plan"),
			Do:        rw.get("do"),
			Study:     rw.get("study"),
			Act:       rw.get("act"),
			Date:      date,
		})
	}
	return cycles, nil
}

// WriteProjects writes the projects table with a header in canonical column order
func WriteProjects(w io.Writer, projects models.Projects) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(models.ProjectColumns); err != nil {
		return err
	}
	for _, p := range projects {
		record := []string{
			strconv.Itoa(p.ID),
			p.Title,
			p.SmartAim,
			p.ProblemStatement,
			p.Status.String(),
			p.Metrics,
			p.Advisor,
			p.Service,
			p.StartDate.String(),
			p.EndDate.String(),
			p.Tags,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCycles writes the pdsa table with a header in canonical column order.
// An empty collection still produces the header row.
func WriteCycles(w io.Writer, cycles models.Cycles) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(models.PdsaColumns); err != nil {
		return err
	}
	for _, c := range cycles {
		record := []string{
			strconv.Itoa(c.ProjectID),
			c.CycleName,
			c.Plan,
			c.Do,
			c.Study,
			c.Act,
			c.Date.String(),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
