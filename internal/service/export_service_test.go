package service_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/portfolio"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/service"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/testutil"
)

func readCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse CSV: %v", err)
	}
	return rows
}

func TestExportService_Export(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestExportService(t, db)

	gold := testutil.NewInvestment().
		WithName("Gold, 24k").
		WithCategory("Gold Physical").
		WithTag("long term").
		WithInvested(1000).
		WithCurrent(1500).
		WithStartDate(testutil.Date(2023, time.March, 1)).
		WithNotes("line one\nline two").
		Build(t, db)
	testutil.NewInvestment().WithName("Cash").WithTag("short term").WithInvested(250).Build(t, db)

	t.Run("writes header and one row per investment", func(t *testing.T) {
		var buf bytes.Buffer
		if err := svc.Export(&buf, portfolio.FilterAll, portfolio.SortNone); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		rows := readCSV(t, buf.Bytes())
		if len(rows) != 3 {
			t.Fatalf("Expected 3 rows, got %d", len(rows))
		}
		if strings.Join(rows[0], ",") != strings.Join(service.ExportHeader, ",") {
			t.Errorf("Unexpected header: %v", rows[0])
		}

		cash := rows[1]
		if cash[1] != "Cash" || cash[3] != "250" || cash[5] != "250" || cash[6] != "" || cash[11] != "none" {
			t.Errorf("Unexpected cash row: %v", cash)
		}

		row := rows[2]
		if row[0] != gold.ID || row[1] != "Gold, 24k" || row[2] != "Gold Physical" {
			t.Errorf("Unexpected identity columns: %v", row)
		}
		if row[5] != "1500" {
			t.Errorf("Expected manual current value 1500, got %s", row[5])
		}
		if row[6] != "2023-03-01" || row[8] != "line one\nline two" || row[12] != "0" {
			t.Errorf("Unexpected detail columns: %v", row)
		}
	})

	t.Run("honours the tag filter", func(t *testing.T) {
		var buf bytes.Buffer
		if err := svc.Export(&buf, "short term", portfolio.SortNone); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		rows := readCSV(t, buf.Bytes())
		if len(rows) != 2 || rows[1][1] != "Cash" {
			t.Errorf("Expected only Cash, got %v", rows)
		}
	})

	t.Run("reports the configured filename", func(t *testing.T) {
		if svc.Filename() != "mycapital360_portfolio.csv" {
			t.Errorf("Unexpected filename %s", svc.Filename())
		}
	})
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := service.WriteCSV(&buf, []model.InvestmentView{}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	rows := readCSV(t, buf.Bytes())
	if len(rows) != 1 {
		t.Errorf("Expected header only, got %d rows", len(rows))
	}
}
