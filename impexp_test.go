package sberreport

import (
	"bufio"
	"encoding/json"
	"strings"
	"testing"
)

// TestExportReports creates a very basic check that the export format is one
// valid JSON object per line, in period order.
func TestExportReports(t *testing.T) {
	feb := mustParse(t, febStatement(), "feb.html")
	jan := mustParse(t, janStatement(), "jan.html")
	set := NewReportSet(feb, jan)

	sb := strings.Builder{}
	if err := ExportReports(&sb, set); err != nil {
		t.Fatalf("ExportReports() error = %v", err)
	}

	var names []string
	scanner := bufio.NewScanner(strings.NewReader(sb.String()))
	for scanner.Scan() {
		line := scanner.Text()
		var obj struct {
			Name string `json:"name"`
			Meta struct {
				AccountID string `json:"accountId"`
			} `json:"meta"`
		}
		if err := json.Unmarshal([]byte(line), &obj); err != nil {
			t.Fatalf("line is not valid JSON: %v\n%s", err, line)
		}
		if obj.Meta.AccountID != "100ABC" {
			t.Errorf("accountId = %q, want 100ABC", obj.Meta.AccountID)
		}
		names = append(names, obj.Name)
	}
	if len(names) != 2 || names[0] != "jan.html" || names[1] != "feb.html" {
		t.Errorf("exported %v, want period order [jan.html feb.html]", names)
	}

	// amounts are bare JSON numbers, not strings
	if !strings.Contains(sb.String(), `"amount":1000}`) {
		t.Errorf("export does not carry the deposit as a number:\n%s", sb.String())
	}
}

func TestQuery(t *testing.T) {
	set := NewReportSet(
		mustParse(t, janStatement(), "jan.html"),
		mustParse(t, febStatement(), "feb.html"),
	)

	got, err := set.Query("$[0].meta.accountId")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if got != "100ABC" {
		t.Errorf("Query($[0].meta.accountId) = %v, want 100ABC", got)
	}

	got, err = set.Query("$[*].name")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	names, ok := got.([]any)
	if !ok || len(names) != 2 || names[0] != "jan.html" || names[1] != "feb.html" {
		t.Errorf("Query($[*].name) = %v, want the names in period order", got)
	}

	if _, err := set.Query("$["); err == nil {
		t.Error("Query($[) did not fail")
	}
}
