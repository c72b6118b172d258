package report

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/counterbank/counter-sim/sim"
)

func exportFixture(t *testing.T) (*sim.Result, EssentialReport, Summary) {
	t.Helper()
	cfg := constantConfig(1, 1, 5, 10)
	cfg.Monitoring.SnapshotInterval = 2
	res := sim.NewSimulator(cfg).Run()
	Reconcile(res.Patients, res.EndTime)
	return res, Analyze(res.Patients, res.Counters, cfg.Horizon, 0), Summarize(res, 0)
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestExport_CSV_WritesAllTables(t *testing.T) {
	res, rep, sum := exportFixture(t)
	dir := filepath.Join(t.TempDir(), "out")

	paths, err := Export(dir, []string{FormatCSV}, res, rep, sum)
	require.NoError(t, err)
	assert.Len(t, paths, 4)

	patients := readCSV(t, filepath.Join(dir, "patients.csv"))
	require.Len(t, patients, 11, "header + 10 patients")
	assert.Equal(t, "waiting_time", patients[0][7])
	assert.Equal(t, res.RunID.String(), patients[1][0])
	assert.Equal(t, "0", patients[1][7])
	assert.Equal(t, "4", patients[2][7])
	assert.Equal(t, "", patients[3][7], "undefined waiting time is an empty cell")
	assert.Equal(t, "", patients[3][10], "unserved patient has no counter")

	counters := readCSV(t, filepath.Join(dir, "counters.csv"))
	require.Len(t, counters, 2)
	assert.Equal(t, []string{res.RunID.String(), "1", "1", "5", "50"}, counters[1])

	events := readCSV(t, filepath.Join(dir, "events.csv"))
	assert.Len(t, events, 1+len(res.Events))

	snapshots := readCSV(t, filepath.Join(dir, "snapshots.csv"))
	assert.Len(t, snapshots, 1+len(res.Snapshots))
}

func TestExport_JSON_UndefinedMetricsAreNull(t *testing.T) {
	res, rep, sum := exportFixture(t)
	dir := t.TempDir()

	paths, err := Export(dir, []string{FormatJSON}, res, rep, sum)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "result.json")}, paths)

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	var doc struct {
		RunID    string                   `json:"run_id"`
		Report   EssentialReport          `json:"report"`
		Patients []map[string]interface{} `json:"patients"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, res.RunID.String(), doc.RunID)
	assert.Equal(t, rep.TotalArrivals, doc.Report.TotalArrivals)
	require.Len(t, doc.Patients, 10)
	assert.Equal(t, 4.0, doc.Patients[1]["waiting_time"])
	waiting, present := doc.Patients[5]["waiting_time"]
	assert.True(t, present)
	assert.Nil(t, waiting)
}

func TestExport_UnknownFormatFails(t *testing.T) {
	res, rep, sum := exportFixture(t)
	_, err := Export(t.TempDir(), []string{"xml"}, res, rep, sum)
	assert.Error(t, err)
}
