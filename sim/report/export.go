package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/counterbank/counter-sim/sim"
)

const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Document is the JSON export of one run.
type Document struct {
	RunID     string            `json:"run_id"`
	Config    sim.Config        `json:"config"`
	EndTime   float64           `json:"end_time"`
	Report    EssentialReport   `json:"report"`
	Summary   Summary           `json:"summary"`
	Patients  []*sim.Patient    `json:"patients"`
	Counters  []*sim.Counter    `json:"counters"`
	Events    []sim.EventRecord `json:"events"`
	Snapshots []sim.Snapshot    `json:"snapshots"`
}

// Export writes the run in every requested format under dir, creating dir if
// needed. It returns the paths written.
func Export(dir string, formats []string, res *sim.Result, rep EssentialReport, sum Summary) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export dir %s: %w", dir, err)
	}
	var written []string
	for _, f := range formats {
		switch f {
		case FormatCSV:
			paths, err := writeCSV(dir, res)
			if err != nil {
				return written, err
			}
			written = append(written, paths...)
		case FormatJSON:
			path := filepath.Join(dir, "result.json")
			doc := Document{
				RunID:     res.RunID.String(),
				Config:    res.Config,
				EndTime:   res.EndTime,
				Report:    rep,
				Summary:   sum,
				Patients:  res.Patients,
				Counters:  res.Counters,
				Events:    res.Events,
				Snapshots: res.Snapshots,
			}
			if err := writeJSON(path, doc); err != nil {
				return written, err
			}
			written = append(written, path)
		default:
			return written, fmt.Errorf("unknown export format %q", f)
		}
	}
	logrus.Debugf("exported %d files to %s", len(written), dir)
	return written, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func writeCSV(dir string, res *sim.Result) ([]string, error) {
	run := res.RunID.String()
	tables := []struct {
		name string
		rows [][]string
	}{
		{"patients.csv", patientRows(run, res.Patients)},
		{"counters.csv", counterRows(run, res.Counters, res.EndTime)},
		{"events.csv", eventRows(run, res.Events)},
		{"snapshots.csv", snapshotRows(run, res.Snapshots)},
	}
	paths := make([]string, 0, len(tables))
	for _, t := range tables {
		path := filepath.Join(dir, t.name)
		if err := writeRows(path, t.rows); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeRows(path string, rows [][]string) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, closeErr)
		}
	}()
	w := csv.NewWriter(file)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func patientRows(run string, patients []*sim.Patient) [][]string {
	rows := [][]string{{"run_id", "id", "state", "arrival_time", "queue_join_time", "service_start_time",
		"service_end_time", "waiting_time", "service_time", "total_time_in_system", "counter_id"}}
	for _, p := range patients {
		rows = append(rows, []string{
			run,
			strconv.Itoa(p.ID),
			string(p.State),
			optional(p.ArrivalTime),
			optional(p.QueueJoinTime),
			optional(p.ServiceStartTime),
			optional(p.ServiceEndTime),
			optional(p.WaitingTime),
			optional(p.ServiceTime),
			optional(p.TotalTimeInSystem),
			optionalID(p.CounterID),
		})
	}
	return rows
}

func counterRows(run string, counters []*sim.Counter, total float64) [][]string {
	rows := [][]string{{"run_id", "counter_id", "patients_served", "total_busy_time", "utilization"}}
	for _, c := range counters {
		rows = append(rows, []string{
			run,
			strconv.Itoa(c.ID),
			strconv.Itoa(c.PatientsServed),
			formatFloat(c.TotalBusyTime),
			formatFloat(c.Utilization(total)),
		})
	}
	return rows
}

func eventRows(run string, events []sim.EventRecord) [][]string {
	rows := [][]string{{"run_id", "time", "event", "patient_id", "counter_id", "queue_length"}}
	for _, e := range events {
		rows = append(rows, []string{
			run,
			formatFloat(e.Time),
			string(e.Kind),
			strconv.Itoa(e.PatientID),
			optionalID(e.CounterID),
			strconv.Itoa(e.QueueLength),
		})
	}
	return rows
}

func snapshotRows(run string, snapshots []sim.Snapshot) [][]string {
	rows := [][]string{{"run_id", "time", "queue_length", "total_arrivals", "total_started", "total_served"}}
	for _, s := range snapshots {
		rows = append(rows, []string{
			run,
			formatFloat(s.Time),
			strconv.Itoa(s.QueueLength),
			strconv.Itoa(s.TotalArrivals),
			strconv.Itoa(s.TotalStarted),
			strconv.Itoa(s.TotalServed),
		})
	}
	return rows
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// optional renders an undefined value as an empty cell.
func optional(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

func optionalID(id int) string {
	if id == 0 {
		return ""
	}
	return strconv.Itoa(id)
}
