package export

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/sadopc/itineris/internal/tasks"
)

type jsonExport struct {
	ExportedAt   string     `json:"exported_at"`
	User         string     `json:"user"`
	TotalMinutes float64    `json:"total_minutes"`
	Days         []jsonDay  `json:"days"`
	Tasks        []jsonTask `json:"tasks"`
}

type jsonDay struct {
	Date     string  `json:"date"`
	Weekday  string  `json:"weekday"`
	Minutes  float64 `json:"minutes"`
	Duration string  `json:"duration"`
	Sessions int     `json:"sessions"`
}

type jsonTask struct {
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
	Priority  string `json:"priority"`
	Date      string `json:"date,omitempty"`
	Time      string `json:"time,omitempty"`
}

func ToJSON(user string, days []Day, ts []tasks.Task, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		User:       user,
		Days:       []jsonDay{},
		Tasks:      []jsonTask{},
	}

	for _, d := range days {
		export.TotalMinutes += d.Minutes
		export.Days = append(export.Days, jsonDay{
			Date:     d.Date,
			Weekday:  d.Weekday,
			Minutes:  math.Round(d.Minutes*100) / 100,
			Duration: formatDuration(d.Minutes),
			Sessions: d.Sessions,
		})
	}
	export.TotalMinutes = math.Round(export.TotalMinutes*100) / 100

	for _, t := range ts {
		export.Tasks = append(export.Tasks, jsonTask{
			Name:      t.Name,
			Completed: t.Completed,
			Priority:  t.Priority.Name(),
			Date:      t.Date,
			Time:      t.Time,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
