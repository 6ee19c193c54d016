package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

func ToCSV(days []Day, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Date", "Weekday", "Minutes", "Duration", "Sessions"}); err != nil {
		return err
	}

	for _, d := range days {
		row := []string{
			d.Date,
			d.Weekday,
			strconv.FormatFloat(d.Minutes, 'f', 2, 64),
			formatDuration(d.Minutes),
			strconv.Itoa(d.Sessions),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
