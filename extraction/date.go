package extraction

import (
	"fmt"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"substitution-plan-notifier/exceptions"
	"substitution-plan-notifier/util"
)

const datePrefix = "Datum: "

// ParseCreationDate finds "Datum: Montag, 14.10.2024" in the page text and
// returns that day at midnight local time. A German weekday name in front of
// the date has to agree with it.
func ParseCreationDate(text string) (time.Time, error) {
	start := strings.Index(text, datePrefix)

	if start < 0 {
		return time.Time{}, exceptions.DateNotFound
	}

	line := text[start+len(datePrefix):]

	if end := strings.IndexAny(line, "\r\n"); end >= 0 {
		line = line[:end]
	}

	weekdayName := ""

	if comma := strings.Index(line, ", "); comma >= 0 {
		weekdayName = strings.TrimSpace(line[:comma])
		line = line[comma+2:]
	}

	fields := strings.Fields(line)

	if len(fields) == 0 {
		return time.Time{}, exceptions.DateNotFound
	}

	date, err := time.ParseInLocation("2.1.2006", fields[0], time.Local)

	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", exceptions.DateNotFound, err.Error())
	}

	if weekday, err := util.ConvertFromGermanWeek(weekdayName); err == nil && weekday != date.Weekday() {
		return time.Time{}, fmt.Errorf("%w: %s is not a %s", exceptions.DateNotFound, fields[0], weekdayName)
	}

	return date, nil
}

// ReadCreationDate reads the first page of the PDF and parses its date line.
func ReadCreationDate(path string) (time.Time, error) {
	file, reader, err := pdf.Open(path)

	if err != nil {
		return time.Time{}, err
	}

	defer file.Close()

	if reader.NumPage() < 1 {
		return time.Time{}, exceptions.DateNotFound
	}

	text, err := reader.Page(1).GetPlainText(nil)

	if err != nil {
		return time.Time{}, err
	}

	return ParseCreationDate(text)
}
