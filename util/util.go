package util

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"substitution-plan-notifier/exceptions"
)

const maxClassNameLength = 12

var SchoolDays = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}

// NextSchoolDay maps a weekend day to the following Monday and leaves school days as they are.
func NextSchoolDay(day time.Weekday) time.Weekday {
	if IsSchoolDay(day) {
		return day
	}

	return time.Monday
}

// SchoolDayAfter returns the school day following day, skipping the weekend.
func SchoolDayAfter(day time.Weekday) time.Weekday {
	switch day {
	case time.Friday, time.Saturday, time.Sunday:
		return time.Monday
	default:
		return day + 1
	}
}

func IsSchoolDay(day time.Weekday) bool {
	return day >= time.Monday && day <= time.Friday
}

func ConvertFromGermanWeek(data string) (time.Weekday, error) {
	values := map[string]time.Weekday{
		"Montag":     time.Monday,
		"Dienstag":   time.Tuesday,
		"Mittwoch":   time.Wednesday,
		"Donnerstag": time.Thursday,
		"Freitag":    time.Friday,
		"Samstag":    time.Saturday,
		"Sonntag":    time.Sunday,
	}

	converted, ok := values[data]

	if !ok {
		return 0, errors.New("InvalidDayOfWeek")
	}

	return converted, nil
}

func ConvertToGermanWeek(weekday time.Weekday) string {
	switch weekday {
	case time.Sunday:
		return "Sonntag"
	case time.Monday:
		return "Montag"
	case time.Tuesday:
		return "Dienstag"
	case time.Wednesday:
		return "Mittwoch"
	case time.Thursday:
		return "Donnerstag"
	case time.Friday:
		return "Freitag"
	case time.Saturday:
		return "Samstag"
	default:
		return ""
	}
}

func GetMidnightTime(currentTime time.Time) time.Time {
	return time.Date(currentTime.Year(), currentTime.Month(), currentTime.Day(), 0, 0, 0, 0, currentTime.Location())
}

// SanitizeClassName normalizes user input like " bgym191 " to "BGYM191".
func SanitizeClassName(input string) (string, error) {
	class := strings.ToUpper(strings.TrimSpace(input))

	if class == "" {
		return "", fmt.Errorf("%w: class name is empty", exceptions.InvalidClassName)
	}

	if len(class) > maxClassNameLength {
		return "", fmt.Errorf("%w: class name is too long", exceptions.InvalidClassName)
	}

	for _, r := range class {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return "", fmt.Errorf("%w: class name may only contain letters and digits", exceptions.InvalidClassName)
		}
	}

	return class, nil
}
