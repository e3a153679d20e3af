package calendar

import "time"

// Parts are the calendar fields stored next to every expense.
type Parts struct {
	NumDate int
	Month   int
	Year    int
	Week    int
	DayName string
}

var dayNames = [7]string{
	"Domingo",
	"Lunes",
	"Martes",
	"Miércoles",
	"Jueves",
	"Viernes",
	"Sábado",
}

// Partition splits completeDate (epoch milliseconds) into calendar fields in loc.
// Week is the ISO week of reference, not of completeDate: it tags the write for
// "this week" totals.
func Partition(completeDate int64, reference time.Time, loc *time.Location) Parts {
	if loc == nil {
		loc = time.UTC
	}

	moment := time.UnixMilli(completeDate).In(loc)
	_, week := reference.In(loc).ISOWeek()

	return Parts{
		NumDate: moment.Day(),
		Month:   int(moment.Month()),
		Year:    moment.Year(),
		Week:    week,
		DayName: DayName(moment.Weekday()),
	}
}

func DayName(day time.Weekday) string {
	return dayNames[int(day)%len(dayNames)]
}

// CurrentWeek returns the week number Partition would stamp at reference.
func CurrentWeek(reference time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.UTC
	}
	_, week := reference.In(loc).ISOWeek()
	return week
}
