package report

import (
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/report"
	"github.com/attendly/attendance-backend-go/internal/service/calendar"
)

// Aggregate turns accepted facts into the full monthly report: one
// record per employee per calendar day, with synthesized records where
// the source had nothing, then the per-employee and organization-wide
// rollups.
//
// employees is the ordered universe for the report, already the union
// of employees that produced facts and employees merely seen in the
// source; its order decides the report's employee order. Duplicate
// (employee, date) facts resolve last-write-wins in slice order.
func Aggregate(facts []report.AttendanceFact, year, month int, employees []report.EmployeeRef) report.MonthlyReport {
	monthlyExpected := calendar.MonthlyExpectedHours(year, month)

	factsByEmployee := make(map[string]map[string]report.AttendanceFact)
	for _, fact := range facts {
		byDay, ok := factsByEmployee[fact.EmployeeID]
		if !ok {
			byDay = make(map[string]report.AttendanceFact)
			factsByEmployee[fact.EmployeeID] = byDay
		}
		byDay[fact.Date] = fact
	}

	days := monthDays(year, month)
	employeeReports := make([]report.EmployeeReport, 0, len(employees))

	for _, emp := range employees {
		byDay := factsByEmployee[emp.ID]
		daily := make([]report.AttendanceFact, 0, len(days))

		// Iterating day 1 through the last day keeps the records
		// complete and ascending without a sort.
		for _, day := range days {
			key := day.Format("2006-01-02")
			if fact, ok := byDay[key]; ok {
				daily = append(daily, fact)
			} else if calendar.IsWorkingDay(day) {
				// Absence on a working day is leave, not an error.
				daily = append(daily, syntheticLeave(emp, day))
			} else {
				daily = append(daily, syntheticOff(emp, day))
			}
		}

		var workedTotal float64
		leaves := 0
		for _, rec := range daily {
			if rec.WorkedHours != nil {
				workedTotal += *rec.WorkedHours
			}
			// Leave on a non-working day does not count.
			if rec.IsLeave && rec.ExpectedHours > 0 {
				leaves++
			}
		}

		productivity := 0.0
		if monthlyExpected > 0 {
			productivity = round2(workedTotal / monthlyExpected * 100)
		}

		employeeReports = append(employeeReports, report.EmployeeReport{
			EmployeeID:         emp.ID,
			EmployeeName:       emp.Name,
			TotalExpectedHours: monthlyExpected,
			TotalWorkedHours:   round2(workedTotal),
			LeavesUsed:         leaves,
			Productivity:       productivity,
			DailyRecords:       daily,
		})
	}

	var orgWorked, productivitySum float64
	orgLeaves := 0
	for _, emp := range employeeReports {
		orgWorked += emp.TotalWorkedHours
		orgLeaves += emp.LeavesUsed
		productivitySum += emp.Productivity
	}

	averageProductivity := 0.0
	if len(employeeReports) > 0 {
		// Simple arithmetic mean, not hours-weighted.
		averageProductivity = round2(productivitySum / float64(len(employeeReports)))
	}

	return report.MonthlyReport{
		Month:               time.Month(month).String(),
		Year:                year,
		MonthNumber:         month,
		Employees:           employeeReports,
		TotalExpectedHours:  monthlyExpected,
		TotalWorkedHours:    round2(orgWorked),
		TotalLeaves:         orgLeaves,
		AverageProductivity: averageProductivity,
	}
}

// syntheticLeave fills a gap on a working day.
func syntheticLeave(emp report.EmployeeRef, day time.Time) report.AttendanceFact {
	return report.AttendanceFact{
		EmployeeID:    emp.ID,
		EmployeeName:  emp.Name,
		Date:          day.Format("2006-01-02"),
		IsLeave:       true,
		ExpectedHours: calendar.ExpectedHoursForDay(day),
	}
}

// syntheticOff fills a gap on a non-working day; it is neutral and
// never counts toward leave totals.
func syntheticOff(emp report.EmployeeRef, day time.Time) report.AttendanceFact {
	return report.AttendanceFact{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		Date:         day.Format("2006-01-02"),
	}
}

func monthDays(year, month int) []time.Time {
	n := calendar.DaysInMonth(year, month)
	days := make([]time.Time, 0, n)
	for d := 1; d <= n; d++ {
		days = append(days, time.Date(year, time.Month(month), d, 0, 0, 0, 0, time.UTC))
	}
	return days
}
