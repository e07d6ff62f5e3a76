package report

// AttendanceFact is one observed or synthesized attendance record for
// an employee on a specific calendar day. Nullable fields are pointers
// and serialize as explicit null, never omitted.
type AttendanceFact struct {
	EmployeeID    string   `json:"employeeId"`
	EmployeeName  string   `json:"employeeName"`
	Date          string   `json:"date"` // YYYY-MM-DD
	InTime        *string  `json:"inTime"`
	OutTime       *string  `json:"outTime"`
	WorkedHours   *float64 `json:"workedHours"`
	IsLeave       bool     `json:"isLeave"`
	ExpectedHours float64  `json:"expectedHours"`
}

// EmployeeRef identifies an employee seen anywhere in a source file,
// including rows whose facts were rejected for the target month.
type EmployeeRef struct {
	ID   string
	Name string
}

type EmployeeReport struct {
	EmployeeID         string           `json:"employeeId"`
	EmployeeName       string           `json:"employeeName"`
	TotalExpectedHours float64          `json:"totalExpectedHours"`
	TotalWorkedHours   float64          `json:"totalWorkedHours"`
	LeavesUsed         int              `json:"leavesUsed"`
	Productivity       float64          `json:"productivity"`
	DailyRecords       []AttendanceFact `json:"dailyRecords"`
}

type MonthlyReport struct {
	Month               string           `json:"month"` // display name, e.g. "January"
	Year                int              `json:"year"`
	MonthNumber         int              `json:"monthNumber"`
	Employees           []EmployeeReport `json:"employees"`
	TotalExpectedHours  float64          `json:"totalExpectedHours"`
	TotalWorkedHours    float64          `json:"totalWorkedHours"`
	TotalLeaves         int              `json:"totalLeaves"`
	AverageProductivity float64          `json:"averageProductivity"`
}
