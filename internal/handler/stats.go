// Package handler 提供API处理器
package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/paiban/paiban/pkg/model"
	"github.com/paiban/paiban/pkg/stats"
)

// StatsRequest carries a solved roster (or a candidate one) for offline
// fairness/coverage analysis — a read-only reporting surface over data the
// caller already has, not a second source of truth for assignments.
type StatsRequest struct {
	DepartmentID int64                `json:"department_id"`
	StartDate    string               `json:"start_date"`
	EndDate      string               `json:"end_date"`
	Employees    []*model.Employee    `json:"employees"`
	Patterns     []*model.ShiftPattern `json:"patterns"`
	Assignments  []*model.Assignment  `json:"assignments"`
}

// FairnessResponse 公平性响应
type FairnessResponse struct {
	Success bool                   `json:"success"`
	Data    *stats.FairnessMetrics `json:"data,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

// CoverageResponse 覆盖率响应
type CoverageResponse struct {
	Success bool                   `json:"success"`
	Data    *stats.CoverageMetrics `json:"data,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

// WorkloadResponse 工作量响应
type WorkloadResponse struct {
	Success bool             `json:"success"`
	Data    *WorkloadSummary `json:"data,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// WorkloadSummary 工作量汇总
type WorkloadSummary struct {
	Period            string                   `json:"period"`
	TotalHours        float64                  `json:"total_hours"`
	TotalShifts       int                      `json:"total_shifts"`
	EmployeeCount     int                      `json:"employee_count"`
	AvgHoursPerPerson float64                  `json:"avg_hours_per_person"`
	OvertimeHours     float64                  `json:"overtime_hours"`
	ByEmployee        []EmployeeWorkload       `json:"by_employee"`
	ByDate            map[string]DailyWorkload `json:"by_date"`
	ByShiftType       map[string]float64       `json:"by_shift_type"`
}

// EmployeeWorkload 员工工作量
type EmployeeWorkload struct {
	EmployeeID    int64   `json:"employee_id"`
	EmployeeName  string  `json:"employee_name"`
	TotalHours    float64 `json:"total_hours"`
	ShiftCount    int     `json:"shift_count"`
	OvertimeHours float64 `json:"overtime_hours"`
	Utilization   float64 `json:"utilization"` // 利用率 (%)
}

// DailyWorkload 每日工作量
type DailyWorkload struct {
	Date       string  `json:"date"`
	TotalHours float64 `json:"total_hours"`
	ShiftCount int     `json:"shift_count"`
	StaffCount int     `json:"staff_count"`
}

// GetFairnessHandler 公平性分析API
func GetFairnessHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req StatsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	log.Printf("接收公平性分析请求: department_id=%d, employees=%d, assignments=%d",
		req.DepartmentID, len(req.Employees), len(req.Assignments))

	patternMap := buildPatternMap(req.Patterns)
	assignments := convertToAssignmentInfo(req.Assignments, patternMap)
	employees := convertToEmployeeInfo(req.Employees)

	analyzer := stats.NewFairnessAnalyzer()
	metrics := analyzer.Analyze(assignments, employees)

	resp := FairnessResponse{
		Success: true,
		Data:    metrics,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// GetCoverageHandler 覆盖率分析API
func GetCoverageHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req StatsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	log.Printf("接收覆盖率分析请求: department_id=%d, patterns=%d, assignments=%d",
		req.DepartmentID, len(req.Patterns), len(req.Assignments))

	patternMap := buildPatternMap(req.Patterns)
	shifts := convertToShiftInfo(req.Assignments, patternMap)
	assignments := convertToAssignmentInfo(req.Assignments, patternMap)

	analyzer := stats.NewCoverageAnalyzer()
	metrics := analyzer.Analyze(shifts, assignments)

	resp := CoverageResponse{
		Success: true,
		Data:    metrics,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// GetWorkloadHandler 工作量统计API
func GetWorkloadHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req StatsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	log.Printf("接收工作量统计请求: department_id=%d, start_date=%s, end_date=%s",
		req.DepartmentID, req.StartDate, req.EndDate)

	employeeMap := make(map[int64]*model.Employee)
	for _, e := range req.Employees {
		employeeMap[int64(e.ID)] = e
	}
	patternMap := buildPatternMap(req.Patterns)

	summary := calculateWorkload(req.Assignments, employeeMap, patternMap, req.StartDate, req.EndDate)

	resp := WorkloadResponse{
		Success: true,
		Data:    summary,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func buildPatternMap(patterns []*model.ShiftPattern) map[int64]*model.ShiftPattern {
	m := make(map[int64]*model.ShiftPattern, len(patterns))
	for _, p := range patterns {
		m[int64(p.ID)] = p
	}
	return m
}

// assignmentTimes resolves an assignment's wall-clock start/end from its
// pattern's start_minute/duration on the assignment's date, handling the
// midnight-crossing shifts patterns allow.
func assignmentTimes(a *model.Assignment, patternMap map[int64]*model.ShiftPattern) (start, end time.Time) {
	p, ok := patternMap[int64(a.PatternID)]
	if !ok {
		return a.Date, a.Date
	}
	start = a.Date.Add(time.Duration(p.StartMinute) * time.Minute)
	end = start.Add(time.Duration(p.DurationMin) * time.Minute)
	return start, end
}

// calculateWorkload 计算工作量
func calculateWorkload(assignments []*model.Assignment, employeeMap map[int64]*model.Employee, patternMap map[int64]*model.ShiftPattern, startDate, endDate string) *WorkloadSummary {
	summary := &WorkloadSummary{
		Period:      startDate + " ~ " + endDate,
		ByDate:      make(map[string]DailyWorkload),
		ByShiftType: make(map[string]float64),
	}

	employeeStats := make(map[int64]*EmployeeWorkload)

	standardWeeklyHours := 40.0

	for _, a := range assignments {
		start, end := assignmentTimes(a, patternMap)
		hours := end.Sub(start).Hours()
		summary.TotalHours += hours
		summary.TotalShifts++

		empID := int64(a.EmployeeID)
		ew, exists := employeeStats[empID]
		if !exists {
			name := ""
			if emp, ok := employeeMap[empID]; ok {
				name = emp.Name
			}
			ew = &EmployeeWorkload{
				EmployeeID:   empID,
				EmployeeName: name,
			}
			employeeStats[empID] = ew
		}
		ew.TotalHours += hours
		ew.ShiftCount++

		dateKey := a.Date.Format("2006-01-02")
		daily, exists := summary.ByDate[dateKey]
		if !exists {
			daily = DailyWorkload{Date: dateKey}
		}
		daily.TotalHours += hours
		daily.ShiftCount++
		daily.StaffCount++
		summary.ByDate[dateKey] = daily

		shiftType := classifyShiftType(start)
		summary.ByShiftType[shiftType] += hours
	}

	summary.EmployeeCount = len(employeeStats)

	weeks := 1.0
	if startDate != "" && endDate != "" {
		start, err1 := time.Parse("2006-01-02", startDate)
		end, err2 := time.Parse("2006-01-02", endDate)
		if err1 == nil && err2 == nil {
			days := end.Sub(start).Hours() / 24
			weeks = days / 7
			if weeks < 1 {
				weeks = 1
			}
		}
	}

	expectedHours := standardWeeklyHours * weeks

	for _, ew := range employeeStats {
		if ew.TotalHours > expectedHours {
			ew.OvertimeHours = ew.TotalHours - expectedHours
			summary.OvertimeHours += ew.OvertimeHours
		}
		ew.Utilization = ew.TotalHours / expectedHours * 100
		summary.ByEmployee = append(summary.ByEmployee, *ew)
	}

	if summary.EmployeeCount > 0 {
		summary.AvgHoursPerPerson = summary.TotalHours / float64(summary.EmployeeCount)
	}

	return summary
}

// classifyShiftType 分类班次类型
func classifyShiftType(start time.Time) string {
	hour := start.Hour()
	if hour >= 6 && hour < 14 {
		return "morning"
	} else if hour >= 14 && hour < 22 {
		return "afternoon"
	}
	return "night"
}

// sendJSONError 发送JSON错误响应
func sendJSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

// convertToAssignmentInfo adapts solved Assignments into the domain-free
// shape the stats analyzers consume, keying each on its pattern id since a
// pattern can be reused across dates (unlike the teacher's one-shift-one-ID
// model).
func convertToAssignmentInfo(assignments []*model.Assignment, patternMap map[int64]*model.ShiftPattern) []*stats.AssignmentInfo {
	result := make([]*stats.AssignmentInfo, len(assignments))
	for i, a := range assignments {
		start, end := assignmentTimes(a, patternMap)
		result[i] = &stats.AssignmentInfo{
			ShiftID:      patternAssignmentKey(a),
			EmployeeID:   idStr(int64(a.EmployeeID)),
			EmployeeName: "",
			Date:         a.Date.Format("2006-01-02"),
			StartTime:    start,
			EndTime:      end,
		}
	}
	return result
}

// convertToEmployeeInfo 转换Employee为stats包类型
func convertToEmployeeInfo(employees []*model.Employee) []*stats.EmployeeInfo {
	result := make([]*stats.EmployeeInfo, len(employees))
	for i, e := range employees {
		result[i] = &stats.EmployeeInfo{
			ID:   idStr(int64(e.ID)),
			Name: e.Name,
		}
	}
	return result
}

// convertToShiftInfo derives the distinct (pattern, date) occurrences
// actually observed among the given assignments — our domain has no
// separate per-date "shift" row the way the teacher's model.Shift did, so
// the occurrence itself is the unit of coverage here.
func convertToShiftInfo(assignments []*model.Assignment, patternMap map[int64]*model.ShiftPattern) []*stats.ShiftInfo {
	seen := map[string]bool{}
	var result []*stats.ShiftInfo
	for _, a := range assignments {
		key := patternAssignmentKey(a)
		if seen[key] {
			continue
		}
		seen[key] = true
		start, end := assignmentTimes(a, patternMap)
		result = append(result, &stats.ShiftInfo{
			ID:        key,
			Date:      a.Date.Format("2006-01-02"),
			StartTime: start,
			EndTime:   end,
			Type:      classifyShiftType(start),
		})
	}
	return result
}

func patternAssignmentKey(a *model.Assignment) string {
	return idStr(int64(a.PatternID)) + "_" + a.Date.Format("20060102")
}

func idStr(id int64) string {
	if id == 0 {
		return "0"
	}
	neg := id < 0
	if neg {
		id = -id
	}
	var buf [20]byte
	i := len(buf)
	for id > 0 {
		i--
		buf[i] = byte('0' + id%10)
		id /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
