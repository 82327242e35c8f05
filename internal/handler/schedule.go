// Package handler 提供HTTP请求处理器
package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/paiban/paiban/internal/repository"
	"github.com/paiban/paiban/pkg/errors"
	"github.com/paiban/paiban/pkg/model"
	"github.com/paiban/paiban/pkg/scheduler/solver"
)

// ScheduleHandler exposes the one contractual operation spec §6 names:
// solve(department_id, start_date, end_date) -> {success, assignments,
// infeasible_days}. It is a thin collaborator over pkg/scheduler/solver —
// no scheduling logic lives here.
type ScheduleHandler struct {
	repo *repository.ScheduleRepository
	cfg  solver.Config
}

// NewScheduleHandler creates the handler.
func NewScheduleHandler(repo *repository.ScheduleRepository, cfg solver.Config) *ScheduleHandler {
	return &ScheduleHandler{repo: repo, cfg: cfg}
}

// SolveRequest is the external request body for a solve.
type SolveRequest struct {
	DepartmentID int64  `json:"department_id"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	// Persist controls whether a successful solve is committed via
	// replace_assignments. Defaults to true; set false to preview a solve
	// without touching stored assignments.
	Persist *bool `json:"persist,omitempty"`
}

// AssignmentOutput is one solved (member, pattern, date) triple in the
// external representation.
type AssignmentOutput struct {
	EmployeeID int64  `json:"employee_id"`
	PatternID  int64  `json:"pattern_id"`
	Date       string `json:"date"`
}

// SolveResponse is the external contract's {success, assignments,
// infeasible_days} shape, plus statistics and timing for observability.
type SolveResponse struct {
	Success        bool                `json:"success"`
	Assignments    []AssignmentOutput  `json:"assignments,omitempty"`
	InfeasibleDays map[string][]string `json:"infeasible_days,omitempty"`
	Statistics     *solver.Statistics  `json:"statistics,omitempty"`
	Duration       string              `json:"duration"`
	Message        string              `json:"message,omitempty"`
	Persisted      bool                `json:"persisted"`
}

// Solve runs one department/date-range solve and, unless the caller opts
// out via persist:false, commits the result.
func (h *ScheduleHandler) Solve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}

	start, end, appErr := validateSolveRequest(&req)
	if appErr != nil {
		respondError(w, appErr)
		return
	}

	deptID := model.ID(req.DepartmentID)
	result, err := solver.Solve(r.Context(), h.repo, deptID, start, end, h.cfg)
	if err != nil {
		respondError(w, toAppError(err))
		return
	}

	persisted := false
	if result.Success && (req.Persist == nil || *req.Persist) {
		if err := solver.Persist(r.Context(), h.repo, deptID, start, end, result); err != nil {
			respondError(w, toAppError(err))
			return
		}
		persisted = true
	}

	resp := SolveResponse{
		Success:        result.Success,
		Assignments:    toAssignmentOutputs(result.Assignments),
		InfeasibleDays: result.InfeasibleDays,
		Statistics:     result.Statistics,
		Duration:       result.Duration.String(),
		Message:        result.Message,
		Persisted:      persisted,
	}

	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	respondJSON(w, status, resp)
}

func toAssignmentOutputs(assignments []*model.Assignment) []AssignmentOutput {
	out := make([]AssignmentOutput, len(assignments))
	for i, a := range assignments {
		out[i] = AssignmentOutput{
			EmployeeID: int64(a.EmployeeID),
			PatternID:  int64(a.PatternID),
			Date:       a.Date.Format("2006-01-02"),
		}
	}
	return out
}

func validateSolveRequest(req *SolveRequest) (time.Time, time.Time, *errors.AppError) {
	ve := &errors.ValidationErrors{}

	if req.DepartmentID <= 0 {
		ve.Add("department_id", "部门ID不能为空")
	}
	if req.StartDate == "" {
		ve.Add("start_date", "开始日期不能为空")
	}
	if req.EndDate == "" {
		ve.Add("end_date", "结束日期不能为空")
	}

	var start, end time.Time
	var err error
	if req.StartDate != "" {
		start, err = time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			ve.Add("start_date", "日期格式无效，应为YYYY-MM-DD")
		}
	}
	if req.EndDate != "" {
		end, err = time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			ve.Add("end_date", "日期格式无效，应为YYYY-MM-DD")
		}
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		ve.Add("end_date", "结束日期不能早于开始日期")
	}

	if ve.HasErrors() {
		return start, end, ve.ToAppError()
	}
	return start, end, nil
}

// toAppError surfaces errors.AppError unchanged, and wraps anything else
// (e.g. context.DeadlineExceeded from an expired request context) as an
// internal error.
func toAppError(err error) *errors.AppError {
	if appErr, ok := err.(*errors.AppError); ok {
		return appErr
	}
	return errors.Wrap(err, errors.CodeInternal, "求解失败")
}

// respondJSON 返回JSON响应
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError 返回错误响应
func respondError(w http.ResponseWriter, err *errors.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.HTTPStatus)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   true,
		"code":    err.Code,
		"message": err.Message,
		"details": err.Details,
	})
}
