package http

import (
	"context"
	"net/http"

	"github.com/Durgaram26/hrms-sub000/internal/domain/report"
	"github.com/Durgaram26/hrms-sub000/internal/handler/http/response"
)

type ReportService interface {
	Generate(ctx context.Context, req *report.GenerateRequest) (*report.Report, error)
}

type ReportHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService ReportService
}

func NewReportHandler(reportService ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// Generate implements ReportHandler.
func (h *reportHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	req := report.GenerateRequest{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}
	if v := r.URL.Query().Get("employee_id"); v != "" {
		req.EmployeeID = &v
	}
	if v := r.URL.Query().Get("department_id"); v != "" {
		req.DepartmentID = &v
	}

	result, err := h.reportService.Generate(r.Context(), &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
