package models

import (
	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// WorkingWindowRequest рабочее окно на день недели
type WorkingWindowRequest struct {
	Start      string  `json:"start"`
	End        string  `json:"end"`
	BreakStart *string `json:"breakStart,omitempty"`
	BreakEnd   *string `json:"breakEnd,omitempty"`
}

// WorkingWindowResponse рабочее окно врача
type WorkingWindowResponse struct {
	Weekday    string  `json:"weekday"`
	Start      string  `json:"start"`
	End        string  `json:"end"`
	BreakStart *string `json:"breakStart,omitempty"`
	BreakEnd   *string `json:"breakEnd,omitempty"`
}

// ScheduleResponse недельное расписание врача (понедельник..воскресенье)
type ScheduleResponse struct {
	DoctorID int64                   `json:"doctorId"`
	Windows  []WorkingWindowResponse `json:"windows"`
}

// FromDomainWindow конвертирует domain модель в DTO
func FromDomainWindow(w *domain.WorkingWindow) WorkingWindowResponse {
	resp := WorkingWindowResponse{
		Weekday: string(w.Weekday),
		Start:   w.Start.String(),
		End:     w.End.String(),
	}
	if w.HasBreak() {
		bs, be := w.BreakStart.String(), w.BreakEnd.String()
		resp.BreakStart = &bs
		resp.BreakEnd = &be
	}
	return resp
}

// FromDomainSchedule конвертирует список окон
func FromDomainSchedule(doctorID int64, windows []*domain.WorkingWindow) *ScheduleResponse {
	resp := &ScheduleResponse{DoctorID: doctorID, Windows: make([]WorkingWindowResponse, 0, len(windows))}
	for _, w := range windows {
		resp.Windows = append(resp.Windows, FromDomainWindow(w))
	}
	return resp
}
