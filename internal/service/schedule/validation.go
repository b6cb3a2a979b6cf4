package schedule

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/internal/service/schedule/models"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

// buildWindow проверяет запрос и собирает рабочее окно
func buildWindow(weekday string, req *models.WorkingWindowRequest) (*domain.WorkingWindow, error) {
	day, ok := domain.ParseWeekday(weekday)
	if !ok {
		return nil, fmt.Errorf("%w: unknown weekday %q", ErrInvalidInput, weekday)
	}

	start, err := types.NewTimeStringFromString(req.Start)
	if err != nil {
		return nil, fmt.Errorf("%w: start: %v", ErrInvalidInput, err)
	}
	end, err := types.NewTimeStringFromString(req.End)
	if err != nil {
		return nil, fmt.Errorf("%w: end: %v", ErrInvalidInput, err)
	}
	if !start.IsBefore(end) {
		return nil, fmt.Errorf("%w: start must be before end", ErrInvalidInput)
	}

	window := &domain.WorkingWindow{Weekday: day, Start: start, End: end}

	breakStart, breakEnd := blankToNil(req.BreakStart), blankToNil(req.BreakEnd)
	if breakStart == nil && breakEnd == nil {
		return window, nil
	}
	if breakStart == nil || breakEnd == nil {
		return nil, fmt.Errorf("%w: break needs both breakStart and breakEnd", ErrInvalidInput)
	}

	bs, err := types.NewTimeStringFromString(*breakStart)
	if err != nil {
		return nil, fmt.Errorf("%w: breakStart: %v", ErrInvalidInput, err)
	}
	be, err := types.NewTimeStringFromString(*breakEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: breakEnd: %v", ErrInvalidInput, err)
	}
	if !bs.IsBefore(be) {
		return nil, fmt.Errorf("%w: breakStart must be before breakEnd", ErrInvalidInput)
	}
	if bs.IsBefore(start) || be.IsAfter(end) {
		return nil, fmt.Errorf("%w: break must lie within working hours", ErrInvalidInput)
	}

	window.BreakStart = &bs
	window.BreakEnd = &be
	return window, nil
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
