package appointments

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/pkg/ptr"
)

const (
	exportSheet       = "Appointments"
	exportFileName    = "appointments.xlsx"
	exportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var exportHeader = []interface{}{"Patient Name", "Doctor Name", "Date", "Time Slot", "Status", "Notes"}

// writeWorkbook строит xlsx с одной строкой на приём
func writeWorkbook(list []*domain.AppointmentDetails) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, a := range list {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("cell name: %w", err)
		}
		row := []interface{}{
			a.PatientName,
			a.DoctorName,
			a.Date.Format(domain.DateFormat),
			a.TimeSlot.String(),
			string(a.Status),
			ptr.Value(a.Notes),
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
