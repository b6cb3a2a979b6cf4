package get_available_slots

import (
	"github.com/m04kA/SMC-ClinicService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-ClinicService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date        string          `json:"date"`
	DoctorID    int64           `json:"doctorId"`
	Weekday     string          `json:"weekday"`
	Available   bool            `json:"available"`
	Slots       []AvailableSlot `json:"slots"`
	BookedSlots []string        `json:"bookedSlots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	Start        string `json:"start"`
	End          string `json:"end"`
	DisplayStart string `json:"displayStart"`
	DisplayEnd   string `json:"displayEnd"`
	Booked       bool   `json:"booked"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	booked := make(map[string]bool, len(resp.BookedSlots))
	bookedSlots := make([]string, len(resp.BookedSlots))
	for i, start := range resp.BookedSlots {
		booked[start.String()] = true
		bookedSlots[i] = start.String()
	}

	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			Start:        slot.Start.String(),
			End:          slot.End.String(),
			DisplayStart: slot.DisplayStart,
			DisplayEnd:   slot.DisplayEnd,
			Booked:       booked[slot.Start.String()],
		}
	}

	return &AvailableSlotsResponse{
		Date:        resp.Date.Format(domain.DateFormat),
		DoctorID:    resp.DoctorID,
		Weekday:     string(resp.Weekday),
		Available:   resp.Available,
		Slots:       slots,
		BookedSlots: bookedSlots,
	}
}
