package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/availability"
	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

// Request модель запроса на получение слотов врача
type Request struct {
	Actor    domain.Actor // Кто запрашивает (определяет больницу)
	DoctorID int64        // ID врача
	Date     time.Time    // Дата (без времени)
}

// Response модель ответа со слотами дня
type Response struct {
	Date        time.Time
	DoctorID    int64
	Weekday     domain.Weekday
	Available   bool                // false, если у врача нет рабочего окна на этот день
	Slots       []availability.Slot // Все слоты дня, занятые не исключаются
	BookedSlots []types.TimeString  // Начала занятых слотов, по возрастанию
}
