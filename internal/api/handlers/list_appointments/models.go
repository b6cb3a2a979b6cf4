package list_appointments

import (
	"net/url"
	"strings"

	"github.com/m04kA/SMC-ClinicService/internal/service/appointments/models"
)

// ToServiceRequest формирует фильтр из query параметров search и status
func ToServiceRequest(query url.Values) models.ListRequest {
	return models.ListRequest{
		Search: strings.TrimSpace(query.Get("search")),
		Status: strings.TrimSpace(query.Get("status")),
	}
}
