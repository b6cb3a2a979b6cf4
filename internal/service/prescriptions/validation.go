package prescriptions

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/internal/service/prescriptions/models"
)

// buildMedicines проверяет строки рецепта и приводит их к domain модели
// Полностью пустые строки формы пропускаются
func buildMedicines(items []models.MedicineRequest) (domain.Medicines, error) {
	medicines := make(domain.Medicines, 0, len(items))

	for i, item := range items {
		name := strings.TrimSpace(item.Name)
		dosage := strings.TrimSpace(item.Dosage)
		frequency := strings.TrimSpace(item.Frequency)

		if name == "" && dosage == "" && frequency == "" {
			continue
		}
		if name == "" || dosage == "" || frequency == "" {
			return nil, fmt.Errorf("%w: medicine #%d needs name, dosage and frequency", ErrInvalidInput, i+1)
		}

		relation, ok := domain.ParseMealRelation(strings.TrimSpace(item.RelationToMeal))
		if !ok {
			return nil, fmt.Errorf("%w: medicine #%d: unknown relationToMeal %q", ErrInvalidInput, i+1, item.RelationToMeal)
		}

		times := make([]domain.TimeOfDay, 0, len(item.TimeOfDay))
		seen := make(map[domain.TimeOfDay]bool, len(item.TimeOfDay))
		for _, raw := range item.TimeOfDay {
			t, ok := domain.ParseTimeOfDay(strings.ToLower(strings.TrimSpace(raw)))
			if !ok {
				return nil, fmt.Errorf("%w: medicine #%d: unknown timeOfDay %q", ErrInvalidInput, i+1, raw)
			}
			if !seen[t] {
				seen[t] = true
				times = append(times, t)
			}
		}

		medicines = append(medicines, domain.Medicine{
			Name:           name,
			Dosage:         dosage,
			Frequency:      frequency,
			TimeOfDay:      times,
			RelationToMeal: relation,
		})
	}

	if len(medicines) > domain.MaxMedicines {
		return nil, fmt.Errorf("%w: at most %d medicines per prescription", ErrInvalidInput, domain.MaxMedicines)
	}
	return medicines, nil
}

func validateSave(req *models.SavePrescriptionRequest) error {
	if strings.TrimSpace(req.Diagnosis) == "" {
		return fmt.Errorf("%w: diagnosis is required", ErrInvalidInput)
	}
	if req.Instructions != nil && len(*req.Instructions) > domain.MaxNotesLength {
		return fmt.Errorf("%w: instructions must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
